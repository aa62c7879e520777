package models

import "fmt"

// User is the profile object returned at login. The API does not fix its
// shape, so it is kept as a generic JSON object.
type User map[string]any

// ID returns the user identifier, preferring "id" over "_id".
// Non-string identifiers are formatted with fmt.
func (u User) ID() string {
	for _, key := range []string{"id", "_id"} {
		v, ok := u[key]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

// String returns the named field as a string, or "" when absent.
func (u User) String(key string) string {
	v, ok := u[key]
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ItsonID  string `json:"itsonId"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the expected body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
