// Package session persists the authenticated user's token and profile in a
// durable key-value backend. Controllers receive a Store explicitly; nothing
// else reads or writes the session keys.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/itson-folio/folio/pkg/models"
)

// Storage keys. They match the keys used by the web client so that exported
// session files stay interchangeable.
const (
	TokenKey = "authToken"
	UserKey  = "authUser"
)

// ErrBackendUnavailable is returned by backends that cannot reach their storage.
var ErrBackendUnavailable = errors.New("session: backend unavailable")

// Store is the narrow session interface handed to every page controller.
type Store interface {
	Token() string
	SaveToken(token string) error
	ClearToken() error
	User() models.User
	SaveUser(user models.User) error
	ClearUser() error
	// Clear removes both token and user.
	Clear() error
}

// Backend is a synchronous string key-value store.
type Backend interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// KVStore implements Store on top of a Backend.
type KVStore struct {
	backend Backend
	logger  *slog.Logger
}

// Compile-time interface check.
var _ Store = (*KVStore)(nil)

// NewStore creates a Store backed by the given Backend.
// A nil logger discards backend read warnings.
func NewStore(backend Backend, logger *slog.Logger) *KVStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KVStore{backend: backend, logger: logger}
}

// Token returns the stored auth token, or "" when absent or unreadable.
func (s *KVStore) Token() string {
	v, ok, err := s.backend.Get(TokenKey)
	if err != nil {
		s.logger.Warn("read session token", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// SaveToken stores the auth token.
func (s *KVStore) SaveToken(token string) error {
	if err := s.backend.Set(TokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken removes the auth token.
func (s *KVStore) ClearToken() error {
	if err := s.backend.Delete(TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// User returns the stored profile. Missing, unreadable or malformed data
// yields an empty (non-nil) user.
func (s *KVStore) User() models.User {
	v, ok, err := s.backend.Get(UserKey)
	if err != nil {
		s.logger.Warn("read session user", "error", err)
		return models.User{}
	}
	if !ok || v == "" {
		return models.User{}
	}

	var u models.User
	if err := json.Unmarshal([]byte(v), &u); err != nil || u == nil {
		return models.User{}
	}
	return u
}

// SaveUser stores the profile as a JSON object. A nil user is stored as {}.
func (s *KVStore) SaveUser(user models.User) error {
	if user == nil {
		user = models.User{}
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.backend.Set(UserKey, string(data)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ClearUser removes the stored profile.
func (s *KVStore) ClearUser() error {
	if err := s.backend.Delete(UserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// Clear removes token and user. Both deletes are attempted.
func (s *KVStore) Clear() error {
	return errors.Join(s.ClearToken(), s.ClearUser())
}

// HasSession reports whether a token is stored.
func HasSession(s Store) bool {
	return s != nil && s.Token() != ""
}
