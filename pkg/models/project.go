package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Project is a portfolio entry as returned by the API.
type Project struct {
	ID           string     `json:"id,omitempty"`
	LegacyID     string     `json:"_id,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Technologies StringList `json:"technologies,omitempty"`
	Repository   string     `json:"repository,omitempty"`
	Images       StringList `json:"images,omitempty"`
	Image        string     `json:"image,omitempty"`
	UserID       string     `json:"userId,omitempty"`
}

// ResolveID returns the project identifier, preferring "id" over "_id".
func (p Project) ResolveID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.LegacyID
}

// TitleOr returns the title, or fallback when the API omitted it.
func (p Project) TitleOr(fallback string) string {
	if p.Title == nil {
		return fallback
	}
	return *p.Title
}

// UnmarshalJSON implements json.Unmarshaler. Identifiers may arrive as JSON
// strings or numbers; numbers keep their literal text and any other value
// reads as no identifier.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	aux := struct {
		*plain
		ID       json.RawMessage `json:"id,omitempty"`
		LegacyID json.RawMessage `json:"_id,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = decodeID(aux.ID)
	p.LegacyID = decodeID(aux.LegacyID)
	return nil
}

func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch {
	case raw[0] == '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			return n.String()
		}
	}
	return ""
}

// ProjectInput is the create/update payload. Updates are full replacements.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	UserID       string   `json:"userId,omitempty"`
	Technologies []string `json:"technologies"`
	Repository   string   `json:"repository,omitempty"`
	Images       []string `json:"images"`
}

// StringList decodes either a JSON array or a comma-separated string.
// Any other JSON value decodes to an empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*l = nil
		return nil
	}

	switch data[0] {
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
		out := make(StringList, 0, len(raw))
		for _, v := range raw {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(v))
		}
		*l = out
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string list: %w", err)
		}
		*l = ParseCSV(s)
	default:
		*l = nil
	}
	return nil
}

// ParseCSV splits s on commas, trims each part and drops empty parts.
func ParseCSV(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinCSV is the inverse of ParseCSV for form pre-filling.
func JoinCSV(items []string) string {
	return strings.Join(items, ", ")
}
