// Package session keeps per-visitor state: the chosen language and the
// quote cart. Every visitor gets an independent copy of both.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/localization"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string                `json:"id"`
	Language  localization.Language `json:"language,omitempty"`
	Cart      catalog.Cart          `json:"cart"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// New starts an empty session with a random id.
func New(now time.Time) *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// LoadLanguage and SaveLanguage let a Session back a Localizer.
func (s *Session) LoadLanguage() (localization.Language, bool) {
	return s.Language, s.Language != ""
}

func (s *Session) SaveLanguage(lang localization.Language) error {
	s.Language = lang
	return nil
}

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

func encode(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
