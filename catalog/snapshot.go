package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/metrics"
	"github.com/wingsengineering/wingsweb/models"
)

var ErrNoSource = errors.New("catalog source not configured")

// Source reads the active spare parts, newest first.
type Source interface {
	Name() string
	FetchParts(ctx context.Context) ([]models.Part, error)
}

// Snapshot holds the parts every request queries. Refresh swaps in a new
// list; readers never see a partially built one.
type Snapshot struct {
	source Source
	logger *zap.Logger

	mu        sync.RWMutex
	items     []models.Part
	byID      map[string]int
	fetchedAt time.Time
	lastErr   error
	started   uint64
	installed uint64
}

func NewSnapshot(source Source, logger *zap.Logger) *Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshot{source: source, logger: logger, byID: map[string]int{}}
}

// Refresh fetches the catalog and replaces the snapshot. A failed fetch
// installs an empty snapshot and keeps the error for LastError. When two
// refreshes overlap, the one started last wins regardless of which
// finishes first.
func (s *Snapshot) Refresh(ctx context.Context) error {
	if s.source == nil {
		s.install(s.ticket(), nil, ErrNoSource)
		return ErrNoSource
	}
	ticket := s.ticket()
	timer := metrics.NewTimer()
	parts, err := s.source.FetchParts(ctx)
	if err != nil {
		err = fmt.Errorf("fetch catalog from %s: %w", s.source.Name(), err)
		metrics.RecordCatalogFetch(s.source.Name(), "error", 0, timer.Duration())
		s.logger.Error("catalog fetch failed", zap.String("source", s.source.Name()), zap.Error(err))
		s.install(ticket, nil, err)
		return err
	}

	clean := s.sanitize(parts)
	metrics.RecordCatalogFetch(s.source.Name(), "ok", len(clean), timer.Duration())
	s.logger.Info("catalog refreshed",
		zap.String("source", s.source.Name()),
		zap.Int("parts", len(clean)),
		zap.Int("dropped", len(parts)-len(clean)),
	)
	s.install(ticket, clean, nil)
	return nil
}

func (s *Snapshot) ticket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

func (s *Snapshot) install(ticket uint64, parts []models.Part, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket < s.installed {
		s.logger.Debug("discarding stale catalog fetch", zap.Uint64("ticket", ticket))
		return
	}
	s.installed = ticket
	byID := make(map[string]int, len(parts))
	for i, p := range parts {
		byID[p.ID] = i
	}
	s.items = parts
	s.byID = byID
	s.fetchedAt = time.Now().UTC()
	s.lastErr = err
}

// sanitize drops records that break the part invariants or repeat an id.
func (s *Snapshot) sanitize(parts []models.Part) []models.Part {
	out := make([]models.Part, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			s.logger.Warn("skipping invalid part", zap.String("id", p.ID), zap.Error(err))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			s.logger.Warn("skipping duplicate part", zap.String("id", p.ID))
			continue
		}
		seen[p.ID] = struct{}{}
		if p.CompatibleWith == nil {
			p.CompatibleWith = []string{}
		}
		out = append(out, p)
	}
	return out
}

// Items returns the current parts. The slice is shared and must be
// treated as read-only.
func (s *Snapshot) Items() []models.Part {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Find looks a part up by id.
func (s *Snapshot) Find(id string) (models.Part, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return models.Part{}, false
	}
	return s.items[i], true
}

// LastError is the error of the installed fetch, nil after a success.
func (s *Snapshot) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Snapshot) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// SourceName names the configured source, or "none".
func (s *Snapshot) SourceName() string {
	if s.source == nil {
		return "none"
	}
	return s.source.Name()
}

// StaticSource serves a fixed list. It backs tests and demo mode.
type StaticSource struct {
	Parts []models.Part
	Err   error
}

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) FetchParts(context.Context) ([]models.Part, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Part(nil), s.Parts...), nil
}
