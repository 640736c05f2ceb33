package session

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value      []byte
	expiration time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// MemoryStore keeps encoded sessions in process memory. Sessions are
// stored as bytes, so callers never share a Session value.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: map[string]memoryItem{}, ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	item, ok := m.items[id]
	if ok && item.expired(m.now()) {
		delete(m.items, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(item.value)
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	item := memoryItem{value: data}
	if m.ttl > 0 {
		item.expiration = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.items[s.ID] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

// Len counts stored sessions, expired ones included until swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Sweep removes expired sessions and returns how many it dropped.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, item := range m.items {
		if item.expired(now) {
			delete(m.items, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
