package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/feedback"
)

// MemoryStore holds sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	coach    *feedback.Coach
	now      func() time.Time
}

// NewMemoryStore returns a store whose sessions expire after ttl of
// inactivity (DefaultTTL when ttl <= 0) and whose analyzers ask coach.
func NewMemoryStore(coach *feedback.Coach, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if coach == nil {
		coach = feedback.NewCoach(nil)
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		coach:    coach,
		now:      time.Now,
	}
}

// Create implements [Store].
func (m *MemoryStore) Create(ctx context.Context, e *composition.Engine) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		expiresAt: now.Add(m.ttl),
		engine:    e,
		analyzer:  feedback.NewAnalyzer(m.coach),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get implements [Store].
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	now := m.now()
	if !ok || s.expired(now) {
		return nil, ErrNotFound
	}
	s.touch(now, m.ttl)
	return s, nil
}

// Delete implements [Store].
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		if t := s.analyzer.Current(); t != nil {
			t.Cancel()
		}
	}
	return nil
}

// Cleanup implements [Store].
func (m *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, id)
			if t := s.analyzer.Current(); t != nil {
				t.Cancel()
			}
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run calls Cleanup every interval until ctx is done. onSweep, if set,
// receives the number of sessions removed by each sweep.
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, _ := m.Cleanup(ctx)
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

var _ Store = (*MemoryStore)(nil)
