// Package session keeps live board engines for the HTTP API.
//
// Each [Session] owns one [composition.Engine] and one [feedback.Analyzer].
// Engines are not safe for concurrent use, so every access goes through
// [Session.Do], which serializes callers. Sessions live in memory only and
// expire after a period of inactivity; [MemoryStore.Run] sweeps them.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
	"github.com/matzehuels/balancecoach/pkg/feedback"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// ErrNotFound is returned for unknown and expired sessions.
var ErrNotFound = errors.New(errors.ErrCodeSessionNotFound, "session not found")

// Session is one board being edited through the API.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	expiresAt time.Time
	engine    *composition.Engine
	analyzer  *feedback.Analyzer
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *composition.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// Snapshot returns the current engine snapshot.
func (s *Session) Snapshot() composition.Snapshot {
	var snap composition.Snapshot
	_ = s.Do(func(e *composition.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	return snap
}

// Analyzer returns the session's feedback analyzer.
func (s *Session) Analyzer() *feedback.Analyzer { return s.analyzer }

// ExpiresAt returns when the session expires unless used again.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Create registers a new session around e.
	Create(ctx context.Context, e *composition.Engine) (*Session, error)

	// Get returns a live session and extends its lifetime.
	// Unknown or expired sessions yield ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
