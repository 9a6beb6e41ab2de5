package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/feedback"
	"github.com/matzehuels/balancecoach/pkg/feedback/llm"
)

func newEngine() *composition.Engine {
	return composition.New(composition.DefaultBoard(), composition.WithSeed(1))
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(nil, time.Hour)

	s, err := m.Create(ctx, newEngine())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" {
		t.Fatal("empty session id")
	}
	got, err := m.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := m.Delete(ctx, s.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(nil, time.Minute)
	m.now = func() time.Time { return now }

	a, _ := m.Create(ctx, newEngine())
	b, _ := m.Create(ctx, newEngine())

	now = now.Add(45 * time.Second)
	if _, err := m.Get(ctx, a.ID); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	// b idles past its TTL; a was touched 45s in.
	now = now.Add(30 * time.Second)
	if _, err := m.Get(ctx, b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired Get = %v", err)
	}
	removed, err := m.Cleanup(ctx)
	if err != nil || removed != 1 {
		t.Errorf("Cleanup = %d, %v; want 1", removed, err)
	}
	if m.Len() != 1 {
		t.Errorf("len = %d, want 1", m.Len())
	}
	if _, err := m.Get(ctx, a.ID); err != nil {
		t.Errorf("touched session expired: %v", err)
	}
}

func TestSessionDoSerializes(t *testing.T) {
	m := NewMemoryStore(nil, 0)
	s, _ := m.Create(context.Background(), newEngine())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(e *composition.Engine) error {
				_, err := e.AddShape(composition.KindSquare, 60, 1)
				return err
			})
		}()
	}
	wg.Wait()
	snap := s.Snapshot()
	if err := composition.Validate(snap.Board, snap.Shapes); err != nil {
		t.Errorf("concurrent adds broke the board: %v", err)
	}
}

func TestRunSweeps(t *testing.T) {
	m := NewMemoryStore(nil, time.Nanosecond)
	_, _ = m.Create(context.Background(), newEngine())

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	go m.Run(ctx, time.Millisecond, func(n int) {
		if n > 0 {
			select {
			case swept <- n:
			default:
			}
		}
	})
	defer cancel()

	select {
	case n := <-swept:
		if n != 1 {
			t.Errorf("swept %d, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sweep")
	}
}

// blockingClient never answers; it returns once the request is cancelled.
type blockingClient struct{}

func (blockingClient) Complete(ctx context.Context, system string, msgs []llm.Message, opts *llm.RequestOptions) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (blockingClient) Provider() string { return "blocking" }
func (blockingClient) Model() string    { return "blocking-1" }

func TestCleanupCancelsFeedback(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(feedback.NewCoach(blockingClient{}), time.Minute)
	m.now = func() time.Time { return now }

	e := newEngine()
	if _, err := e.Add(composition.KindSquare); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s, _ := m.Create(ctx, e)
	task := s.Analyzer().Start(ctx, e.Snapshot())
	if task == nil {
		t.Fatal("Start returned nil for a non-empty board")
	}

	now = now.Add(2 * time.Minute)
	if removed, err := m.Cleanup(ctx); err != nil || removed != 1 {
		t.Fatalf("Cleanup = %d, %v; want 1", removed, err)
	}

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("feedback request still running after its session expired")
	}
	if got, _ := task.Result(); got != feedback.FallbackMessage {
		t.Errorf("result = %q, want fallback", got)
	}
}
