package feedback

import (
	"context"
	"sync"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// Task is one background feedback request. It always resolves to text.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	result string
}

// Done is closed when the result is ready.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the result is ready and returns it.
func (t *Task) Wait() string {
	<-t.done
	return t.result
}

// Result returns the text if the task has finished.
func (t *Task) Result() (string, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return "", false
	}
}

// Cancel abandons the request. The task still resolves, with the fallback
// message.
func (t *Task) Cancel() { t.cancel() }

// Analyzer runs at most one active feedback request at a time. Starting a
// new request cancels the previous one.
type Analyzer struct {
	coach *Coach

	mu      sync.Mutex
	current *Task
}

// NewAnalyzer returns an analyzer that asks coach.
func NewAnalyzer(coach *Coach) *Analyzer {
	return &Analyzer{coach: coach}
}

// Start requests feedback for snap in the background and returns the task.
// An empty board is not analyzed and Start returns nil.
func (a *Analyzer) Start(ctx context.Context, snap composition.Snapshot) *Task {
	if len(snap.Shapes) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{done: make(chan struct{}), cancel: cancel}

	a.mu.Lock()
	if a.current != nil {
		a.current.cancel()
	}
	a.current = t
	a.mu.Unlock()

	go func() {
		defer cancel()
		t.result = a.coach.Analyze(ctx, snap)
		close(t.done)
	}()
	return t
}

// Current returns the most recently started task, or nil.
func (a *Analyzer) Current() *Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Analyzing reports whether the current request is still pending.
func (a *Analyzer) Analyzing() bool {
	t := a.Current()
	if t == nil {
		return false
	}
	_, done := t.Result()
	return !done
}

// Latest returns the result of the current request once it has finished.
func (a *Analyzer) Latest() (string, bool) {
	t := a.Current()
	if t == nil {
		return "", false
	}
	return t.Result()
}
