package feedback

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/balancecoach/pkg/cache"
	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/feedback/llm"
	"github.com/matzehuels/balancecoach/pkg/observability"
)

// User-facing replies for failed or empty analyses.
const (
	FallbackMessage = "Sorry, I couldn't analyze your artwork right now. Please try again later."
	EmptyMessage    = "Could not generate analysis."
)

// DefaultCacheTTL is how long a cached answer is reused.
const DefaultCacheTTL = 24 * time.Hour

const maxReplyTokens = 400

// Coach requests written feedback for a board.
type Coach struct {
	client llm.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
	board  composition.Board
}

// CoachOption configures a Coach.
type CoachOption func(*Coach)

// WithCache stores answers in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) CoachOption {
	return func(co *Coach) {
		co.cache = c
		co.ttl = ttl
	}
}

// WithKeyer sets the cache key generator.
func WithKeyer(k cache.Keyer) CoachOption {
	return func(co *Coach) { co.keyer = k }
}

// WithLogger sets the logger used for warnings about failed requests.
func WithLogger(l *log.Logger) CoachOption {
	return func(co *Coach) { co.logger = l }
}

// WithBoard sets the board used to split shapes into sides in
// [Coach.RequestFeedback].
func WithBoard(b composition.Board) CoachOption {
	return func(co *Coach) { co.board = b }
}

// NewCoach returns a coach backed by client. A nil client is allowed and
// always yields [FallbackMessage].
func NewCoach(client llm.Client, opts ...CoachOption) *Coach {
	c := &Coach{
		client: client,
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		ttl:    DefaultCacheTTL,
		logger: log.New(io.Discard),
		board:  composition.DefaultBoard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestFeedback returns coaching text for the given shapes. It never
// fails; any problem yields [FallbackMessage].
func (c *Coach) RequestFeedback(ctx context.Context, shapes []composition.Shape, tilt float64, mode composition.Mode) string {
	return c.Feedback(ctx, Request{Shapes: shapes, Tilt: tilt, Mode: mode, Fulcrum: c.board.Fulcrum()})
}

// Analyze returns coaching text for an engine snapshot.
func (c *Coach) Analyze(ctx context.Context, snap composition.Snapshot) string {
	return c.Feedback(ctx, RequestFromSnapshot(snap))
}

// Feedback returns coaching text for r.
func (c *Coach) Feedback(ctx context.Context, r Request) string {
	provider := "none"
	if c.client != nil {
		provider = c.client.Provider()
	}
	hooks := observability.Feedback()
	hooks.OnFeedbackStart(ctx, provider, len(r.Shapes))
	start := time.Now()

	text, err := c.feedback(ctx, r)
	hooks.OnFeedbackComplete(ctx, provider, time.Since(start), err)
	if err != nil {
		c.logger.Warn("feedback request failed", "provider", provider, "error", err)
		return FallbackMessage
	}
	return text
}

func (c *Coach) feedback(ctx context.Context, r Request) (string, error) {
	if c.client == nil {
		return "", llm.ErrMissingAPIKey
	}

	prompt := BuildPrompt(r)
	key := c.keyer.FeedbackKey(c.client.Provider(), c.client.Model(), SystemPrompt+"\n"+prompt)
	if data, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Debug("feedback cache read failed", "error", err)
	} else if ok {
		c.logger.Debug("feedback cache hit", "key", key)
		return string(data), nil
	}

	resp, err := c.client.Complete(ctx, SystemPrompt, []llm.Message{{Role: "user", Content: prompt}}, &llm.RequestOptions{MaxTokens: maxReplyTokens})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return EmptyMessage, nil
	}
	c.logger.Debug("feedback received", "provider", c.client.Provider(), "tokens", resp.OutputTokens, "duration", resp.Duration)

	if err := c.cache.Set(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Debug("feedback cache write failed", "error", err)
	}
	return text, nil
}
