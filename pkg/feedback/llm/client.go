// Package llm provides minimal clients for hosted language models.
//
// [AnthropicClient] speaks the Anthropic Messages API and [GeminiClient] the
// Gemini generateContent API. Both send requests through
// [httputil.Do] and retry transient failures with [httputil.Retry].
package llm

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/balancecoach/pkg/errors"
	"github.com/matzehuels/balancecoach/pkg/httputil"
)

// Provider names accepted by [New].
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Defaults applied by [Config.withDefaults].
const (
	DefaultMaxTokens  = 1024
	DefaultTimeout    = 60 * time.Second
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second
)

// ErrMissingAPIKey is returned when a client is used without credentials.
var ErrMissingAPIKey = errors.New(errors.ErrCodeUnauthorized, "api key not configured")

// Client sends a conversation to a model and returns its reply.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message, opts *RequestOptions) (*Response, error)

	// Provider returns the provider name, e.g. "anthropic".
	Provider() string

	// Model returns the model the client talks to.
	Model() string
}

// Message is one turn of a conversation.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// RequestOptions tunes a single request.
type RequestOptions struct {
	MaxTokens int
}

// Response is a model reply.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Duration     time.Duration
	Model        string
	StopReason   string
}

// WasTruncated reports whether the reply hit the token limit.
func (r *Response) WasTruncated() bool {
	return r.StopReason == "max_tokens" || r.StopReason == "MAX_TOKENS"
}

// Config configures a client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string        // overrides the provider endpoint, used in tests
	Timeout    time.Duration // per HTTP request
	Attempts   int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

func (c Config) withDefaults(model, baseURL string) Config {
	if c.Model == "" {
		c.Model = model
	}
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Attempts <= 0 {
		c.Attempts = DefaultAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// New returns the client for provider.
func New(provider string, cfg Config) (Client, error) {
	switch strings.ToLower(provider) {
	case ProviderAnthropic, "":
		return NewAnthropicClient(cfg), nil
	case ProviderGemini:
		return NewGeminiClient(cfg), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown feedback provider %q", provider)
}

func maxTokens(opts *RequestOptions) int {
	if opts != nil && opts.MaxTokens > 0 {
		return opts.MaxTokens
	}
	return DefaultMaxTokens
}

// classify maps HTTP failures onto coded errors while keeping them
// retryable where they were.
func classify(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "model provider did not answer in time")
	}
	var serr *httputil.StatusError
	if !errors.As(err, &serr) {
		return err
	}
	switch serr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "model provider rejected credentials")
	case http.StatusTooManyRequests:
		return errors.Wrap(errors.ErrCodeRateLimited, err, "model provider rate limit")
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "model provider error")
}
