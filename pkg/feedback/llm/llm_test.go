package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/balancecoach/pkg/errors"
)

func testConfig(url string) Config {
	return Config{APIKey: "test-key", BaseURL: url, RetryDelay: time.Millisecond}
}

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" || r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("headers = %v", r.Header)
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if req.System != "be brief" || len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("request = %+v", req)
		}
		if req.MaxTokens != 200 {
			t.Errorf("max_tokens = %d", req.MaxTokens)
		}
		_, _ = w.Write([]byte(`{"model":"m","stop_reason":"end_turn",
			"content":[{"type":"text","text":"Nice "},{"type":"text","text":"work."}],
			"usage":{"input_tokens":12,"output_tokens":3}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(testConfig(srv.URL))
	resp, err := c.Complete(context.Background(), "be brief", []Message{{Role: "user", Content: "hello"}}, &RequestOptions{MaxTokens: 200})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "Nice work." || resp.InputTokens != 12 || resp.OutputTokens != 3 || resp.WasTruncated() {
		t.Errorf("response = %+v", resp)
	}
	if c.Provider() != ProviderAnthropic || c.Model() != AnthropicDefaultModel {
		t.Errorf("provider/model = %s/%s", c.Provider(), c.Model())
	}
}

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "sys" {
			t.Errorf("system = %+v", req.SystemInstruction)
		}
		if len(req.Contents) != 2 || req.Contents[1].Role != "model" {
			t.Errorf("contents = %+v", req.Contents)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Balanced."}]},"finishReason":"STOP"}],
			"usageMetadata":{"promptTokenCount":5,"candidatesTokenCount":2},"modelVersion":"gemini-test"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Model = "gemini-test"
	c := NewGeminiClient(cfg)
	msgs := []Message{{Role: "user", Content: "q"}, {Role: "assistant", Content: "a"}}
	resp, err := c.Complete(context.Background(), "sys", msgs, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "Balanced." || resp.StopReason != "STOP" || resp.Model != "gemini-test" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	resp, err := NewAnthropicClient(testConfig(srv.URL)).Complete(context.Background(), "", []Message{{Role: "user", Content: "x"}}, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "ok" || calls.Load() != 3 {
		t.Errorf("content = %q after %d calls", resp.Content, calls.Load())
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      errors.Code
		wantCalls int32
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrCodeUnauthorized, 1},
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeRateLimited, 3},
		{"bad request", http.StatusBadRequest, errors.ErrCodeNetwork, 1},
		{"server error", http.StatusInternalServerError, errors.ErrCodeNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			for _, c := range []Client{NewAnthropicClient(testConfig(srv.URL)), NewGeminiClient(testConfig(srv.URL))} {
				calls.Store(0)
				_, err := c.Complete(context.Background(), "", []Message{{Role: "user", Content: "x"}}, nil)
				if !errors.Is(err, tt.code) {
					t.Errorf("%s: err = %v, want code %s", c.Provider(), err, tt.code)
				}
				if calls.Load() != tt.wantCalls {
					t.Errorf("%s: calls = %d, want %d", c.Provider(), calls.Load(), tt.wantCalls)
				}
			}
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewAnthropicClient(testConfig(srv.URL)).Complete(ctx, "", []Message{{Role: "user", Content: "x"}}, nil)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("err = %v, want code %s", err, errors.ErrCodeTimeout)
	}
}

func TestMissingAPIKey(t *testing.T) {
	for _, c := range []Client{NewAnthropicClient(Config{}), NewGeminiClient(Config{})} {
		if _, err := c.Complete(context.Background(), "", nil, nil); !errors.Is(err, errors.ErrCodeUnauthorized) {
			t.Errorf("%s: err = %v", c.Provider(), err)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{"anthropic", ProviderAnthropic, false},
		{"", ProviderAnthropic, false},
		{"Gemini", ProviderGemini, false},
		{"openai", "", true},
	}
	for _, tt := range tests {
		c, err := New(tt.provider, Config{})
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q) err = %v", tt.provider, err)
			continue
		}
		if err == nil && c.Provider() != tt.want {
			t.Errorf("New(%q).Provider() = %s", tt.provider, c.Provider())
		}
	}
}
