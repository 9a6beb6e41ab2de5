package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/balancecoach/pkg/httputil"
)

// Gemini defaults.
const (
	GeminiBaseURL      = "https://generativelanguage.googleapis.com"
	GeminiDefaultModel = "gemini-2.0-flash"
)

// GeminiClient talks to the Gemini generateContent API.
type GeminiClient struct {
	cfg Config
}

// NewGeminiClient returns a client for cfg, filling in defaults.
func NewGeminiClient(cfg Config) *GeminiClient {
	return &GeminiClient{cfg: cfg.withDefaults(GeminiDefaultModel, GeminiBaseURL)}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// Provider implements [Client].
func (c *GeminiClient) Provider() string { return ProviderGemini }

// Model implements [Client].
func (c *GeminiClient) Model() string { return c.cfg.Model }

// Complete sends messages to the model and returns the text of the first
// candidate.
func (c *GeminiClient) Complete(ctx context.Context, systemPrompt string, messages []Message, opts *RequestOptions) (*Response, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	start := time.Now()

	var payload geminiRequest
	if systemPrompt != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		payload.Contents = append(payload.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}
	payload.GenerationConfig.MaxOutputTokens = maxTokens(opts)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, url.PathEscape(c.cfg.Model))

	var out geminiResponse
	err = httputil.Retry(ctx, c.cfg.Attempts, c.cfg.RetryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)

		resp, err := httputil.Do(ctx, c.cfg.HTTPClient, req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	r := &Response{
		InputTokens:  out.UsageMetadata.PromptTokenCount,
		OutputTokens: out.UsageMetadata.CandidatesTokenCount,
		Duration:     time.Since(start),
		Model:        out.ModelVersion,
	}
	if len(out.Candidates) > 0 {
		var text strings.Builder
		for _, p := range out.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
		r.Content = text.String()
		r.StopReason = out.Candidates[0].FinishReason
	}
	return r, nil
}

var _ Client = (*GeminiClient)(nil)
