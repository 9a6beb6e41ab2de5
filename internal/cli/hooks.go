package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/balancecoach/pkg/observability"
)

// registerLogHooks routes engine, feedback, cache and outbound HTTP events
// to logger at debug level.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetEngineHooks(h)
	observability.SetFeedbackHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnPlace(kind string, count, attempts int) {
	h.logger.Debug("placed", "kind", kind, "shapes", count, "attempts", attempts)
}

func (h logHooks) OnPlacementFailed(kind string, attempts int) {
	h.logger.Debug("no space", "kind", kind, "attempts", attempts)
}

func (h logHooks) OnChallenge(pattern string, target, placed int) {
	h.logger.Debug("challenge", "pattern", pattern, "target", target, "placed", placed)
}

func (h logHooks) OnRejected(op, shapeID string) {
	h.logger.Debug("edit rejected", "op", op, "shape", shapeID)
}

func (h logHooks) OnFeedbackStart(_ context.Context, provider string, shapeCount int) {
	h.logger.Debug("feedback requested", "provider", provider, "shapes", shapeCount)
}

func (h logHooks) OnFeedbackComplete(_ context.Context, provider string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("feedback failed", "provider", provider, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("feedback received", "provider", provider, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.EngineHooks   = logHooks{}
	_ observability.FeedbackHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)
