package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/balancecoach/pkg/buildinfo"
	"github.com/matzehuels/balancecoach/pkg/observability"
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Do sends req with client and returns the response only for 2xx status
// codes; the caller must close its body. Failed responses are drained,
// closed and returned as a [StatusError], wrapped in [RetryableError] when
// the status is temporary. Requests without a User-Agent get
// [buildinfo.UserAgent]. Transport errors are always retryable unless the
// context has ended.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	method, host, path := req.Method, req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", buildinfo.UserAgent())
	}
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(err)
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	serr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	if serr.Temporary() {
		return nil, Retryable(serr)
	}
	return nil, serr
}
