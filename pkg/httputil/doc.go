// Package httputil provides the HTTP plumbing shared by the language model
// clients.
//
// # Requests
//
// [Do] sends a request, reports it to the registered observability hooks,
// and classifies failures: transport errors, 429 and 5xx responses come back
// wrapped in [RetryableError]; other non-2xx responses are returned as a
// plain [StatusError].
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff while it keeps
// failing with a [RetryableError]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := httputil.Do(ctx, client, req)
//	    ...
//	})
//
// [RetryWithBackoff] uses 3 attempts starting at one second.
package httputil
