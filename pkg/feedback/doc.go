// Package feedback turns a board into written coaching from a language
// model.
//
// [BuildPrompt] describes every shape (kind, side of the fulcrum, size and
// shade) together with the balance status, tilt and mode. [Coach] sends the
// prompt through an [llm.Client], caches answers, and never fails: missing
// credentials, network errors and API errors all produce [FallbackMessage].
//
// [Analyzer] runs coach requests in the background so interactive callers
// are never blocked. It exposes the "analyzing" flag and replaces the
// active request when a new one starts.
package feedback
