package cache

// Keyer generates cache keys.
type Keyer interface {
	// FeedbackKey identifies a coach response for one prompt sent to one
	// provider and model.
	FeedbackKey(provider, model, prompt string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FeedbackKey returns "feedback:<sha256>".
func (DefaultKeyer) FeedbackKey(provider, model, prompt string) string {
	return hashKey("feedback", provider, model, prompt)
}
