package cache

// ScopedKeyer prefixes every key from an inner Keyer, giving deployments
// that share one Redis their own namespace.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "classroom-7:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (or the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FeedbackKey returns the prefixed feedback key.
func (k *ScopedKeyer) FeedbackKey(provider, model, prompt string) string {
	return k.prefix + k.inner.FeedbackKey(provider, model, prompt)
}
