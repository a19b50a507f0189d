package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// cache backend without their entries colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:ml-features:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for serialized graphs.
func (k *ScopedKeyer) GraphKey(sourceHash string) string {
	return k.prefix + k.inner.GraphKey(sourceHash)
}

// RenderKey generates a prefixed key for renderings.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}

// EvalKey generates a prefixed key for evaluation results.
func (k *ScopedKeyer) EvalKey(graphHash, opsHash string) string {
	return k.prefix + k.inner.EvalKey(graphHash, opsHash)
}
