package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several deployments or tenants share one Redis instance.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(spaceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(spaceHash, opts)
}

// RenderKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) RenderKey(layoutHash, format string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(layoutHash, format, opts)
}
