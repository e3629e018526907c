// Package cache provides layout result caching for the planner.
//
// Planning a space is deterministic, so a computed layout can be keyed by a
// content hash of the space request plus the options that influence the run.
// The CLI uses a file-backed cache under the user config directory; the
// server uses Redis; tests and --no-cache runs use the null cache.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached byte payloads.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKeyOpts are the option fields that distinguish cached layouts
// computed from the same space request.
type LayoutKeyOpts struct {
	Strict bool    // strict constraint validation
	Step   float64 // grid search resolution
}

// RenderKeyOpts are the option fields that change a rendered artifact
// produced from the same layout document.
type RenderKeyOpts struct {
	Scale float64 // SVG pixels per unit
	Grid  bool    // unit grid overlay
}

// Keyer generates cache keys for the planner's cacheable artifacts.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, given the content
	// hash of the space request.
	LayoutKey(spaceHash string, opts LayoutKeyOpts) string

	// RenderKey generates a key for a rendered artifact, given the content
	// hash of the layout document and the output format.
	RenderKey(layoutHash, format string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(spaceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", spaceHash, opts.Strict, opts.Step)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(layoutHash, format string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, format, opts.Scale, opts.Grid)
}
