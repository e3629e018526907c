// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about planner execution and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlannerHooks(&myPlannerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Planner().OnPlanStart(ctx, roomCount)
//	// ... run the optimizer ...
//	observability.Planner().OnPlanComplete(ctx, placedCount, score, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Planner Hooks
// =============================================================================

// PlannerHooks receives events from the planning pipeline.
type PlannerHooks interface {
	// Plan events
	OnPlanStart(ctx context.Context, roomCount int)
	OnPlanComplete(ctx context.Context, placedCount int, score float64, duration time.Duration, err error)

	// Validation events
	OnValidateStart(ctx context.Context, roomCount int)
	OnValidateComplete(ctx context.Context, violationCount int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Defaults
// =============================================================================

type noopPlannerHooks struct{}

func (noopPlannerHooks) OnPlanStart(context.Context, int)                                   {}
func (noopPlannerHooks) OnPlanComplete(context.Context, int, float64, time.Duration, error) {}
func (noopPlannerHooks) OnValidateStart(context.Context, int)                               {}
func (noopPlannerHooks) OnValidateComplete(context.Context, int, time.Duration)             {}
func (noopPlannerHooks) OnRenderStart(context.Context, string)                              {}
func (noopPlannerHooks) OnRenderComplete(context.Context, string, time.Duration, error)     {}

type noopCacheHooks struct{}

func (noopCacheHooks) OnCacheHit(context.Context, string)      {}
func (noopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (noopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu           sync.RWMutex
	plannerHooks PlannerHooks = noopPlannerHooks{}
	cacheHooks   CacheHooks   = noopCacheHooks{}
)

// SetPlannerHooks registers planner hooks. Pass nil to restore the no-op
// default. Intended to be called once at startup, before planning begins.
func SetPlannerHooks(h PlannerHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		plannerHooks = noopPlannerHooks{}
		return
	}
	plannerHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Planner returns the registered planner hooks.
func Planner() PlannerHooks {
	mu.RLock()
	defer mu.RUnlock()
	return plannerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
