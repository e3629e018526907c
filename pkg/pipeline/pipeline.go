// Package pipeline provides the core planning pipeline for planhaus.
//
// This package implements the complete plan → validate → render flow used by
// both the CLI and the HTTP API. Centralizing it keeps behavior consistent
// across entry points and gives both a single caching layer.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Plan: run the greedy optimizer over a space request, producing a
//     scored layout
//  2. Validate: re-check the placement against the space's constraints,
//     so cached layouts are verified in-process
//  3. Render: format the layout document (JSON, text summary, floor-plan
//     SVG, constraint diagram)
//
// Computed layouts and rendered artifacts are both cached by content hash.
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, space, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the default floor-plan SVG scale in pixels per unit.
const DefaultScale = 40.0

// DefaultCacheTTL is how long computed layouts stay cached. Planning is
// deterministic, so the TTL mostly bounds cache growth.
const DefaultCacheTTL = 24 * time.Hour

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options
	Strict  bool `json:"strict,omitempty"`  // strict constraint validation
	Refresh bool `json:"refresh,omitempty"` // bypass the layout cache

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // SVG pixels per unit
	Grid    bool     `json:"grid,omitempty"`  // draw a unit grid in the SVG

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults validates the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the scored placement.
	Layout plan.Layout

	// Document is the layout's export document.
	Document plan.Document

	// SpaceHash is the content hash of the space request.
	SpaceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RoomCount    int
	PlacedCount  int
	PlanTime     time.Duration
	ValidateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit bool

	// RenderHits records the formats whose artifacts came from the cache.
	RenderHits map[string]bool
}
