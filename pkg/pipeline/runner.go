package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planhaus/planhaus/pkg/cache"
	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/observability"
	"github.com/planhaus/planhaus/pkg/plan"
	"github.com/planhaus/planhaus/pkg/render"
)

// Runner executes the planning pipeline with caching.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil keyer falls back to the default key scheme.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the full pipeline: plan the space, validate the placement,
// export the layout document, and render the requested formats.
func (r *Runner) Execute(ctx context.Context, space plan.Space, opts Options) (*Result, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	spaceHash, err := hashSpace(space)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SpaceHash: spaceHash,
		Artifacts: make(map[string][]byte),
		Stats:     Stats{RoomCount: len(space.Rooms)},
	}

	planStart := time.Now()
	layout, hit, err := r.planWithCache(ctx, space, spaceHash, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.PlacedCount = len(layout.PlacedRooms)
	result.CacheInfo.PlanHit = hit

	// Validation runs as its own stage so cached layouts are re-checked in
	// this process, not trusted from the stored entry.
	observability.Planner().OnValidateStart(ctx, len(layout.PlacedRooms))
	validateStart := time.Now()
	validator := plan.NewValidator(space)
	if opts.Strict {
		validator = plan.NewStrictValidator(space)
	}
	layout.Violations = validator.Validate(layout.PlacedRooms)
	result.Stats.ValidateTime = time.Since(validateStart)
	observability.Planner().OnValidateComplete(ctx, len(layout.Violations), result.Stats.ValidateTime)

	result.Layout = layout
	result.Document = layout.Export()

	docHash, err := hashDocument(result.Document)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		// The constraint diagram is a function of the space request, not
		// of the exported document, so it keys on the space hash.
		contentHash := docHash
		if format == FormatDOT {
			contentHash = spaceHash
		}
		artifact, cached, err := r.renderWithCache(ctx, space, result.Document, contentHash, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = artifact
		if cached {
			if result.CacheInfo.RenderHits == nil {
				result.CacheInfo.RenderHits = make(map[string]bool)
			}
			result.CacheInfo.RenderHits[format] = true
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("pipeline complete",
		"rooms", result.Stats.RoomCount,
		"placed", result.Stats.PlacedCount,
		"score", layout.Score,
		"cached", hit,
		"plan_time", result.Stats.PlanTime,
		"render_time", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo plans a space and reports whether the layout came
// from the cache. Callers that only need the layout and not the rendered
// artifacts use this directly.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, space plan.Space, opts Options) (plan.Layout, bool, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return plan.Layout{}, false, err
		}
	}
	spaceHash, err := hashSpace(space)
	if err != nil {
		return plan.Layout{}, false, err
	}
	return r.planWithCache(ctx, space, spaceHash, opts)
}

// planWithCache returns the cached layout for the space when present,
// otherwise runs the optimizer and stores the result.
func (r *Runner) planWithCache(ctx context.Context, space plan.Space, spaceHash string, opts Options) (plan.Layout, bool, error) {
	key := r.Keyer.LayoutKey(spaceHash, cache.LayoutKeyOpts{
		Strict: opts.Strict,
		Step:   plan.GridStep,
	})

	if !opts.Refresh {
		if data, found, err := r.Cache.Get(ctx, key); err == nil && found {
			var layout plan.Layout
			if err := json.Unmarshal(data, &layout); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				r.Logger.Debug("layout cache hit", "key", key[:12])
				return layout, true, nil
			}
			// A corrupt entry is treated as a miss and overwritten below.
			r.Logger.Warn("discarding corrupt cache entry", "key", key[:12])
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Planner().OnPlanStart(ctx, len(space.Rooms))
	start := time.Now()

	var optimizer *plan.Optimizer
	if opts.Strict {
		optimizer = plan.NewStrictOptimizer(space)
	} else {
		optimizer = plan.NewOptimizer(space)
	}
	layout := optimizer.Generate()

	observability.Planner().OnPlanComplete(ctx, len(layout.PlacedRooms), layout.Score, time.Since(start), nil)

	if data, err := json.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
			r.Logger.Warn("failed to cache layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// renderWithCache returns the cached artifact for the content and format
// when present, otherwise renders and stores it.
func (r *Runner) renderWithCache(ctx context.Context, space plan.Space, doc plan.Document, contentHash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.RenderKey(contentHash, format, cache.RenderKeyOpts{
		Scale: opts.Scale,
		Grid:  opts.Grid,
	})

	if !opts.Refresh {
		if data, found, err := r.Cache.Get(ctx, key); err == nil && found {
			observability.Cache().OnCacheHit(ctx, "render")
			r.Logger.Debug("render cache hit", "format", format, "key", key[:12])
			return data, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	artifact, err := r.renderFormat(ctx, space, doc, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, artifact, DefaultCacheTTL); err != nil {
		r.Logger.Warn("failed to cache artifact", "format", format, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(artifact))
	}

	return artifact, false, nil
}

// renderFormat produces one output artifact for the layout document.
func (r *Runner) renderFormat(ctx context.Context, space plan.Space, doc plan.Document, format string, opts Options) ([]byte, error) {
	observability.Planner().OnRenderStart(ctx, format)
	start := time.Now()

	var (
		artifact []byte
		err      error
	)
	switch format {
	case FormatJSON:
		artifact, err = json.MarshalIndent(doc, "", "  ")
	case FormatText:
		artifact = []byte(render.Summary(doc))
	case FormatSVG:
		svgOpts := []render.SVGOption{render.WithScale(opts.Scale)}
		if opts.Grid {
			svgOpts = append(svgOpts, render.WithGrid())
		}
		artifact = render.FloorPlanSVG(doc, svgOpts...)
	case FormatDOT:
		artifact = []byte(render.ConstraintDOT(space))
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}

	observability.Planner().OnRenderComplete(ctx, format, time.Since(start), err)
	return artifact, err
}

// hashSpace computes the content hash identifying a space request.
func hashSpace(space plan.Space) (string, error) {
	data, err := json.Marshal(space)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidSpace, err, "hash space request")
	}
	return cache.Hash(data), nil
}

// hashDocument computes the content hash identifying a layout document.
func hashDocument(doc plan.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidSpace, err, "hash layout document")
	}
	return cache.Hash(data), nil
}
