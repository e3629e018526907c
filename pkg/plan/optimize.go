package plan

import (
	"math"
	"sort"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/geometry"
)

// GridStep is the placement search resolution in space units. Candidate
// positions are multiples of this step along both axes.
const GridStep = 0.5

// AlgorithmGreedyPriority identifies the placement algorithm in layout
// metadata.
const AlgorithmGreedyPriority = "greedy_priority"

// Scoring weights and thresholds.
const (
	placementWeight   = 100.0
	violationPenalty  = 10.0
	utilizationIdeal  = 20.0 // bonus inside [utilizationLow, utilizationHigh]
	utilizationDense  = 10.0 // reduced bonus above utilizationHigh (too cramped)
	utilizationLow    = 0.6
	utilizationHigh   = 0.8
	compactnessWeight = 10.0
)

// Optimizer places a space's rooms with a greedy, priority-ordered grid
// search and scores the result. An Optimizer holds no mutable state across
// runs; the same instance may generate layouts repeatedly.
type Optimizer struct {
	space     Space
	validator *Validator
	step      float64
}

// NewOptimizer creates an optimizer for the given space.
func NewOptimizer(space Space) *Optimizer {
	return &Optimizer{
		space:     space,
		validator: NewValidator(space),
		step:      GridStep,
	}
}

// NewStrictOptimizer creates an optimizer whose final validation pass also
// reports constraints that reference unknown or unplaced room ids instead of
// skipping them.
func NewStrictOptimizer(space Space) *Optimizer {
	return &Optimizer{
		space:     space,
		validator: NewStrictValidator(space),
		step:      GridStep,
	}
}

// Generate runs the placement algorithm on the given space and returns the
// scored layout. It fails only when space is nil; infeasible placements
// degrade to a partial layout rather than an error.
func Generate(space *Space) (Layout, error) {
	if space == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "no space supplied")
	}
	return NewOptimizer(*space).Generate(), nil
}

// Generate places rooms highest priority first, validates the full placed
// set, and scores the result. Rooms that fit nowhere are omitted.
func (o *Optimizer) Generate() Layout {
	ordered := make([]Room, len(o.space.Rooms))
	copy(ordered, o.space.Rooms)
	// Stable sort keeps the request order among equal priorities.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var placed []Room
	for _, room := range ordered {
		pos, ok := o.findBestPosition(room, placed)
		if !ok {
			continue
		}
		placed = append(placed, room.WithPosition(pos))
	}

	violations := o.validator.Validate(placed)
	score := o.score(placed, violations)

	placementRate := 0.0
	if len(o.space.Rooms) > 0 {
		placementRate = float64(len(placed)) / float64(len(o.space.Rooms))
	}

	return Layout{
		Space:       o.space,
		PlacedRooms: placed,
		Score:       score,
		Violations:  violations,
		Metadata: map[string]any{
			MetaTotalRooms:    len(o.space.Rooms),
			MetaPlacedRooms:   len(placed),
			MetaPlacementRate: placementRate,
			MetaAlgorithm:     AlgorithmGreedyPriority,
		},
	}
}

// findBestPosition scans the grid row-major from the origin and returns the
// highest-scoring collision-free position. Only geometric overlap against
// already-placed rooms is tested here; bounds hold structurally because the
// scan ranges keep the room inside the space, and custom constraints are
// enforced by the final validation pass.
//
// The maximum is tracked explicitly rather than short-circuiting on the
// first hit, so the scan stays correct if the position score ever stops
// being monotone in scan order.
func (o *Optimizer) findBestPosition(room Room, placed []Room) (geometry.Position, bool) {
	var (
		best      geometry.Position
		bestScore = math.Inf(-1)
		found     bool
	)

	for y := 0.0; y+room.Dimensions.Height <= o.space.Dimensions.Height; y += o.step {
		for x := 0.0; x+room.Dimensions.Width <= o.space.Dimensions.Width; x += o.step {
			pos := geometry.Position{X: x, Y: y}
			if o.collides(room.WithPosition(pos), placed) {
				continue
			}
			if s := positionScore(pos); s > bestScore {
				bestScore = s
				best = pos
				found = true
			}
		}
	}

	return best, found
}

// collides reports whether the candidate overlaps any placed room.
func (o *Optimizer) collides(candidate Room, placed []Room) bool {
	rect, ok := candidate.Rect()
	if !ok {
		return false
	}
	for _, other := range placed {
		if or, ok := other.Rect(); ok && rect.Overlaps(or) {
			return true
		}
	}
	return false
}

// positionScore prefers positions near the origin corner; the origin itself
// scores 0, the maximum attainable.
func positionScore(p geometry.Position) float64 {
	return -(p.X + p.Y)
}

// score combines placement completeness, violation penalties, a utilization
// bonus, and a compactness bonus into the layout quality score.
func (o *Optimizer) score(placed []Room, violations []string) float64 {
	var score float64

	placementRatio := 0.0
	if len(o.space.Rooms) > 0 {
		placementRatio = float64(len(placed)) / float64(len(o.space.Rooms))
	}
	score += placementRatio * placementWeight

	score -= float64(len(violations)) * violationPenalty

	var placedArea float64
	for _, r := range placed {
		placedArea += r.Area()
	}
	utilization := 0.0
	if area := o.space.Area(); area > 0 {
		utilization = placedArea / area
	}
	switch {
	case utilization >= utilizationLow && utilization <= utilizationHigh:
		score += utilizationIdeal
	case utilization > utilizationHigh:
		score += utilizationDense
	}

	if len(placed) > 0 {
		var cornerSum float64
		for _, r := range placed {
			if r.Position != nil {
				cornerSum += r.Position.X + r.Position.Y
			}
		}
		avg := cornerSum / float64(len(placed))
		maxPossible := o.space.Dimensions.Width + o.space.Dimensions.Height
		compactness := 1 - avg/maxPossible
		score += compactness * compactnessWeight
	}

	return score
}
