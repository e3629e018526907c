package plan

import (
	"math"
	"reflect"
	"testing"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/geometry"
)

func requestRoom(t *testing.T, id, name string, w, h float64, priority int) Room {
	t.Helper()
	r, err := NewRoom(id, name, w, h)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	r.Priority = priority
	return r
}

func TestGenerateNilSpace(t *testing.T) {
	_, err := Generate(nil)
	if err == nil {
		t.Fatal("expected error for nil space")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestGenerateEmptySpace(t *testing.T) {
	space := testSpace(t, 10, 8, nil, nil)
	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(layout.PlacedRooms) != 0 {
		t.Errorf("placed = %d, want 0", len(layout.PlacedRooms))
	}
	if !layout.IsValid() {
		t.Errorf("empty layout should be valid: %v", layout.Violations)
	}
	if layout.Score != 0 {
		t.Errorf("score = %v, want 0", layout.Score)
	}
	if got := layout.Metadata[MetaPlacementRate]; got != 0.0 {
		t.Errorf("placement_rate = %v, want 0", got)
	}
}

func TestGenerateBasicFloorPlan(t *testing.T) {
	// Three rooms in a 10x8 space: all fit, no constraints.
	space := testSpace(t, 10, 8, []Room{
		requestRoom(t, "living", "Living Room", 5, 4, 9),
		requestRoom(t, "bedroom", "Bedroom", 4, 3, 8),
		requestRoom(t, "kitchen", "Kitchen", 3, 3, 7),
	}, nil)

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := len(layout.PlacedRooms); got != 3 {
		t.Fatalf("placed = %d, want 3", got)
	}
	if !layout.IsValid() {
		t.Errorf("violations = %v, want none", layout.Violations)
	}

	// Highest priority claims the origin.
	first := layout.PlacedRooms[0]
	if first.Name != "Living Room" {
		t.Errorf("first placed = %q, want Living Room", first.Name)
	}
	if first.Position == nil || first.Position.X != 0 || first.Position.Y != 0 {
		t.Errorf("Living Room at %v, want (0, 0)", first.Position)
	}

	// Placement ratio 1.0 contributes 100; utilization 41/80 earns no bonus;
	// the compactness bonus is strictly positive.
	if layout.Score <= 100 || layout.Score >= 130 {
		t.Errorf("score = %v, want in (100, 130)", layout.Score)
	}

	if got := layout.Metadata[MetaAlgorithm]; got != AlgorithmGreedyPriority {
		t.Errorf("algorithm = %v, want %s", got, AlgorithmGreedyPriority)
	}
	if got := layout.Metadata[MetaPlacementRate]; got != 1.0 {
		t.Errorf("placement_rate = %v, want 1.0", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	space := testSpace(t, 12, 10, []Room{
		requestRoom(t, "a", "A", 5, 4, 9),
		requestRoom(t, "b", "B", 4, 4, 9),
		requestRoom(t, "c", "C", 3, 3, 5),
		requestRoom(t, "d", "D", 6, 2, 2),
	}, []Constraint{{
		Type:   ConstraintMinDistance,
		Params: map[string]any{"room1": "a", "room2": "d", "distance": 2.0},
	}})

	first, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !reflect.DeepEqual(first.PlacedRooms, second.PlacedRooms) {
		t.Error("placed rooms differ between identical runs")
	}
	if first.Score != second.Score {
		t.Errorf("scores differ: %v vs %v", first.Score, second.Score)
	}
	if !reflect.DeepEqual(first.Violations, second.Violations) {
		t.Errorf("violations differ: %v vs %v", first.Violations, second.Violations)
	}
}

func TestGenerateNoFalseOverlaps(t *testing.T) {
	// Pack a space tightly and verify the placed set is overlap-free.
	space := testSpace(t, 10, 10, []Room{
		requestRoom(t, "a", "A", 5, 5, 9),
		requestRoom(t, "b", "B", 5, 5, 8),
		requestRoom(t, "c", "C", 5, 5, 7),
		requestRoom(t, "d", "D", 5, 5, 6),
		requestRoom(t, "e", "E", 4, 4, 5),
	}, nil)

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i, a := range layout.PlacedRooms {
		ra, ok := a.Rect()
		if !ok {
			t.Fatalf("placed room %q has no position", a.Name)
		}
		// Bounds hold structurally for grid-search placements.
		if ra.Right() > space.Dimensions.Width+1e-9 || ra.Bottom() > space.Dimensions.Height+1e-9 {
			t.Errorf("room %q out of bounds at %v", a.Name, a.Position)
		}
		for _, b := range layout.PlacedRooms[i+1:] {
			rb, _ := b.Rect()
			if ra.Overlaps(rb) {
				t.Errorf("rooms %q and %q overlap", a.Name, b.Name)
			}
		}
	}
}

func TestGeneratePriorityOrdering(t *testing.T) {
	// Only one 3x3 room fits at the origin of a 4x4 space; the second cannot
	// be placed at all. Priority decides who wins.
	space := testSpace(t, 4, 4, []Room{
		requestRoom(t, "low", "Low", 3, 3, 1),
		requestRoom(t, "high", "High", 3, 3, 10),
	}, nil)

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(layout.PlacedRooms) != 1 {
		t.Fatalf("placed = %d, want 1", len(layout.PlacedRooms))
	}
	got := layout.PlacedRooms[0]
	if got.ID != "high" {
		t.Errorf("placed room = %q, want high-priority room", got.ID)
	}
	if got.Position.X != 0 || got.Position.Y != 0 {
		t.Errorf("position = %v, want (0, 0)", got.Position)
	}
}

func TestGenerateStableTieBreak(t *testing.T) {
	// Equal priorities keep their request order: A is attempted first and
	// claims the origin.
	space := testSpace(t, 10, 8, []Room{
		requestRoom(t, "a", "A", 3, 3, 5),
		requestRoom(t, "b", "B", 3, 3, 5),
	}, nil)

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(layout.PlacedRooms) != 2 {
		t.Fatalf("placed = %d, want 2", len(layout.PlacedRooms))
	}
	if layout.PlacedRooms[0].ID != "a" {
		t.Errorf("first placed = %q, want a", layout.PlacedRooms[0].ID)
	}
	if p := layout.PlacedRooms[0].Position; p.X != 0 || p.Y != 0 {
		t.Errorf("A at %v, want (0, 0)", p)
	}
}

func TestGenerateUnplaceableRoomOmitted(t *testing.T) {
	space := testSpace(t, 10, 8, []Room{
		requestRoom(t, "fits", "Fits", 5, 5, 9),
		requestRoom(t, "huge", "Huge", 20, 20, 8),
	}, nil)

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(layout.PlacedRooms) != 1 || layout.PlacedRooms[0].ID != "fits" {
		t.Fatalf("placed = %v, want only the fitting room", layout.PlacedRooms)
	}
	// Placement failure is data, not a violation.
	if !layout.IsValid() {
		t.Errorf("violations = %v, want none", layout.Violations)
	}
	if got := layout.Metadata[MetaPlacementRate]; got != 0.5 {
		t.Errorf("placement_rate = %v, want 0.5", got)
	}
}

func TestGenerateMinDistanceNaturallySatisfied(t *testing.T) {
	// Two 3x3 rooms with a 2.0 center-distance floor in a 10x10 space: the
	// top-left scan places them flush side by side, centers 3.0 apart.
	space := testSpace(t, 10, 10, []Room{
		requestRoom(t, "r1", "R1", 3, 3, 9),
		requestRoom(t, "r2", "R2", 3, 3, 8),
	}, []Constraint{{
		Type:   ConstraintMinDistance,
		Params: map[string]any{"room1": "r1", "room2": "r2", "distance": 2.0},
	}})

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !layout.IsValid() {
		t.Errorf("violations = %v, want none", layout.Violations)
	}

	// Independent check of the distance arithmetic with directly constructed
	// positions.
	dist := CenterDistance(
		placedRoom(t, "r1", "R1", 3, 3, 0, 0),
		placedRoom(t, "r2", "R2", 3, 3, 3, 0),
	)
	if math.Abs(dist-3.0) > 1e-9 {
		t.Errorf("center distance = %v, want 3.0", dist)
	}
}

func TestGenerateUtilizationBonus(t *testing.T) {
	tests := []struct {
		name      string
		rooms     []Room
		wantAbove float64
		wantBelow float64
	}{
		{
			name: "ideal utilization band",
			// 70 of 100 units: placement 100 + utilization 20 + compactness.
			rooms: []Room{
				requestRoom(t, "a", "A", 10, 5, 9),
				requestRoom(t, "b", "B", 10, 2, 8),
			},
			wantAbove: 120,
			wantBelow: 131,
		},
		{
			name: "over-dense utilization",
			// 90 of 100 units: reduced bonus of 10.
			rooms: []Room{
				requestRoom(t, "a", "A", 10, 5, 9),
				requestRoom(t, "b", "B", 10, 4, 8),
			},
			wantAbove: 110,
			wantBelow: 121,
		},
		{
			name: "sparse utilization",
			// 4 of 100 units: no bonus.
			rooms: []Room{
				requestRoom(t, "a", "A", 2, 2, 9),
			},
			wantAbove: 100,
			wantBelow: 111,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := testSpace(t, 10, 10, tt.rooms, nil)
			layout, err := Generate(&space)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(layout.PlacedRooms) != len(tt.rooms) {
				t.Fatalf("placed = %d, want %d", len(layout.PlacedRooms), len(tt.rooms))
			}
			if layout.Score <= tt.wantAbove || layout.Score >= tt.wantBelow {
				t.Errorf("score = %v, want in (%v, %v)", layout.Score, tt.wantAbove, tt.wantBelow)
			}
		})
	}
}

func TestGenerateViolationPenalty(t *testing.T) {
	// An adjacency ceiling the greedy scan cannot honor: the two rooms end up
	// farther apart than 1.0, costing one 10-point penalty.
	space := testSpace(t, 20, 4, []Room{
		requestRoom(t, "a", "A", 4, 4, 9),
		requestRoom(t, "b", "B", 4, 4, 8),
	}, []Constraint{{
		Type:   ConstraintAdjacency,
		Params: map[string]any{"room1": "a", "room2": "b"},
	}})

	layout, err := Generate(&space)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(layout.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly 1", layout.Violations)
	}
	if layout.IsValid() {
		t.Error("layout with violations must not be valid")
	}
	// The layout is still returned and scored.
	if layout.Score <= 0 {
		t.Errorf("score = %v, want positive despite penalty", layout.Score)
	}
}

func TestGenerateDoesNotMutateRequest(t *testing.T) {
	rooms := []Room{
		requestRoom(t, "a", "A", 3, 3, 9),
		requestRoom(t, "b", "B", 3, 3, 1),
	}
	space := testSpace(t, 10, 10, rooms, nil)

	before := make([]Room, len(space.Rooms))
	copy(before, space.Rooms)

	if _, err := Generate(&space); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i, r := range space.Rooms {
		if r.Position != nil {
			t.Errorf("request room %q gained a position", r.Name)
		}
		if !reflect.DeepEqual(r, before[i]) {
			t.Errorf("request room %q mutated", r.Name)
		}
	}
}

func TestPositionScore(t *testing.T) {
	origin := positionScore(geometry.Position{X: 0, Y: 0})
	if origin != 0 {
		t.Errorf("origin score = %v, want 0", origin)
	}
	farther := positionScore(geometry.Position{X: 3, Y: 2})
	if farther >= origin {
		t.Errorf("score %v at (3,2) should be below origin score %v", farther, origin)
	}
}
