package plan

import (
	"github.com/planhaus/planhaus/pkg/geometry"
)

// Metadata keys populated by the optimizer.
const (
	MetaTotalRooms    = "total_rooms"
	MetaPlacedRooms   = "placed_rooms"
	MetaPlacementRate = "placement_rate"
	MetaAlgorithm     = "algorithm"
)

// Layout is the result of one optimizer run: the rooms that were placed
// (each carrying a position), the quality score, and the violations reported
// by the final validation pass. A Layout is a pure output value; nothing in
// this package mutates one after it is built.
type Layout struct {
	Space       Space          `json:"space" bson:"space"`
	PlacedRooms []Room         `json:"placed_rooms,omitempty" bson:"placed_rooms,omitempty"`
	Score       float64        `json:"score" bson:"score"`
	Violations  []string       `json:"violations,omitempty" bson:"violations,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// IsValid reports whether the layout has no constraint violations.
// Validity reflects validation only, not placement completeness; check
// PlacementRate for the latter.
func (l Layout) IsValid() bool { return len(l.Violations) == 0 }

// PlacedArea returns the summed area of the placed rooms.
func (l Layout) PlacedArea() float64 {
	var total float64
	for _, r := range l.PlacedRooms {
		total += r.Area()
	}
	return total
}

// PlacementRate returns the fraction of requested rooms that were placed,
// or 0 when the space requested no rooms.
func (l Layout) PlacementRate() float64 {
	if len(l.Space.Rooms) == 0 {
		return 0
	}
	return float64(len(l.PlacedRooms)) / float64(len(l.Space.Rooms))
}

// =============================================================================
// Export Document - Stable JSON Boundary
// =============================================================================

// Document is the stable JSON shape handed to exporters and API clients.
// It flattens the layout into dimensions, rooms, metrics, and metadata so
// consumers need no knowledge of the internal model.
type Document struct {
	Dimensions DimensionsDoc  `json:"dimensions" bson:"dimensions"`
	Rooms      []RoomDoc      `json:"rooms" bson:"rooms"`
	Metrics    MetricsDoc     `json:"metrics" bson:"metrics"`
	Metadata   map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// DimensionsDoc describes the space in the export document.
type DimensionsDoc struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Area   float64 `json:"area" bson:"area"`
}

// RoomDoc describes one placed room in the export document.
type RoomDoc struct {
	ID         string             `json:"id" bson:"id"`
	Name       string             `json:"name" bson:"name"`
	Type       string             `json:"type" bson:"type"`
	Dimensions DimensionsDoc      `json:"dimensions" bson:"dimensions"`
	Position   *geometry.Position `json:"position" bson:"position"`
}

// MetricsDoc carries the layout quality metrics in the export document.
type MetricsDoc struct {
	Score       float64  `json:"score" bson:"score"`
	Utilization float64  `json:"utilization" bson:"utilization"`
	IsValid     bool     `json:"is_valid" bson:"is_valid"`
	Violations  []string `json:"violations" bson:"violations"`
}

// Export flattens the layout into its export document.
// Utilization here is the requested-room ratio of the space, matching the
// semantics surfaced to planners (how much of the space the request asks for).
func (l Layout) Export() Document {
	rooms := make([]RoomDoc, len(l.PlacedRooms))
	for i, r := range l.PlacedRooms {
		rooms[i] = RoomDoc{
			ID:   r.ID,
			Name: r.Name,
			Type: r.Type,
			Dimensions: DimensionsDoc{
				Width:  r.Dimensions.Width,
				Height: r.Dimensions.Height,
				Area:   r.Area(),
			},
			Position: r.Position,
		}
	}

	violations := l.Violations
	if violations == nil {
		violations = []string{}
	}

	return Document{
		Dimensions: DimensionsDoc{
			Width:  l.Space.Dimensions.Width,
			Height: l.Space.Dimensions.Height,
			Area:   l.Space.Area(),
		},
		Rooms: rooms,
		Metrics: MetricsDoc{
			Score:       l.Score,
			Utilization: l.Space.Utilization(),
			IsValid:     l.IsValid(),
			Violations:  violations,
		},
		Metadata: l.Metadata,
	}
}
