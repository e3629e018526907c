package plan

import (
	"encoding/json"
	"math"
)

var inf = math.Inf(1)

// Recognized constraint types. The validator silently ignores any other
// type so that newer constraint kinds can ride through older binaries.
const (
	ConstraintMinDistance = "min_distance"
	ConstraintAdjacency   = "adjacency"
)

// Parameter keys shared by the relational constraints.
const (
	paramRoom1       = "room1"
	paramRoom2       = "room2"
	paramDistance    = "distance"
	paramMaxDistance = "max_distance"
)

// DefaultAdjacencyDistance is the ceiling applied to adjacency constraints
// that omit an explicit max_distance parameter.
const DefaultAdjacencyDistance = 1.0

// Constraint is a relational rule between rooms, dispatched by Type.
// Params carries type-specific values; unknown keys are preserved untouched.
type Constraint struct {
	Type        string         `json:"type" bson:"type"`
	Params      map[string]any `json:"params,omitempty" bson:"params,omitempty"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
}

// RoomIDs returns the two room ids referenced by a relational constraint.
// Missing or non-string parameters come back as empty strings.
func (c Constraint) RoomIDs() (string, string) {
	return c.stringParam(paramRoom1), c.stringParam(paramRoom2)
}

// MinDistance returns the distance floor for a min_distance constraint,
// defaulting to 0 when the parameter is absent.
func (c Constraint) MinDistance() float64 {
	return c.floatParam(paramDistance, 0)
}

// MaxDistance returns the distance ceiling for an adjacency constraint,
// defaulting to [DefaultAdjacencyDistance] when the parameter is absent.
func (c Constraint) MaxDistance() float64 {
	return c.floatParam(paramMaxDistance, DefaultAdjacencyDistance)
}

func (c Constraint) stringParam(key string) string {
	s, _ := c.Params[key].(string)
	return s
}

// floatParam extracts a numeric parameter. JSON decoding yields float64, but
// hand-built Params maps may carry int or json.Number values.
func (c Constraint) floatParam(key string, def float64) float64 {
	v, ok := c.Params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return def
}
