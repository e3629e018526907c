package plan

import (
	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/geometry"
)

// Defaults for optional room fields.
const (
	DefaultRoomType = "general"
	DefaultPriority = 5

	// MinPriority and MaxPriority bound the placement priority scale.
	MinPriority = 1
	MaxPriority = 10
)

// Room is a rectangular placement request. A room without a position is
// "unplaced"; the optimizer assigns positions by producing positioned copies.
type Room struct {
	ID         string              `json:"id" bson:"id"`
	Name       string              `json:"name" bson:"name"`
	Dimensions geometry.Dimensions `json:"dimensions" bson:"dimensions"`
	Type       string              `json:"type,omitempty" bson:"type,omitempty"`
	Position   *geometry.Position  `json:"position,omitempty" bson:"position,omitempty"`
	Priority   int                 `json:"priority,omitempty" bson:"priority,omitempty"`
}

// NewRoom constructs a room with validated dimensions and defaulted optional
// fields. The id may be empty; [NewSpace] assigns a generated id in that case.
func NewRoom(id, name string, width, height float64) (Room, error) {
	dims, err := geometry.NewDimensions(width, height)
	if err != nil {
		return Room{}, err
	}
	return Room{
		ID:         id,
		Name:       name,
		Dimensions: dims,
		Type:       DefaultRoomType,
		Priority:   DefaultPriority,
	}, nil
}

// Validate checks the room's invariants: positive dimensions, priority within
// [MinPriority, MaxPriority], and a well-formed id when one is set.
func (r Room) Validate() error {
	if _, err := geometry.NewDimensions(r.Dimensions.Width, r.Dimensions.Height); err != nil {
		return err
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return errors.New(errors.ErrCodeInvalidPriority,
			"room %q priority must be in [%d, %d], got %d", r.Name, MinPriority, MaxPriority, r.Priority)
	}
	if r.Position != nil {
		if _, err := geometry.NewPosition(r.Position.X, r.Position.Y); err != nil {
			return err
		}
	}
	if r.ID != "" {
		if err := errors.ValidateRoomID(r.ID); err != nil {
			return err
		}
	}
	return nil
}

// Area returns the room's footprint area.
func (r Room) Area() float64 { return r.Dimensions.Area() }

// Placed reports whether the room has an assigned position.
func (r Room) Placed() bool { return r.Position != nil }

// WithPosition returns a copy of the room carrying the given position.
// The receiver is not modified.
func (r Room) WithPosition(p geometry.Position) Room {
	r.Position = &p
	return r
}

// Rect returns the room's bounding rectangle. The second return value is
// false when the room is unplaced.
func (r Room) Rect() (geometry.Rect, bool) {
	if r.Position == nil {
		return geometry.Rect{}, false
	}
	return geometry.Rect{Pos: *r.Position, Size: r.Dimensions}, true
}

// CenterDistance returns the Euclidean distance between the centers of two
// rooms, or +Inf when either room is unplaced.
func CenterDistance(a, b Room) float64 {
	ra, ok := a.Rect()
	if !ok {
		return inf
	}
	rb, ok := b.Rect()
	if !ok {
		return inf
	}
	return geometry.CenterDistance(ra, rb)
}
