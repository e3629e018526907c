package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/geometry"
)

// Space is the bounded planning area together with the placement request:
// an ordered list of unplaced room templates and the constraints to satisfy.
type Space struct {
	Dimensions  geometry.Dimensions `json:"dimensions" bson:"dimensions"`
	Rooms       []Room              `json:"rooms,omitempty" bson:"rooms,omitempty"`
	Constraints []Constraint        `json:"constraints,omitempty" bson:"constraints,omitempty"`
}

// roomIDNamespace scopes UUIDs generated for id-less rooms.
var roomIDNamespace = uuid.MustParse("7d0f3c6a-1e52-4b8d-9a47-c3f5e821b064")

// generatedRoomID derives a UUID for a room that arrived without an id.
// The id is a function of the room's slot and content, not of randomness,
// so parsing the same request twice builds the same Space. Content-hash
// cache keys depend on this.
func generatedRoomID(index int, r Room) string {
	data := fmt.Sprintf("%d/%s/%gx%g", index, r.Name, r.Dimensions.Width, r.Dimensions.Height)
	return uuid.NewSHA1(roomIDNamespace, []byte(data)).String()
}

// NewSpace validates the rooms and constraints and returns a Space.
// Rooms without an id receive a generated UUID, which keeps constraint
// lookups unambiguous even across repeated calls.
func NewSpace(dims geometry.Dimensions, rooms []Room, constraints []Constraint) (Space, error) {
	if _, err := geometry.NewDimensions(dims.Width, dims.Height); err != nil {
		return Space{}, err
	}

	out := make([]Room, len(rooms))
	for i, r := range rooms {
		if r.Type == "" {
			r.Type = DefaultRoomType
		}
		if r.Priority == 0 {
			r.Priority = DefaultPriority
		}
		if err := r.Validate(); err != nil {
			return Space{}, err
		}
		if r.ID == "" {
			r.ID = generatedRoomID(i, r)
		}
		out[i] = r
	}

	for _, c := range constraints {
		if err := errors.ValidateConstraintType(c.Type); err != nil {
			return Space{}, err
		}
	}

	return Space{Dimensions: dims, Rooms: out, Constraints: constraints}, nil
}

// Area returns the total space area.
func (s Space) Area() float64 { return s.Dimensions.Area() }

// TotalRoomArea returns the summed area of all requested rooms.
func (s Space) TotalRoomArea() float64 {
	var total float64
	for _, r := range s.Rooms {
		total += r.Area()
	}
	return total
}

// Utilization returns the ratio of requested room area to space area.
func (s Space) Utilization() float64 {
	area := s.Area()
	if area <= 0 {
		return 0
	}
	return s.TotalRoomArea() / area
}

// RoomByID returns the room with the given id, or false if absent.
// IDs are advisory; when duplicates exist the first match wins.
func (s Space) RoomByID(id string) (Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}
