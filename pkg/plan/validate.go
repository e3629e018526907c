package plan

import (
	"fmt"
)

// Validator checks a candidate room placement against a space's boundaries
// and constraints. It is stateless apart from the space it was built for and
// is safe to reuse across validation calls.
type Validator struct {
	space  Space
	strict bool
}

// NewValidator creates a validator for the given space.
func NewValidator(space Space) *Validator {
	return &Validator{space: space}
}

// NewStrictValidator creates a validator that additionally reports
// constraints referencing room ids absent from the candidate list. The
// default (non-strict) behavior silently skips such constraints, which can
// mask a typo'd id; strict mode surfaces them without changing any other
// check.
func NewStrictValidator(space Space) *Validator {
	return &Validator{space: space, strict: true}
}

// ValidateLayout is the pure validation entry point: it checks rooms against
// the space and returns the violation messages. Usable independently of the
// optimizer, e.g. to check a manually authored placement.
func ValidateLayout(space Space, rooms []Room) []string {
	return NewValidator(space).Validate(rooms)
}

// Validate returns the violation messages for the given rooms, in a fixed
// order: bounds, then overlaps, then custom constraints. Unplaced rooms are
// tolerated and skipped. Validate never fails; an empty result means the
// placement satisfies every check.
func (v *Validator) Validate(rooms []Room) []string {
	var violations []string
	violations = append(violations, v.checkBounds(rooms)...)
	violations = append(violations, v.checkOverlaps(rooms)...)
	violations = append(violations, v.checkConstraints(rooms)...)
	return violations
}

// checkBounds reports rooms extending past the space boundary. The far edge
// may touch the boundary exactly; only strict overshoot is a violation.
// Each axis is checked independently, so a room can produce two messages.
func (v *Validator) checkBounds(rooms []Room) []string {
	var violations []string
	for _, room := range rooms {
		rect, ok := room.Rect()
		if !ok {
			continue
		}

		if rect.Right() > v.space.Dimensions.Width {
			violations = append(violations, fmt.Sprintf(
				"Room '%s' exceeds space width boundary (%g > %g)",
				room.Name, rect.Right(), v.space.Dimensions.Width))
		}
		if rect.Bottom() > v.space.Dimensions.Height {
			violations = append(violations, fmt.Sprintf(
				"Room '%s' exceeds space height boundary (%g > %g)",
				room.Name, rect.Bottom(), v.space.Dimensions.Height))
		}
	}
	return violations
}

// checkOverlaps reports every overlapping pair once. Edge-touching rooms do
// not overlap under the half-open interval semantics.
func (v *Validator) checkOverlaps(rooms []Room) []string {
	var violations []string
	for i, a := range rooms {
		ra, ok := a.Rect()
		if !ok {
			continue
		}
		for _, b := range rooms[i+1:] {
			rb, ok := b.Rect()
			if !ok {
				continue
			}
			if ra.Overlaps(rb) {
				violations = append(violations, fmt.Sprintf(
					"Rooms '%s' and '%s' overlap", a.Name, b.Name))
			}
		}
	}
	return violations
}

// checkConstraints dispatches the space's constraints in declaration order.
// Unrecognized constraint types are ignored.
func (v *Validator) checkConstraints(rooms []Room) []string {
	var violations []string
	for _, c := range v.space.Constraints {
		switch c.Type {
		case ConstraintMinDistance:
			violations = append(violations, v.checkMinDistance(rooms, c)...)
		case ConstraintAdjacency:
			violations = append(violations, v.checkAdjacency(rooms, c)...)
		}
	}
	return violations
}

// lookupPair resolves both rooms referenced by a relational constraint.
// A constraint whose ids are missing or whose rooms are unplaced is skipped
// as a best-effort policy; strict mode reports missing ids instead.
func (v *Validator) lookupPair(rooms []Room, c Constraint) (Room, Room, []string, bool) {
	id1, id2 := c.RoomIDs()
	r1, ok1 := findRoom(rooms, id1)
	r2, ok2 := findRoom(rooms, id2)

	var missing []string
	if v.strict {
		if !ok1 {
			missing = append(missing, fmt.Sprintf(
				"Constraint '%s' references unknown room id '%s'", c.Type, id1))
		}
		if !ok2 {
			missing = append(missing, fmt.Sprintf(
				"Constraint '%s' references unknown room id '%s'", c.Type, id2))
		}
	}

	if !ok1 || !ok2 || !r1.Placed() || !r2.Placed() {
		return Room{}, Room{}, missing, false
	}
	return r1, r2, missing, true
}

func (v *Validator) checkMinDistance(rooms []Room, c Constraint) []string {
	r1, r2, violations, ok := v.lookupPair(rooms, c)
	if !ok {
		return violations
	}

	floor := c.MinDistance()
	if dist := CenterDistance(r1, r2); dist < floor {
		violations = append(violations, fmt.Sprintf(
			"Minimum distance constraint violated between '%s' and '%s' (%.2f < %g)",
			r1.Name, r2.Name, dist, floor))
	}
	return violations
}

func (v *Validator) checkAdjacency(rooms []Room, c Constraint) []string {
	r1, r2, violations, ok := v.lookupPair(rooms, c)
	if !ok {
		return violations
	}

	ceiling := c.MaxDistance()
	if dist := CenterDistance(r1, r2); dist > ceiling {
		violations = append(violations, fmt.Sprintf(
			"Adjacency constraint violated between '%s' and '%s' (%.2f > %g)",
			r1.Name, r2.Name, dist, ceiling))
	}
	return violations
}

func findRoom(rooms []Room, id string) (Room, bool) {
	if id == "" {
		return Room{}, false
	}
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}
