// Package geometry provides the 2D primitives used by the layout planner.
//
// All coordinates are in space units (typically meters) with the origin at
// the top-left corner: x grows to the right, y grows downward. Values are
// plain immutable structs; constructors enforce the invariants and callers
// should treat constructed values as read-only.
package geometry

import (
	"fmt"
	"math"

	"github.com/planhaus/planhaus/pkg/errors"
)

// Dimensions describes the width and height of a rectangular area.
// Both sides must be strictly positive.
type Dimensions struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewDimensions validates and returns a Dimensions value.
func NewDimensions(width, height float64) (Dimensions, error) {
	if width <= 0 {
		return Dimensions{}, errors.New(errors.ErrCodeInvalidDimensions, "width must be positive, got %v", width)
	}
	if height <= 0 {
		return Dimensions{}, errors.New(errors.ErrCodeInvalidDimensions, "height must be positive, got %v", height)
	}
	return Dimensions{Width: width, Height: height}, nil
}

// Area returns the enclosed area.
func (d Dimensions) Area() float64 { return d.Width * d.Height }

// String formats dimensions as "WxH".
func (d Dimensions) String() string { return fmt.Sprintf("%gx%g", d.Width, d.Height) }

// Position is the top-left corner of a rectangle in space coordinates.
// Both coordinates must be non-negative.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// NewPosition validates and returns a Position value.
func NewPosition(x, y float64) (Position, error) {
	if x < 0 {
		return Position{}, errors.New(errors.ErrCodeInvalidPosition, "x must be non-negative, got %v", x)
	}
	if y < 0 {
		return Position{}, errors.New(errors.ErrCodeInvalidPosition, "y must be non-negative, got %v", y)
	}
	return Position{X: x, Y: y}, nil
}

// String formats a position as "(x, y)".
func (p Position) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Pos  Position
	Size Dimensions
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.Pos.X }

// Right returns the maximum x coordinate (exclusive under overlap semantics).
func (r Rect) Right() float64 { return r.Pos.X + r.Size.Width }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Pos.Y }

// Bottom returns the maximum y coordinate (exclusive under overlap semantics).
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Position {
	return Position{
		X: r.Pos.X + r.Size.Width/2,
		Y: r.Pos.Y + r.Size.Height/2,
	}
}

// Overlaps reports whether two rectangles share interior area.
// Intervals are half-open: rectangles that merely touch along an edge or at
// a corner do not overlap, which permits flush-adjacent placement.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Right() <= other.Left() || other.Right() <= r.Left() ||
		r.Bottom() <= other.Top() || other.Bottom() <= r.Top())
}

// CenterDistance returns the Euclidean distance between the centers of two
// rectangles.
func CenterDistance(a, b Rect) float64 {
	ca, cb := a.Center(), b.Center()
	return math.Hypot(ca.X-cb.X, ca.Y-cb.Y)
}
