package geometry

import (
	"math"
	"testing"

	"github.com/planhaus/planhaus/pkg/errors"
)

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		height  float64
		wantErr bool
	}{
		{name: "valid", width: 5, height: 4},
		{name: "fractional", width: 0.5, height: 0.25},
		{name: "zero width", width: 0, height: 4, wantErr: true},
		{name: "zero height", width: 5, height: 0, wantErr: true},
		{name: "negative width", width: -1, height: 4, wantErr: true},
		{name: "negative height", width: 5, height: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDimensions(tt.width, tt.height)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
					t.Errorf("error code = %s, want INVALID_DIMENSIONS", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDimensions: %v", err)
			}
			if got := d.Area(); got != tt.width*tt.height {
				t.Errorf("Area() = %v, want %v", got, tt.width*tt.height)
			}
		})
	}
}

func TestNewPosition(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "positive", x: 2.5, y: 7},
		{name: "negative x", x: -0.5, y: 0, wantErr: true},
		{name: "negative y", x: 0, y: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPosition(tt.x, tt.y)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("NewPosition: %v", err)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	rect := func(x, y, w, h float64) Rect {
		return Rect{Pos: Position{X: x, Y: y}, Size: Dimensions{Width: w, Height: h}}
	}

	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "identical",
			a:    rect(0, 0, 4, 4),
			b:    rect(0, 0, 4, 4),
			want: true,
		},
		{
			name: "partial overlap",
			a:    rect(0, 0, 4, 4),
			b:    rect(2, 2, 4, 4),
			want: true,
		},
		{
			name: "contained",
			a:    rect(0, 0, 10, 10),
			b:    rect(3, 3, 2, 2),
			want: true,
		},
		{
			name: "disjoint horizontal",
			a:    rect(0, 0, 4, 4),
			b:    rect(6, 0, 4, 4),
			want: false,
		},
		{
			name: "disjoint vertical",
			a:    rect(0, 0, 4, 4),
			b:    rect(0, 5, 4, 4),
			want: false,
		},
		{
			name: "edge touching right",
			a:    rect(0, 0, 4, 4),
			b:    rect(4, 0, 4, 4),
			want: false,
		},
		{
			name: "edge touching below",
			a:    rect(0, 0, 4, 4),
			b:    rect(0, 4, 4, 4),
			want: false,
		},
		{
			name: "corner touching",
			a:    rect(0, 0, 4, 4),
			b:    rect(4, 4, 4, 4),
			want: false,
		},
		{
			name: "sliver overlap",
			a:    rect(0, 0, 4, 4),
			b:    rect(3.9, 0, 4, 4),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{Pos: Position{X: 2, Y: 4}, Size: Dimensions{Width: 4, Height: 2}}
	c := r.Center()
	if c.X != 4 || c.Y != 5 {
		t.Errorf("Center() = %v, want (4, 5)", c)
	}
}

func TestCenterDistance(t *testing.T) {
	a := Rect{Pos: Position{X: 0, Y: 0}, Size: Dimensions{Width: 2, Height: 2}}
	b := Rect{Pos: Position{X: 3, Y: 4}, Size: Dimensions{Width: 2, Height: 2}}

	// Centers are (1,1) and (4,5): a 3-4-5 triangle.
	got := CenterDistance(a, b)
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("CenterDistance() = %v, want 5", got)
	}

	if d := CenterDistance(a, a); d != 0 {
		t.Errorf("self distance = %v, want 0", d)
	}
}
