// Package ui holds the widget tree, focus routing, and painting for the
// front panel.
package ui

// Point is a screen position in pixels.
type Point struct {
	X int
	Y int
}

// Size is a extent in pixels.
type Size struct {
	W int
	H int
}

// Rect is a screen rectangle: origin plus size.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
