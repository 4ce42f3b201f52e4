package dnd

import "math"

// Point is a pointer position in terminal cells (0-based, origin top-left).
type Point struct {
	X int
	Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an axis-aligned rectangle in terminal cells.
//
// Cells are half-open: a rect covers columns X..X+W-1 and rows Y..Y+H-1.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the geometric center of r.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// Origin returns the top-left cell of r.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// At returns r moved so its origin is p.
func (r Rect) At(p Point) Rect {
	r.X = p.X
	r.Y = p.Y
	return r
}

// distance returns the Euclidean distance from p to the center of r.
func distance(p Point, r Rect) float64 {
	cx, cy := r.Center()
	dx := float64(p.X) - cx
	dy := float64(p.Y) - cy
	return math.Sqrt(dx*dx + dy*dy)
}
