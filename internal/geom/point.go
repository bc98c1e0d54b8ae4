// Package geom holds the small coordinate types used by the candidate
// enumerators, rather than passing bare coordinate pairs everywhere.
package geom

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// PointF is a real-valued coordinate; the enumerators yield it.
type PointF struct {
	X, Y float64
}

// Add returns p+q.
func (p PointF) Add(q PointF) PointF {
	return PointF{p.X + q.X, p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p PointF) Scale(s float64) PointF {
	return PointF{p.X * s, p.Y * s}
}
