package ui

// Rect is an axis-aligned rectangle in window pixel coordinates.
// Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the rectangle width.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height.
func (r Rect) Height() int { return r.Bottom - r.Top }

// CenterX returns the horizontal center, rounded down.
func (r Rect) CenterX() int { return (r.Left + r.Right) >> 1 }

// CenterY returns the vertical center, rounded down.
func (r Rect) CenterY() int { return (r.Top + r.Bottom) >> 1 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.Left) && x < float64(r.Right) && y >= float64(r.Top) && y < float64(r.Bottom)
}
