package core

// DrawCommand is a single solid rectangle fill in screen space.
// The scroll offset has already been subtracted from Y.
type DrawCommand struct {
	X, Y    float64
	W, H    float64
	Color   Color
	Opacity float64 // 1.0 = opaque, 0.0 = invisible
}

// Visible reports whether the command would paint anything.
func (d DrawCommand) Visible() bool {
	return d.Opacity > 0 && d.W > 0 && d.H > 0
}
