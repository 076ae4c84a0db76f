package jumper

// Camera holds the vertical world-to-screen offset. The offset only
// moves up: it follows a rising player and never a falling one.
type Camera struct {
	Offset float64 // Cumulative upward shift (<= 0)
	Band   float64 // Distance above the bottom edge that triggers scrolling
	ViewH  float64 // Canvas height
}

// Follow scrolls with the player while they rise above the trigger band.
func (c *Camera) Follow(p Player) {
	if p.Vel.Y < 0 && p.Pos.Y-c.Offset < c.ViewH-c.Band {
		c.Offset += p.Vel.Y
	}
}

// ToScreen converts a world y to screen y.
func (c Camera) ToScreen(y float64) float64 {
	return y - c.Offset
}

// ToWorld converts a screen y to world y.
func (c Camera) ToWorld(y float64) float64 {
	return y + c.Offset
}
