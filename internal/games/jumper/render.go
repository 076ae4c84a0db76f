package jumper

import (
	"fmt"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// DrawCommands returns this frame's rectangle fills in screen space:
// platforms in generation order, the player last.
func (g *Game) DrawCommands() []core.DrawCommand {
	s := &g.session
	cmds := make([]core.DrawCommand, 0, len(s.Platforms)+1)

	for _, p := range s.Platforms {
		cmds = append(cmds, core.DrawCommand{
			X:       p.Pos.X,
			Y:       s.Camera.ToScreen(p.Pos.Y),
			W:       p.W,
			H:       p.H,
			Color:   p.Color,
			Opacity: p.Opacity,
		})
	}

	cmds = append(cmds, core.DrawCommand{
		X:       s.Player.Pos.X,
		Y:       s.Camera.ToScreen(s.Player.Pos.Y),
		W:       s.Player.W,
		H:       s.Player.H,
		Color:   core.ColorRed,
		Opacity: 1,
	})
	return cmds
}

// Render rasterizes the draw commands into the cell buffer, scaling the
// canvas to fit, and draws the HUD on top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.canvasW <= 0 || g.canvasH <= 0 {
		return
	}

	sx := float64(dst.Width()) / g.canvasW
	sy := float64(dst.Height()) / g.canvasH
	for _, cmd := range g.DrawCommands() {
		dst.Fill(cmd, sx, sy)
	}

	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", g.session.CurrentPlatformID), core.ColorWhite)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorWhite)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle, core.ColorGray)
}
