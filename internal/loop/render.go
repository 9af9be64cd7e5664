package loop

import (
	"math"

	"github.com/tomz197/hurricaneship/internal/draw"
	"github.com/tomz197/hurricaneship/internal/object"
	"github.com/tomz197/hurricaneship/internal/physics"
)

// shipWingAngle is the angle between the nose and each wing tip.
const shipWingAngle = 140 * math.Pi / 180

// drawWorld draws the field border, every visible body and the pointer.
func (h *host) drawWorld() {
	h.canvas.DrawPolygon(h.view.Frame(), false, draw.ColorGray)

	if h.sim == nil {
		return
	}
	for _, e := range h.sim.Entities() {
		if !h.fx.visible(e.Handle) {
			continue
		}
		h.drawEntity(&e)
	}

	if h.state == GameStatePlaying {
		h.drawCursor()
	}
}

func (h *host) drawEntity(e *object.Entity) {
	c := h.view.ToCanvas(e.Position)
	r := h.view.Length(e.Radius())

	switch e.Kind {
	case object.KindShip:
		h.drawShip(e)
	case object.KindMeteor:
		h.canvas.DrawCircle(c, r, true, draw.ColorRed)
	case object.KindGuard:
		h.canvas.DrawCircle(c, r, false, draw.ColorBrightCyan)
		angle := float64(h.fx.orbitFrame(e.Handle)) * 2 * math.Pi / orbitFrames
		dot := e.Position.Add(physics.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(e.Radius()))
		h.canvas.DrawCircle(h.view.ToCanvas(dot), math.Max(r/6, 0.5), true, draw.ColorBrightCyan)
	case object.KindPowerUp, object.KindHazard:
		h.drawPickup(e, c, r)
	}
}

func (h *host) drawShip(e *object.Entity) {
	r := e.Radius()
	pts := h.canvas.BorrowPoints(4)
	for i, a := range [...]float64{0, shipWingAngle, math.Pi, -shipWingAngle} {
		reach := r
		if a == math.Pi {
			reach = r * 0.4 // tail notch
		}
		dir := physics.Vec2{X: math.Cos(e.Rotation + a), Y: math.Sin(e.Rotation + a)}
		pts[i] = h.view.ToCanvas(e.Position.Add(dir.Scale(reach)))
	}
	h.canvas.DrawPolygon(pts, true, draw.ColorBrightCyan)
}

func (h *host) drawPickup(e *object.Entity, c draw.Point, r float64) {
	switch e.Variant {
	case object.VariantShrink:
		pts := h.canvas.BorrowPoints(4)
		pts[0] = draw.Point{X: c.X, Y: c.Y - r}
		pts[1] = draw.Point{X: c.X + r, Y: c.Y}
		pts[2] = draw.Point{X: c.X, Y: c.Y + r}
		pts[3] = draw.Point{X: c.X - r, Y: c.Y}
		h.canvas.DrawPolygon(pts, true, draw.ColorMagenta)
	case object.VariantGuardSpawner:
		h.canvas.DrawCircle(c, r, false, draw.ColorCyan)
		h.canvas.DrawLine(draw.Point{X: c.X - r/2, Y: c.Y}, draw.Point{X: c.X + r/2, Y: c.Y}, draw.ColorCyan)
		h.canvas.DrawLine(draw.Point{X: c.X, Y: c.Y - r/2}, draw.Point{X: c.X, Y: c.Y + r/2}, draw.ColorCyan)
	case object.VariantGold:
		h.canvas.DrawCircle(c, r, true, draw.ColorBrightYellow)
	case object.VariantWall:
		pts := h.canvas.BorrowPoints(4)
		pts[0] = draw.Point{X: c.X - r, Y: c.Y - r}
		pts[1] = draw.Point{X: c.X + r, Y: c.Y - r}
		pts[2] = draw.Point{X: c.X + r, Y: c.Y + r}
		pts[3] = draw.Point{X: c.X - r, Y: c.Y + r}
		h.canvas.DrawPolygon(pts, false, draw.ColorGray)
	case object.VariantGrow:
		pts := h.canvas.BorrowPoints(3)
		pts[0] = draw.Point{X: c.X, Y: c.Y - r}
		pts[1] = draw.Point{X: c.X + r, Y: c.Y + r}
		pts[2] = draw.Point{X: c.X - r, Y: c.Y + r}
		h.canvas.DrawPolygon(pts, true, draw.ColorGreen)
	}
}

func (h *host) drawCursor() {
	c := h.view.ToCanvas(h.cursor)
	const arm = 1.5
	h.canvas.DrawLine(draw.Point{X: c.X - arm, Y: c.Y}, draw.Point{X: c.X + arm, Y: c.Y}, draw.ColorWhite)
	h.canvas.DrawLine(draw.Point{X: c.X, Y: c.Y - arm}, draw.Point{X: c.X, Y: c.Y + arm}, draw.ColorWhite)
}
