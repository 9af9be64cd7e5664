package draw

import "github.com/tomz197/hurricaneship/internal/physics"

// View maps a y-up world rectangle onto a canvas's y-down logical space,
// keeping the aspect ratio and centring the field.
type View struct {
	field   physics.Rect
	scale   float64
	offsetX float64
	offsetY float64
}

// NewView fits field into a logicalWidth x logicalHeight canvas.
func NewView(field physics.Rect, logicalWidth, logicalHeight float64) View {
	scale := min(logicalWidth/field.Width(), logicalHeight/field.Height())
	return View{
		field:   field,
		scale:   scale,
		offsetX: (logicalWidth - field.Width()*scale) / 2,
		offsetY: (logicalHeight - field.Height()*scale) / 2,
	}
}

// ToCanvas converts a world position to canvas logical coordinates.
func (v View) ToCanvas(p physics.Vec2) Point {
	return Point{
		X: v.offsetX + (p.X-v.field.Min.X)*v.scale,
		Y: v.offsetY + (v.field.Max.Y-p.Y)*v.scale,
	}
}

// ToWorld converts canvas logical coordinates back to a world position.
func (v View) ToWorld(p Point) physics.Vec2 {
	return physics.Vec2{
		X: v.field.Min.X + (p.X-v.offsetX)/v.scale,
		Y: v.field.Max.Y - (p.Y-v.offsetY)/v.scale,
	}
}

// Length converts a world distance to logical units.
func (v View) Length(d float64) float64 {
	return d * v.scale
}

// Field returns the world rectangle being shown.
func (v View) Field() physics.Rect {
	return v.field
}

// Frame returns the corners of the field in canvas space, clockwise from top-left.
func (v View) Frame() []Point {
	f := v.field
	return []Point{
		v.ToCanvas(physics.Vec2{X: f.Min.X, Y: f.Max.Y}),
		v.ToCanvas(f.Max),
		v.ToCanvas(physics.Vec2{X: f.Max.X, Y: f.Min.Y}),
		v.ToCanvas(f.Min),
	}
}
