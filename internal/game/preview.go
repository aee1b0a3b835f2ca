package game

import (
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// PreviewShape selects how a preview is drawn.
type PreviewShape int

// Preview shapes.
const (
	// PreviewRing is a range ring around the position.
	PreviewRing PreviewShape = iota
	// PreviewGirder is a ring with a beam from the position to the anchor.
	PreviewGirder
	// PreviewMarker is a heading marker at the position.
	PreviewMarker
)

// Preview is the overlay an order shows while it plans or waits in a queue.
// Orders own their previews and destroy them on release.
type Preview struct {
	object.Base

	Shape    PreviewShape
	Radius   float64
	Anchor   vector.Vector
	Rotation float64
	Ink      draw.Ink
	Visible  bool
}

// NewPreview registers a hidden preview.
func NewPreview(w *World, shape PreviewShape, radius float64) *Preview {
	p := &Preview{Shape: shape, Radius: radius, Ink: draw.InkPreview}
	p.Register(w.reg, p, object.TagDrawable)
	return p
}

// Tint picks the preview ink: green in range, yellow when the owner has to walk.
func (p *Preview) Tint(inRange bool) {
	if inRange {
		p.Ink = draw.InkInstallation
	} else {
		p.Ink = draw.InkFlare
	}
}

// Draw implements object.Drawable.
func (p *Preview) Draw(f *draw.Frame) {
	if !p.Visible {
		return
	}
	switch p.Shape {
	case PreviewRing:
		f.Circle(p.Position, p.Radius, p.Ink)
	case PreviewGirder:
		f.Circle(p.Position, p.Radius, p.Ink)
		f.Line(p.Position, p.Anchor, p.Ink)
	case PreviewMarker:
		f.Circle(p.Position, p.Radius, p.Ink)
		f.Line(p.Position, p.Position.Plus(vector.FromAngle(p.Rotation).Scaled(p.Radius*2)), p.Ink)
	}
}

// Destroy removes the preview.
func (p *Preview) Destroy() {
	p.Deregister()
}
