package draw

import (
	"math"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// Projector maps world coordinates to logical canvas coordinates.
type Projector interface {
	WorldToRender(p vector.Vector) vector.Vector
	Zoom() float64
}

// Label is a text overlay anchored at a terminal cell.
type Label struct {
	Col, Row int
	Text     string
	Ink      Ink
}

// Frame collects one rendered frame: canvas shapes in world space plus text overlays.
type Frame struct {
	Canvas *Canvas
	View   Projector

	labels   []Label
	hud      []string
	pointBuf []vector.Vector
}

// NewFrame creates a frame drawing into canvas through view.
func NewFrame(canvas *Canvas, view Projector) *Frame {
	return &Frame{Canvas: canvas, View: view}
}

// Reset clears the canvas and overlays for a new frame.
func (f *Frame) Reset() {
	f.Canvas.Clear()
	f.labels = f.labels[:0]
	f.hud = f.hud[:0]
}

func (f *Frame) project(p vector.Vector) vector.Vector {
	if f.View == nil {
		return p
	}
	return f.View.WorldToRender(p)
}

// Scale converts a world length into logical canvas units.
func (f *Frame) Scale(length float64) float64 {
	if f.View == nil {
		return length
	}
	return length * f.View.Zoom()
}

// Dot lights the sub-pixel under a world point.
func (f *Frame) Dot(p vector.Vector, ink Ink) {
	f.Canvas.Set(f.project(p), ink)
}

// Line draws a world-space segment.
func (f *Frame) Line(a, b vector.Vector, ink Ink) {
	f.Canvas.DrawLine(f.project(a), f.project(b), ink)
}

// Polygon draws a world-space polygon.
func (f *Frame) Polygon(points []vector.Vector, ink Ink, filled bool) {
	if cap(f.pointBuf) < len(points) {
		f.pointBuf = make([]vector.Vector, len(points))
	}
	projected := f.pointBuf[:len(points)]
	for i, p := range points {
		projected[i] = f.project(p)
	}
	f.Canvas.DrawPolygon(projected, ink, filled)
}

// Circle outlines a world-space circle. Tiny circles collapse to a dot.
func (f *Frame) Circle(center vector.Vector, radius float64, ink Ink) {
	r := f.Scale(radius)
	if r < 1 {
		f.Dot(center, ink)
		return
	}
	segments := min(max(int(r*2), 8), 64)
	c := f.project(center)
	prev := vector.New(c.X+r, c.Y)
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		next := vector.New(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
		f.Canvas.DrawLine(prev, next, ink)
		prev = next
	}
}

// Disc fills a world-space circle.
func (f *Frame) Disc(center vector.Vector, radius float64, ink Ink) {
	r := f.Scale(radius)
	if r < 1 {
		f.Dot(center, ink)
		return
	}
	segments := min(max(int(r*2), 8), 32)
	c := f.project(center)
	if cap(f.pointBuf) < segments {
		f.pointBuf = make([]vector.Vector, segments)
	}
	pts := f.pointBuf[:segments]
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = vector.New(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	f.Canvas.DrawPolygon(pts, ink, true)
}

// Label places text next to a world point.
func (f *Frame) Label(p vector.Vector, text string, ink Ink) {
	col, row := f.Canvas.LogicalToTerminal(f.project(p))
	f.labels = append(f.labels, Label{Col: col, Row: row, Text: text, Ink: ink})
}

// HUD appends a line to the heads-up panel.
func (f *Frame) HUD(line string) {
	f.hud = append(f.hud, line)
}

// Labels returns the text overlays of the frame.
func (f *Frame) Labels() []Label { return f.labels }

// HUDLines returns the heads-up panel lines.
func (f *Frame) HUDLines() []string { return f.hud }

// Meter renders v in [0,1] as a shaded bar of the given width.
func Meter(v float64, width int) string {
	v = min(max(v, 0), 1)
	runes := make([]rune, width)
	for i := range runes {
		cell := v*float64(width) - float64(i)
		runes[i] = ShadeLevel(cell)
	}
	return string(runes)
}
