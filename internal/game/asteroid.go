package game

import (
	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/physics"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/scene"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Asteroid is a static rock. Its outline pushes spirits away, blocks line of
// sight and, when it carries ore, can host one drill.
type Asteroid struct {
	object.Base

	Kind     string
	Rotation float64
	Resource float64
	Drill    *Drill

	repeller *repeller.Polygon
	collider *collision.Body
	world    *World
}

// NewAsteroid places an asteroid of a known kind.
func NewAsteroid(w *World, kind string, rotation float64, pos vector.Vector, resource float64) (*Asteroid, error) {
	outline, err := scene.Hitbox(kind)
	if err != nil {
		return nil, err
	}
	outline = physics.RotatePolygon(outline, rotation)

	a := &Asteroid{
		Kind:     kind,
		Rotation: rotation,
		Resource: resource,
		world:    w,
	}
	a.repeller = repeller.NewPolygon(w.reg, w.collision)
	a.repeller.SetPolygon(outline)
	a.collider = w.collision.CreatePolygon(pos, outline)
	a.collider.Owner = a
	a.Register(w.reg, a, object.TagAsteroid, object.TagSceneBound, object.TagDrawable)
	a.Teleport(pos)
	return a, nil
}

// Teleport moves the asteroid together with its field and collider.
func (a *Asteroid) Teleport(p vector.Vector) {
	a.Position = p
	a.repeller.Position = p
	a.collider.SetPosition(p)
}

// CanBuildDrill reports whether a drill may be attached.
func (a *Asteroid) CanBuildDrill() bool {
	return a.Drill == nil && a.Resource > 0
}

// Collider returns the collision body.
func (a *Asteroid) Collider() *collision.Body { return a.collider }

// Outline returns the outline in world space.
func (a *Asteroid) Outline() []vector.Vector {
	return a.collider.Points()
}

// Draw implements object.Drawable.
func (a *Asteroid) Draw(f *draw.Frame) {
	f.Polygon(a.collider.Points(), draw.InkAsteroid, false)
	if a.Resource > 0 {
		f.Disc(a.Position, min(a.Resource, 100), draw.InkLight)
	}
}

// Destroy removes the asteroid, its field and its collider.
func (a *Asteroid) Destroy() {
	a.Deregister()
	a.repeller.Destroy()
	a.world.collision.Remove(a.collider)
}
