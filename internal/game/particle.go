package game

import (
	"math"
	"sync"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// particlePool recycles particles; bursts spawn and drop many of them.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark.
type Particle struct {
	object.Base

	Velocity    vector.Vector
	Lifetime    float64 // seconds remaining
	MaxLifetime float64
	Drag        float64 // velocity kept per reference frame; 1 means no drag
	Ink         draw.Ink

	world *World
}

// NewParticle takes a particle from the pool and registers it.
func NewParticle(w *World, pos, velocity vector.Vector, lifetime float64, ink draw.Ink) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Velocity:    velocity,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        config.SparkDrag,
		Ink:         ink,
		world:       w,
	}
	p.Position = pos
	p.Register(w.reg, p, object.TagUpdatable, object.TagDrawable, object.TagSceneBound)
	return p
}

// SpawnBurst scatters count sparks from pos in random directions.
func SpawnBurst(w *World, pos vector.Vector, count int, speed, lifetime float64, ink draw.Ink) {
	for range count {
		angle := w.random() * 2 * math.Pi
		// 50% to 150% of speed, 50% to 100% of lifetime.
		spd := speed * (0.5 + w.random())
		life := lifetime * (0.5 + w.random()*0.5)
		NewParticle(w, pos, vector.FromAngle(angle).Scaled(spd), life, ink)
	}
}

// Update implements object.Updatable.
func (p *Particle) Update() {
	dt := p.world.time.Delta()
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		p.Destroy()
		return
	}
	p.Velocity.Mult(math.Pow(p.Drag, dt*config.ReferenceFPS))
	p.Position.Add(p.Velocity.Scaled(dt))
}

// Draw implements object.Drawable. Sparks in their last quarter are not drawn.
func (p *Particle) Draw(f *draw.Frame) {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return
	}
	f.Dot(p.Position, p.Ink)
}

// Destroy removes the particle and returns it to the pool.
func (p *Particle) Destroy() {
	if p.Destroyed() {
		return
	}
	p.Deregister()
	particlePool.Put(p)
}
