package game

import (
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Projectile flies straight and knocks the first spirit it reaches.
type Projectile struct {
	object.Base

	Velocity vector.Vector
	life     float64
	world    *World
}

// NewProjectile fires from pos. With a target it leads the target's motion,
// otherwise it flies along aim.
func NewProjectile(w *World, pos vector.Vector, aim float64, target *Spirit) *Projectile {
	p := &Projectile{
		Velocity: vector.FromAngle(aim).Scaled(config.ProjectileSpeed),
		life:     config.ProjectileLife,
		world:    w,
	}
	p.Position = pos
	if target != nil {
		flight := target.Position.Distance(pos) / config.ProjectileSpeed
		lead := target.Position.Plus(target.Velocity.Scaled(flight))
		p.Velocity = lead.Diff(pos).Normalized(config.ProjectileSpeed)
	}
	p.Register(w.reg, p, object.TagUpdatable, object.TagDrawable, object.TagSceneBound)
	return p
}

// Update implements object.Updatable.
func (p *Projectile) Update() {
	dt := p.world.time.Delta()
	p.Position.Add(p.Velocity.Scaled(dt))

	p.world.spirits.near(p.Position, config.ProjectileHitRange, func(s *Spirit) bool {
		p.Destroy()
		SpawnBurst(p.world, p.Position, config.SparkCount, config.SparkSpeed, config.SparkLife, draw.InkFlare)
		s.Affect(-config.ProjectileDamage)
		s.Velocity.Add(p.Position.Diff(s.Position).Normalized(-config.ProjectileKnockback))
		return true
	})
	if p.Destroyed() {
		return
	}

	p.life -= dt
	if p.life <= 0 {
		p.Destroy()
	}
}

// Life returns the remaining flight time.
func (p *Projectile) Life() float64 { return p.life }

// Draw implements object.Drawable.
func (p *Projectile) Draw(f *draw.Frame) {
	f.Line(p.Position, p.Position.Diff(p.Velocity.Scaled(0.02)), draw.InkFlare)
}

// Destroy removes the projectile.
func (p *Projectile) Destroy() {
	p.Deregister()
}
