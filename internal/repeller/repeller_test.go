package repeller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

type stubTarget struct {
	pos   vector.Vector
	power float64
	vel   vector.Vector
}

func (p *stubTarget) Pos() vector.Vector { return p.pos }
func (p *stubTarget) Power() float64 { return p.power }
func (p *stubTarget) Affect(d float64) { p.power += d }
func (p *stubTarget) Steer(v vector.Vector) { p.vel.Add(v) }

func square() []vector.Vector {
	return []vector.Vector{
		vector.New(-50, -50), vector.New(50, -50), vector.New(50, 50), vector.New(-50, 50),
	}
}

func TestRangeCheck(t *testing.T) {
	reg := object.NewRegistry()
	r := NewRange(reg, nil, 200)
	r.Position = vector.New(100, 100)

	assert.True(t, r.Check(vector.New(100, 250)))
	assert.False(t, r.Check(vector.New(100, 300)), "boundary is exclusive")
	assert.False(t, r.Check(vector.New(500, 500)))

	r.Enabled = false
	assert.False(t, r.Check(vector.New(100, 100)))
}

func TestPolygonSquare(t *testing.T) {
	reg := object.NewRegistry()
	p := NewPolygon(reg, nil)
	p.SetPolygon(square())

	assert.Equal(t, 50.0, p.BoxSize())
	assert.True(t, p.Check(vector.New(0, 0)))
	assert.False(t, p.Check(vector.New(1000, 0)))

	p.Position = vector.New(1000, 0)
	assert.True(t, p.Check(vector.New(1000, 0)))
	assert.False(t, p.Check(vector.New(0, 0)))
}

func TestPolygonRotation(t *testing.T) {
	reg := object.NewRegistry()
	p := NewPolygon(reg, nil)
	// long thin rectangle along +x
	p.SetPolygon([]vector.Vector{
		vector.New(0, -20), vector.New(200, -20), vector.New(200, 20), vector.New(0, 20),
	})
	onAxis := vector.New(150, 0)
	assert.True(t, p.Check(onAxis))

	p.SetRotation(math.Pi / 2)
	assert.False(t, p.Check(onAxis))
	assert.True(t, p.Check(vector.New(0, 150)))

	// replacing the shape keeps the rotation
	p.SetPolygon([]vector.Vector{
		vector.New(0, -20), vector.New(100, -20), vector.New(100, 20), vector.New(0, 20),
	})
	assert.True(t, p.Check(vector.New(0, 80)))
	assert.False(t, p.Check(vector.New(0, 150)))
}

func TestPolygonEmptyNeverMatches(t *testing.T) {
	p := NewPolygon(object.NewRegistry(), nil)
	assert.False(t, p.Check(vector.New(0, 0)))
}

func TestLineOfSight(t *testing.T) {
	sys := collision.NewSystem()
	sys.CreatePolygon(vector.New(100, 0), []vector.Vector{
		vector.New(-10, -10), vector.New(10, -10), vector.New(10, 10), vector.New(-10, 10),
	})

	r := NewRange(object.NewRegistry(), sys, 500)
	r.LineOfSight = true

	assert.False(t, r.Check(vector.New(200, 0)), "behind the wall")
	assert.True(t, r.Check(vector.New(0, 200)))

	r.LineOfSight = false
	assert.True(t, r.Check(vector.New(200, 0)))
}

func TestRegistrationAndDestroy(t *testing.T) {
	reg := object.NewRegistry()
	r := NewRange(reg, nil, 10)
	p := NewPolygon(reg, nil)

	assert.Len(t, Live(reg), 2)
	assert.Equal(t, 2, reg.Count(object.TagDebug))

	r.Destroy()
	p.Destroy()
	assert.Empty(t, Live(reg))
	assert.Equal(t, 0, reg.Count(object.TagDebug))
}

func TestSteeringAndHit(t *testing.T) {
	reg := object.NewRegistry()
	r := NewRange(reg, nil, 100)
	target := &stubTarget{pos: vector.New(10, 0), power: 2}

	push := Steering(r, target.pos, target.power)
	assert.InDelta(t, 0.5, push.X, 1e-9, "positive strength pushes away, scaled by power")

	r.Strength = -1
	pull := Steering(r, target.pos, 0.5)
	assert.InDelta(t, -1, pull.X, 1e-9, "weak targets use power 1")

	r.OnHit = func(tg Target) { tg.Affect(-0.25) }
	r.Hit(target)
	assert.Equal(t, 1.75, target.power)

	NewPolygon(reg, nil).Hit(target)
	assert.Equal(t, 1.75, target.power)
}

func TestLiveListsBothVariants(t *testing.T) {
	reg := object.NewRegistry()
	r1 := NewRange(reg, nil, 100)
	r2 := NewRange(reg, nil, 50)
	p := NewPolygon(reg, nil)
	p.SetPolygon(square())

	live := Live(reg)
	assert.Equal(t, reg.Count(object.TagRepeller), len(live))
	assert.ElementsMatch(t, []Repeller{r1, r2, p}, live)

	for _, r := range live {
		assert.True(t, r.Payload().Enabled)
	}
	r2.Destroy()
	assert.ElementsMatch(t, []Repeller{r1, p}, Live(reg))
}
