package game

import (
	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// WaveManager spawns spirits on the left edge of the world and sets the
// drift every spirit follows. The spawn interval starts with a ramp that
// shortens it over time until a level takes over the pace.
type WaveManager struct {
	object.Base

	Angle float64
	Speed float64

	direction vector.Vector
	spawn     *clocky.Clocky
	ramp      *clocky.Clocky
	world     *World
}

// NewWaveManager creates the wave manager of a level.
func NewWaveManager(w *World) *WaveManager {
	m := &WaveManager{Speed: config.WaveSpeed, world: w}
	m.spawn = clocky.New(w.time, config.WaveSpawnLimit)
	m.ramp = clocky.Sequence(w.time, []clocky.Step{{
		Time:   config.WaveRampDuration,
		During: func(c *clocky.Clocky) { m.spawn.Limit = 1.1 - c.Progress() },
	}})
	m.direction = vector.FromAngle(m.Angle).Scaled(m.Speed)
	m.Register(w.reg, m, object.TagUpdatable, object.TagDrawable, object.TagSceneBound)
	return m
}

// Direction returns the drift added to every spirit per reference frame.
func (m *WaveManager) Direction() vector.Vector { return m.direction }

// Interval returns the seconds between spawns.
func (m *WaveManager) Interval() float64 { return m.spawn.Limit }

// SetPace fixes the spawn interval and ends the opening ramp.
func (m *WaveManager) SetPace(interval float64) {
	m.ramp.Stop = true
	m.spawn.Limit = interval
}

// Update implements object.Updatable.
func (m *WaveManager) Update() {
	if m.spawn.Check() {
		s := NewSpirit(m.world, vector.New(0, m.world.random()*config.WorldHeight))
		s.Update()
	}
	m.ramp.Check()
	m.Angle = min(max(m.Angle, -config.WaveSpreadAngle), config.WaveSpreadAngle)
	m.direction = vector.FromAngle(m.Angle).Scaled(m.Speed)
}

// Draw marks the spawn edge and the drift.
func (m *WaveManager) Draw(f *draw.Frame) {
	mid := vector.New(0, config.WorldHeight/2)
	f.Line(vector.New(0, 0), vector.New(0, config.WorldHeight), draw.InkDebug)
	f.Line(mid, mid.Plus(m.direction.Normalized(config.WorldHeight/10)), draw.InkDebug)
}

// Destroy removes the wave manager.
func (m *WaveManager) Destroy() {
	m.spawn.Stop = true
	m.ramp.Stop = true
	m.Deregister()
}
