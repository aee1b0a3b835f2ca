package game

import (
	"errors"
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/scene"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// ErrNoShip is returned when a scene places no ship.
var ErrNoShip = errors.New("game: scene has no ship")

// shipApproach is how far a freshly loaded ship flies in along its heading.
const shipApproach = 300.0

// levelPace is the spawn interval every level opens with.
const levelPace = 3.0

// LevelDef describes one level of the campaign.
type LevelDef struct {
	Name  string
	Scene string
	Cargo []Stack
	// Timeline returns the scripted steps of the level; nil for none.
	Timeline func(l *Level) []clocky.Step
	Tutorial bool
}

// Campaign is the ordered list of levels.
var Campaign = []LevelDef{
	{
		Name:  "Tutorial",
		Scene: "tutorial",
		Cargo: []Stack{
			{Item: DrillParts, Count: 2},
			{Item: RepellFlareItem, Count: 6},
			{Item: ConstructionParts, Count: 3},
		},
		Tutorial: true,
	},
	{
		Name:  "Level 1",
		Scene: "lvl1",
		Cargo: []Stack{
			{Item: DrillParts, Count: 2},
			{Item: KillFlareItem, Count: 3},
			{Item: RepellFlareItem, Count: 6},
			{Item: ConstructionParts, Count: 3},
		},
		Timeline: level1Timeline,
	},
	{
		Name:  "Level 2",
		Scene: "lvl2",
		Cargo: []Stack{
			{Item: DrillParts, Count: 2},
			{Item: KillFlareItem, Count: 3},
			{Item: RepellFlareItem, Count: 6},
			{Item: ConstructionParts, Count: 5},
		},
		Timeline: level2Timeline,
	},
}

// pace returns a step body easing the spawn interval from base+span down to base.
func pace(l *Level, base, span float64) func(c *clocky.Clocky) {
	return func(c *clocky.Clocky) {
		l.world.waves.SetPace(base + span*(1-c.Progress()))
	}
}

func level1Timeline(l *Level) []clocky.Step {
	return []clocky.Step{
		{Time: 60, Tick: l.cue("Something stirs out there")},
		{Time: 30, During: pace(l, 0.5, 2.5)},
		{Time: 60, Tick: l.cue("More of them are coming")},
		{Time: 30, During: pace(l, 0.25, 0.25)},
		{Time: 60, Tick: l.cue("We have overstayed our welcome")},
		{Time: 30, During: pace(l, 0.1, 0.15)},
	}
}

func level2Timeline(l *Level) []clocky.Step {
	return []clocky.Step{
		{Time: 60, Tick: l.cue("Something stirs out there")},
		{Time: 30, During: pace(l, 0.5, 2.5)},
		{Time: 30, Tick: l.cue("The current is shifting")},
		{
			Time:   15,
			During: func(c *clocky.Clocky) { l.world.waves.Angle = c.Progress() },
			Tick:   l.cue("More of them are coming"),
		},
		{Time: 10, During: pace(l, 0.25, 0.25)},
		{Time: 60, Tick: l.cue("The current is shifting back")},
		{Time: 15, During: func(c *clocky.Clocky) { l.world.waves.Angle = 1 - c.Progress() }},
		{Time: 60, Tick: l.cue("We have overstayed our welcome")},
		{Time: 30, During: pace(l, 0.1, 0.15)},
	}
}

// Level is the loaded state of one campaign level.
type Level struct {
	object.Base

	Def LevelDef

	clocks         []*clocky.Clocky
	drillDeployed  bool
	exitAllowed    bool
	world          *World
}

func newLevel(w *World, def LevelDef) *Level {
	l := &Level{Def: def, world: w}
	l.Register(w.reg, l, object.TagSceneBound)
	return l
}

func (l *Level) cue(msg string) func(*clocky.Clocky) {
	return func(*clocky.Clocky) { l.world.logf(logging.KindInfo, "level", msg) }
}

// run auto-ticks c until the level unloads.
func (l *Level) run(c *clocky.Clocky) *clocky.Clocky {
	l.clocks = append(l.clocks, c.AutoTick(l.world.reg, true))
	return c
}

func (l *Level) load() error {
	w := l.world
	records, err := scene.Level(l.Def.Scene)
	if err != nil {
		return err
	}

	for _, r := range records {
		switch r.Type {
		case scene.TypeAsteroid:
			if _, err := NewAsteroid(w, r.Kind, r.Rotation, r.Pos(), r.Resource); err != nil {
				return pkgerrors.Wrapf(err, "level %s", l.Def.Name)
			}
		case scene.TypeShip:
			ship := NewShip(w, r.Pos(), r.Rotation)
			ship.Target = r.Pos().Plus(vector.FromAngle(r.Rotation).Scaled(shipApproach))
			w.ship = ship
		case scene.TypeRitual:
			NewRitual(w, r.Pos())
		}
	}
	if w.ship == nil {
		return pkgerrors.Wrapf(ErrNoShip, "level %s", l.Def.Name)
	}

	for _, s := range l.Def.Cargo {
		w.ship.Pickup(s)
	}
	w.waves.SetPace(levelPace)

	if l.Def.Tutorial {
		c := clocky.Once(w.time, 3)
		c.Tick = l.cue("Select the ship with Tab and deploy an astronaut")
		l.run(c)
	}
	if l.Def.Timeline != nil {
		l.run(clocky.Sequence(w.time, l.Def.Timeline(l)))
	}
	return nil
}

// Update runs the level's scripted reactions.
func (l *Level) Update() {
	w := l.world
	if !l.Def.Tutorial {
		return
	}
	if !l.drillDeployed && w.objectives.MinedOre > 0 {
		l.drillDeployed = true
		l.cue("The drill is attracting attention")(nil)
		c := clocky.Once(w.time, 10)
		c.During = pace(l, 0.5, 2.5)
		l.run(c)
	}
	if !l.exitAllowed && w.objectives.CriticalNonExitComplete() {
		l.exitAllowed = true
		w.logf(logging.KindObjective, "level", "Head for the exit zone")
	}
}

// Destroy stops the level's timelines.
func (l *Level) Destroy() {
	for _, c := range l.clocks {
		c.Destroy()
	}
	l.clocks = nil
	l.Deregister()
}

// MissionReport summarises a finished level.
type MissionReport struct {
	Level      string            `json:"level"`
	TotalScore int               `json:"totalScore"`
	Objectives []ObjectiveRating `json:"objectives"`
}

// LevelManager walks the campaign: it loads levels, reloads a level whose
// ship was lost and runs the report screen between levels. It runs even
// while the world is paused.
type LevelManager struct {
	index      int
	level      *Level
	transition bool
	ending     bool
	done       bool
	report     *MissionReport
	end        *clocky.Clocky
	reload     *clocky.Clocky
	world      *World
}

// NewLevelManager creates a manager that starts at level start.
func NewLevelManager(w *World, start int) *LevelManager {
	return &LevelManager{index: min(max(start, 0), len(Campaign)-1), world: w}
}

// Index returns the index of the current level.
func (m *LevelManager) Index() int { return m.index }

// Level returns the loaded level, or nil during a transition.
func (m *LevelManager) Level() *Level {
	if m.transition {
		return nil
	}
	return m.level
}

// InTransition reports whether the report screen is up.
func (m *LevelManager) InTransition() bool { return m.transition }

// Report returns the last mission report, or nil.
func (m *LevelManager) Report() *MissionReport { return m.report }

// Done reports whether the campaign has been completed.
func (m *LevelManager) Done() bool { return m.done }

// Load clears the world and loads the current level.
func (m *LevelManager) Load() error {
	w := m.world
	def := Campaign[m.index]

	m.transition = false
	m.ending = false
	m.reload = nil
	m.end = nil
	w.paused = false
	w.Clear()

	w.waves = NewWaveManager(w)
	w.objectives = NewObjectiveManager(w, nil)
	m.level = newLevel(w, def)
	if err := m.level.load(); err != nil {
		return err
	}
	w.log.Info("level loaded", zap.String("level", def.Name), zap.Int("index", m.index))
	w.logf(logging.KindInfo, "level", def.Name)
	return nil
}

func (m *LevelManager) load() {
	if err := m.Load(); err != nil {
		m.world.log.Error("load level", zap.Error(err))
	}
}

// Update advances the campaign state machine.
func (m *LevelManager) Update() {
	w := m.world
	if m.end != nil {
		m.end.Check()
	}
	if m.reload != nil {
		m.reload.Check()
		return
	}
	if m.transition || m.level == nil || m.level.Destroyed() {
		return
	}

	m.level.Update()

	if w.ship != nil && w.ship.Resist <= 0 && !w.paused {
		w.paused = true
		w.logf(logging.KindDanger, "level", "The ship is lost")
		m.reload = clocky.Once(w.time, config.ReloadDelay)
		m.reload.Tick = func(*clocky.Clocky) { m.load() }
		return
	}
	if w.objectives.CriticalComplete() {
		m.Transition()
	}
}

// Transition ends the level and builds its mission report.
func (m *LevelManager) Transition() {
	w := m.world
	report := &MissionReport{Level: Campaign[m.index].Name}
	for _, o := range w.objectives.Objectives {
		r := w.objectives.Rating(o)
		report.Objectives = append(report.Objectives, r)
		report.TotalScore += r.Score
	}
	if s := w.ship; s != nil && s.Resist < s.MaxResist {
		diff := int(math.Round(s.MaxResist - s.Resist))
		report.Objectives = append(report.Objectives, ObjectiveRating{
			Score:  -diff,
			Status: fmt.Sprintf("Ship took %d damage", diff),
			Result: ResultFailure,
		})
		report.TotalScore -= diff
	}

	w.Clear()
	m.report = report
	m.transition = true
	m.ending = false
	w.log.Info("level complete", zap.String("level", report.Level), zap.Int("score", report.TotalScore))
	w.logf(logging.KindObjective, "level", "Mission complete")
}

// Continue leaves the report screen. The next level loads after a short
// delay; after the last level the campaign is done.
func (m *LevelManager) Continue() {
	if !m.transition || m.ending || m.done {
		return
	}
	if m.index+1 >= len(Campaign) {
		m.done = true
		m.world.logf(logging.KindObjective, "level", "Campaign complete")
		return
	}
	m.ending = true
	m.index++
	m.end = clocky.Once(m.world.time, config.TransitionDelay)
	m.end.Tick = func(*clocky.Clocky) { m.load() }
}
