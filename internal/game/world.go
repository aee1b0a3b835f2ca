// Package game contains the entities of a match and the World that runs them.
//
// A World owns every collaborator of one running match: the tagged registry,
// the simulated clock, the input state, the camera, the collision system, the
// order manager and the journal. Entities receive the World at construction
// and register themselves under the tags of the frame phases they join.
package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Options configure a new World.
type Options struct {
	MatchID    uuid.UUID
	Seed       uint64
	ViewWidth  float64
	ViewHeight float64
	StartLevel int
	Debug      bool
}

// World is the explicit context of one match.
type World struct {
	ID uuid.UUID

	log       *zap.Logger
	reg       *object.Registry
	time      *Time
	controls  *input.ControlManager
	camera    *Camera
	collision *collision.System
	orders    *order.Manager
	journal   *logging.Journal
	rng       *rand.Rand
	spirits   *spiritIndex
	debug     bool

	hovered  Selectable
	selected Selectable
	ui       *UIData

	ship       *Ship
	waves      *WaveManager
	objectives *ObjectiveManager
	levels     *LevelManager
	paused     bool
}

// NewWorld creates an empty match. Call Start to load the first level.
func NewWorld(opts Options, log *zap.Logger, controls *input.ControlManager, col *collision.System) *World {
	if opts.MatchID == uuid.Nil {
		opts.MatchID = uuid.New()
	}
	if opts.ViewWidth <= 0 || opts.ViewHeight <= 0 {
		def := config.Default()
		opts.ViewWidth, opts.ViewHeight = float64(def.ViewWidth), float64(def.ViewHeight)
	}
	log = log.With(zap.String("match", opts.MatchID.String()))

	w := &World{
		ID:        opts.MatchID,
		log:       log,
		reg:       object.NewRegistry(),
		time:      &Time{},
		controls:  controls,
		collision: col,
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		spirits:   newSpiritIndex(),
		debug:     opts.Debug,
	}
	w.journal = logging.NewJournal(log, w.time.Frame)
	w.camera = NewCamera(w.reg, opts.ViewWidth, opts.ViewHeight)
	w.orders = order.NewManager(w.reg, w)
	w.objectives = NewObjectiveManager(w, nil)
	w.levels = NewLevelManager(w, opts.StartLevel)
	return w
}

// Start loads the current level of the campaign.
func (w *World) Start() error {
	return w.levels.Load()
}

// Step runs one frame: preupdate, selection and shortcut requests, updates,
// camera, input resolution, then drawing into f when f is not nil and
// postprocessing.
func (w *World) Step(dt float64, f *draw.Frame) {
	w.time.Advance(dt)

	for _, e := range object.All[object.PreUpdater](w.reg, object.TagPreUpdate) {
		if alive(e) {
			e.PreUpdate()
		}
	}

	if w.levels.InTransition() && (w.controls.Pressed(input.KeyEnter) || w.controls.Clicked()) {
		w.levels.Continue()
	}
	w.levels.Update()
	if w.selected != nil && !alive(w.selected) {
		w.setSelected(nil)
	}
	if w.hovered != nil && !alive(w.hovered) {
		w.hovered = nil
	}

	if !w.paused {
		w.controls.RequestMouse(input.PrioritySelect, w.selectAction, w)
		w.shortcuts()

		w.spirits.rebuild(w.reg)
		for _, e := range object.All[object.Updatable](w.reg, object.TagUpdatable) {
			if alive(e) {
				e.Update()
			}
		}
	}

	w.camera.Update(w.controls, dt)
	cancel := w.controls.Pressed(input.KeyEscape)
	w.controls.Resolve()
	if w.controls.RightDown() || cancel {
		w.orders.Cancel()
		w.setSelected(nil)
	}

	if f != nil {
		w.render(f)
	}
	for _, e := range object.All[object.PostProcessor](w.reg, object.TagPostProcess) {
		if alive(e) {
			e.PostProcess()
		}
	}
}

func alive(e any) bool {
	d, ok := e.(interface{ Destroyed() bool })
	return !ok || !d.Destroyed()
}

func (w *World) selectAction() input.Result {
	mouse := w.WorldMouse()
	var nearest Selectable
	dist := config.SelectRadius
	for _, s := range object.All[Selectable](w.reg, object.TagSelectable) {
		d := mouse.Distance(s.Pos())
		if d < dist && s.Size() > d {
			nearest, dist = s, d
		}
	}

	if nearest == nil {
		w.setHovered(nil)
		return input.Pass
	}
	w.setHovered(nearest)

	if w.controls.Clicked() {
		w.controls.ConsumeClick()
		w.Select(nearest)
		return input.Stop
	}
	return input.Pass
}

func (w *World) setHovered(s Selectable) {
	if s == w.hovered {
		return
	}
	if w.hovered != nil {
		w.hovered.Unhover()
	}
	w.hovered = s
	if s != nil {
		s.Hover()
	}
}

// Select makes s the selection and refreshes the UI snapshot.
func (w *World) Select(s Selectable) {
	if w.selected != nil && w.selected != s {
		w.selected.Unselect()
	}
	w.selected = s
	s.Select()
	w.RefreshUI()
}

func (w *World) setSelected(s Selectable) {
	if s != nil {
		w.Select(s)
		return
	}
	if w.selected != nil {
		w.selected.Unselect()
	}
	w.selected = nil
	w.ui = nil
}

// ClearSelection drops the selection.
func (w *World) ClearSelection() { w.setSelected(nil) }

func (w *World) shortcuts() {
	for d := 1; d <= 9; d++ {
		if w.controls.Pressed(input.Digit(d)) {
			w.InvokeAction(d - 1)
		}
	}
	if w.controls.Pressed(input.KeyTab) {
		w.cycleSelection()
	}
}

// cycleSelection selects the next crew member, starting with the ship.
func (w *World) cycleSelection() {
	var crew []Selectable
	if w.ship != nil && alive(w.ship) {
		crew = append(crew, w.ship)
	}
	for _, a := range object.All[*Astronaut](w.reg, object.TagAstronaut) {
		crew = append(crew, a)
	}
	if len(crew) == 0 {
		return
	}
	next := 0
	for i, s := range crew {
		if s == w.selected {
			next = (i + 1) % len(crew)
		}
	}
	w.orders.Cancel()
	w.Select(crew[next])
}

// InvokeAction runs the i-th action of the selection. It reports whether an
// action ran.
func (w *World) InvokeAction(i int) bool {
	if w.ui == nil || i < 0 || i >= len(w.ui.Actions) {
		return false
	}
	a := w.ui.Actions[i]
	if a.disabled() {
		return false
	}
	a.Do()
	w.RefreshUI()
	return true
}

// InvokeItem runs the use callback of the i-th inventory slot of the selection.
func (w *World) InvokeItem(i int) bool {
	if w.ui == nil || i < 0 || i >= len(w.ui.Items) || w.ui.Items[i].Do == nil {
		return false
	}
	w.ui.Items[i].Do()
	w.RefreshUI()
	return true
}

// RefreshUI rebuilds the UI descriptor of the selection. Implements order.Host.
func (w *World) RefreshUI() {
	if w.selected == nil || !alive(w.selected) {
		w.ui = nil
		return
	}
	d := w.selected.UIData()
	w.ui = &d
}

// WorldMouse returns the pointer in world coordinates. Implements order.Host.
func (w *World) WorldMouse() vector.Vector {
	cam, err := object.First[*Camera](w.reg, object.TagCamera)
	if err != nil {
		return w.controls.MouseScreen()
	}
	return w.controls.WorldMouse(cam)
}

// Clear destroys every scene-bound entity and every order.
func (w *World) Clear() {
	w.orders.Reset()
	w.setSelected(nil)
	w.hovered = nil
	for _, e := range object.All[object.Destroyer](w.reg, object.TagSceneBound) {
		e.Destroy()
	}
	w.ship = nil
	w.waves = nil
}

// Close tears the match down.
func (w *World) Close() {
	w.Clear()
	w.orders.Destroy()
	w.camera.Destroy()
	_ = w.log.Sync()
}

func (w *World) render(f *draw.Frame) {
	for _, e := range object.All[object.Drawable](w.reg, object.TagDrawable) {
		if alive(e) {
			e.Draw(f)
		}
	}
	if w.debug {
		for _, e := range object.All[object.Debugger](w.reg, object.TagDebug) {
			e.DrawDebug(f)
		}
	}
	w.drawHUD(f)
}

// logf writes a journal entry attributed to source.
func (w *World) logf(kind logging.Kind, source, msg string) {
	w.journal.Log(kind, msg, source)
}

// random returns a float in [0, 1).
func (w *World) random() float64 { return w.rng.Float64() }

// Registry returns the tagged registry.
func (w *World) Registry() *object.Registry { return w.reg }

// Time returns the simulated clock.
func (w *World) Time() *Time { return w.time }

// Controls returns the input state.
func (w *World) Controls() *input.ControlManager { return w.controls }

// Camera returns the camera.
func (w *World) Camera() *Camera { return w.camera }

// Collision returns the collision system.
func (w *World) Collision() *collision.System { return w.collision }

// Orders returns the order manager.
func (w *World) Orders() *order.Manager { return w.orders }

// Journal returns the in-game journal.
func (w *World) Journal() *logging.Journal { return w.journal }

// Logger returns the match logger.
func (w *World) Logger() *zap.Logger { return w.log }

// Ship returns the ship of the current level, or nil.
func (w *World) Ship() *Ship { return w.ship }

// Waves returns the wave manager of the current level, or nil.
func (w *World) Waves() *WaveManager { return w.waves }

// Objectives returns the objective manager.
func (w *World) Objectives() *ObjectiveManager { return w.objectives }

// Levels returns the level manager.
func (w *World) Levels() *LevelManager { return w.levels }

// Selected returns the selection, or nil.
func (w *World) Selected() Selectable { return w.selected }

// Hovered returns the entity under the pointer, or nil.
func (w *World) Hovered() Selectable { return w.hovered }

// Paused reports whether updates are suspended.
func (w *World) Paused() bool { return w.paused }

// Debug reports whether debug overlays are drawn.
func (w *World) Debug() bool { return w.debug }

// SetDebug toggles debug overlays.
func (w *World) SetDebug(on bool) { w.debug = on }
