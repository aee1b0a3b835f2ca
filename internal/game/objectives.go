package game

import (
	"fmt"
	"math"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// ObjectiveKind identifies what an objective measures.
type ObjectiveKind int

// Objective kinds.
const (
	// Mining counts the ore drilled during the level.
	Mining ObjectiveKind = iota
	// RecoverMiningEquipment counts drill parts back in the cargo hold.
	RecoverMiningEquipment
	// CrewOnBoard counts astronauts aboard the ship.
	CrewOnBoard
	// ExitStrategy is met once the ship reaches the exit zone.
	ExitStrategy
)

// Objective is one goal of a level. Completion latches: an objective stays
// complete when its measure drops again.
type Objective struct {
	Kind     ObjectiveKind
	Target   float64
	Optional bool

	completed bool
}

// DefaultObjectives returns the objectives every level uses.
func DefaultObjectives() []*Objective {
	return []*Objective{
		{Kind: Mining, Target: config.MiningTarget},
		{Kind: RecoverMiningEquipment, Target: config.RecoverTarget},
		{Kind: CrewOnBoard, Target: config.CrewTarget},
		{Kind: ExitStrategy},
	}
}

// Completed reports whether the objective has been met.
func (o *Objective) Completed() bool { return o.completed }

// ObjectiveUI is the objective as shown to the player.
type ObjectiveUI struct {
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// Result grades an objective in the mission report.
type Result string

// Report results.
const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultPartial Result = "yellow"
)

// ObjectiveRating is one line of the mission report.
type ObjectiveRating struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
	Result Result `json:"result"`
}

// ObjectiveManager tracks the objectives of the running level.
type ObjectiveManager struct {
	object.Base

	MinedOre   float64
	Objectives []*Objective

	world *World
}

// NewObjectiveManager creates the manager. With no objectives it uses DefaultObjectives.
func NewObjectiveManager(w *World, objectives []*Objective) *ObjectiveManager {
	if len(objectives) == 0 {
		objectives = DefaultObjectives()
	}
	m := &ObjectiveManager{Objectives: objectives, world: w}
	m.Register(w.reg, m, object.TagUpdatable, object.TagDrawable, object.TagSceneBound)
	return m
}

// progress returns the current measure of o.
func (m *ObjectiveManager) progress(o *Objective) float64 {
	ship := m.world.ship
	switch o.Kind {
	case Mining:
		return m.MinedOre
	case RecoverMiningEquipment:
		if ship == nil {
			return 0
		}
		return float64(ship.Inventory.Count(DrillParts))
	case CrewOnBoard:
		if ship == nil {
			return 0
		}
		return float64(ship.Crew)
	case ExitStrategy:
		if ship != nil && ship.Position.Distance(exitZone()) < config.ExitZoneR {
			return 1
		}
	}
	return 0
}

func exitZone() vector.Vector { return vector.New(config.ExitZoneX, config.ExitZoneY) }

func (m *ObjectiveManager) met(o *Objective) bool {
	if o.Kind == ExitStrategy {
		return m.progress(o) > 0
	}
	return m.progress(o) >= o.Target
}

// Update implements object.Updatable.
func (m *ObjectiveManager) Update() {
	for _, o := range m.Objectives {
		if !o.completed && m.met(o) {
			o.completed = true
			m.world.logf(logging.KindObjective, "objectives", "Objective complete: "+m.UI(o).Name)
		}
	}
}

// CriticalComplete reports whether every required objective is met.
func (m *ObjectiveManager) CriticalComplete() bool {
	for _, o := range m.Objectives {
		if !o.completed && !o.Optional {
			return false
		}
	}
	return true
}

// CriticalNonExitComplete reports whether everything but reaching the exit is done.
func (m *ObjectiveManager) CriticalNonExitComplete() bool {
	for _, o := range m.Objectives {
		if o.Kind != ExitStrategy && !o.completed && !o.Optional {
			return false
		}
	}
	return true
}

// UI describes o for the objectives panel.
func (m *ObjectiveManager) UI(o *Objective) ObjectiveUI {
	p := m.progress(o)
	ui := ObjectiveUI{Completed: o.completed}
	switch o.Kind {
	case Mining:
		ui.Name, ui.Desc = "Restock", "Mine ore"
		ui.Status = fmt.Sprintf("%.1f / %.1f", p, o.Target)
	case RecoverMiningEquipment:
		ui.Name, ui.Desc = "Reuse", "Bring mining equipment back to the ship"
		ui.Status = fmt.Sprintf("%.0f / %.0f", p, o.Target)
	case CrewOnBoard:
		ui.Name, ui.Desc = "Human Resources", "Have astronauts on board"
		ui.Status = fmt.Sprintf("%.0f / %.0f", p, o.Target)
	case ExitStrategy:
		ui.Name, ui.Desc = "Exit Strategy", "Enter the exit zone"
	}
	return ui
}

// Panel returns the UI of every objective.
func (m *ObjectiveManager) Panel() []ObjectiveUI {
	out := make([]ObjectiveUI, 0, len(m.Objectives))
	for _, o := range m.Objectives {
		out = append(out, m.UI(o))
	}
	return out
}

// Rating grades o for the mission report. A completed objective scores 100;
// an unfinished one with a target scores its share of the target.
func (m *ObjectiveManager) Rating(o *Objective) ObjectiveRating {
	ui := m.UI(o)
	if o.completed {
		return ObjectiveRating{Score: 100, Status: ui.Name + " complete", Result: ResultSuccess}
	}
	if o.Target > 0 {
		share := min(m.progress(o)/o.Target, 1)
		if share > 0 {
			return ObjectiveRating{
				Score:  int(math.Round(share * 100)),
				Status: ui.Name + " " + ui.Status,
				Result: ResultPartial,
			}
		}
	}
	return ObjectiveRating{Status: ui.Name + " failed", Result: ResultFailure}
}

// Draw marks the exit zone.
func (m *ObjectiveManager) Draw(f *draw.Frame) {
	for _, o := range m.Objectives {
		if o.Kind != ExitStrategy {
			continue
		}
		ink := draw.InkPreview
		if m.CriticalNonExitComplete() {
			ink = draw.InkInstallation
		}
		f.Circle(exitZone(), config.ExitZoneR, ink)
	}
}

// Destroy removes the manager.
func (m *ObjectiveManager) Destroy() {
	m.Deregister()
}
