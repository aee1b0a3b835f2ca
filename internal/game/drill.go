package game

import (
	"fmt"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Drill mines its asteroid while an astronaut operates it from close by.
// A working drill makes noise: its installation's attractor is only enabled
// while the drill runs.
type Drill struct {
	object.Base
	Selection

	Asteroid *Asteroid
	Operator *Astronaut

	working      bool
	finished     bool
	installation *Installation
	world        *World
}

// NewDrill mounts a drill on asteroid.
func NewDrill(w *World, pos vector.Vector, asteroid *Asteroid, inst *Installation) *Drill {
	d := &Drill{
		Asteroid:     asteroid,
		installation: inst,
		world:        w,
	}
	d.Position = pos
	if asteroid != nil {
		asteroid.Drill = d
	}
	d.Register(w.reg, d, object.TagUpdatable, object.TagDrawable, object.TagSelectable, object.TagSceneBound)
	w.logf(logging.KindInfo, "drill", "drill constructed")
	return d
}

// Attach makes a the operator.
func (d *Drill) Attach(a *Astronaut) {
	if d.Operator != nil && d.Operator != a {
		d.Operator.operating = nil
	}
	d.Operator = a
	a.operating = d
}

// Detach releases the operator.
func (d *Drill) Detach() {
	if d.Operator != nil {
		d.Operator.operating = nil
	}
	d.Operator = nil
}

// Working reports whether the drill mined this frame.
func (d *Drill) Working() bool { return d.working }

func (d *Drill) resource() float64 {
	if d.Asteroid == nil {
		return 0
	}
	return d.Asteroid.Resource
}

func (d *Drill) operable() bool {
	op := d.Operator
	if op == nil || op.Destroyed() || op.Incapacitated() {
		return false
	}
	return op.Position.Distance(d.Position) < config.DrillOperatorRange && op.StressTimer() <= 0
}

// Update implements object.Updatable.
func (d *Drill) Update() {
	w := d.world
	d.working = d.resource() > 0 && d.operable()

	if d.working {
		mined := min(w.time.Delta()*config.DrillRate, d.Asteroid.Resource)
		d.Asteroid.Resource -= mined
		if w.objectives != nil {
			w.objectives.MinedOre += mined
		}
	}
	if d.Asteroid != nil && d.Asteroid.Resource <= 0 && !d.finished {
		d.finished = true
		w.logf(logging.KindObjective, "drill", "drill finished mining")
	}
	if d.installation != nil {
		d.installation.attractor.Enabled = d.working
	}
}

// Size returns the pick radius.
func (d *Drill) Size() float64 { return config.InstallationSize }

// PickupProxy returns the installation the drill is collected as.
func (d *Drill) PickupProxy() Pickupable { return installationProxy(d.installation) }

// UIData describes the drill.
func (d *Drill) UIData() UIData {
	data := UIData{
		Name:  "Drill",
		Stats: []Stat{{Name: "Extraction", Value: fmt.Sprintf("%.1f", d.resource())}},
	}
	if d.installation != nil {
		data.Stats = append(data.Stats, d.installation.resistStat())
	}
	return data
}

// Draw implements object.Drawable.
func (d *Drill) Draw(f *draw.Frame) {
	ink := d.Ink(draw.InkInstallation)
	if d.working {
		ink = d.Ink(draw.InkFlare)
	}
	f.Polygon([]vector.Vector{
		d.Position.Plus(vector.New(-config.InstallationSize/2, -config.InstallationSize/2)),
		d.Position.Plus(vector.New(config.InstallationSize/2, -config.InstallationSize/2)),
		d.Position.Plus(vector.New(config.InstallationSize/2, config.InstallationSize/2)),
		d.Position.Plus(vector.New(-config.InstallationSize/2, config.InstallationSize/2)),
	}, ink, false)
}

// Destroy detaches the operator and frees the asteroid.
func (d *Drill) Destroy() {
	d.Detach()
	if d.Asteroid != nil && d.Asteroid.Drill == d {
		d.Asteroid.Drill = nil
	}
	d.Deregister()
}
