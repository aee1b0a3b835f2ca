package game

import (
	"fmt"
	"math"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// shipHull is the hull outline in ship space, nose along +x.
var shipHull = []vector.Vector{
	vector.New(1, 0),
	vector.New(-0.6, 0.6),
	vector.New(-0.3, 0),
	vector.New(-0.6, -0.6),
}

// ShipModule is a device bolted to the hull at a fixed offset. It turns with the ship.
type ShipModule struct {
	Turret    *Turret
	Spotlight *Spotlight

	angle    float64
	distance float64
}

func newShipModule(offset vector.Vector) *ShipModule {
	return &ShipModule{angle: offset.Angle(), distance: offset.Length()}
}

// position returns the module's world position on ship.
func (m *ShipModule) position(ship *Ship) vector.Vector {
	return ship.Position.Plus(vector.FromAngle(ship.Rotation + m.angle).Scaled(m.distance))
}

func (m *ShipModule) update(ship *Ship) {
	p := m.position(ship)
	confused := ship.Resist < config.InstallationConfused
	if m.Turret != nil {
		m.Turret.Position = p
		m.Turret.Confused = confused
	}
	if m.Spotlight != nil {
		m.Spotlight.Position = p
		m.Spotlight.Confused = confused
	}
}

func (m *ShipModule) destroy() {
	if m.Turret != nil {
		m.Turret.Destroy()
	}
	if m.Spotlight != nil {
		m.Spotlight.Destroy()
	}
}

// Ship carries the crew and the cargo. It is the spirits' favourite target:
// every spirit that reaches the hull wears its resist down, and the level is
// lost when the resist is gone.
type Ship struct {
	object.Base
	Selection

	Target         vector.Vector
	Rotation       float64
	TargetRotation float64
	Resist         float64
	MaxResist      float64
	Crew           int
	Inventory      *Inventory
	Modules        []*ShipModule

	attractor   *repeller.Range
	underAttack bool
	current     order.Order
	world       *World
}

// NewShip places the ship with a turret and a floodlight mounted.
func NewShip(w *World, pos vector.Vector, rotation float64) *Ship {
	s := &Ship{
		Target:         pos,
		Rotation:       rotation,
		TargetRotation: rotation,
		Resist:         config.ShipResist,
		MaxResist:      config.ShipResist,
		Crew:           config.ShipCrew,
		Inventory:      NewInventory(config.ShipSlots),
		world:          w,
	}
	s.Position = pos

	// Negative strength pulls spirits in.
	s.attractor = repeller.NewRange(w.reg, w.collision, config.ShipAttractRange)
	s.attractor.Strength = -1
	s.attractor.Emotional = true
	s.attractor.Position = pos
	s.attractor.OnHit = func(t repeller.Target) {
		if t.Pos().DistanceSquared(s.Position) < config.ShipAttackRange*config.ShipAttackRange {
			s.Resist = max(s.Resist-w.time.Delta()*config.ShipDrain, 0)
			s.underAttack = true
		}
	}

	turret := newShipModule(vector.New(config.ShipSize/2, config.ShipSize/3))
	turret.Turret = NewTurret(w, turret.position(s), nil)
	light := newShipModule(vector.New(config.ShipSize/2, -config.ShipSize/3))
	light.Spotlight = NewSpotlight(w, light.position(s), nil)
	s.Modules = []*ShipModule{turret, light}

	s.Register(w.reg, s,
		object.TagUpdatable, object.TagDrawable, object.TagSelectable,
		object.TagShip, object.TagSceneBound)
	return s
}

// UnderAttack reports whether a spirit reached the hull this frame.
func (s *Ship) UnderAttack() bool { return s.underAttack }

// Damage returns the lost fraction of the resist in [0, 1].
func (s *Ship) Damage() float64 {
	return 1 - s.Resist/s.MaxResist
}

// Pickup stores a stack in the cargo hold and returns the count that did not fit.
func (s *Ship) Pickup(st Stack) int { return s.Inventory.Pickup(st) }

// Update implements object.Updatable.
func (s *Ship) Update() {
	dt := s.world.time.Delta()

	if d := s.Target.Diff(s.Position); d.LengthSquared() > 1 {
		step := config.ShipSpeed * dt
		if d.LengthSquared() < step*step {
			s.Position = s.Target
		} else {
			s.Position.Add(d.Normalized(step))
		}
	}
	turn := math.Remainder(s.TargetRotation-s.Rotation, 2*math.Pi)
	limit := config.ShipTurnRate * dt
	s.Rotation += min(max(turn, -limit), limit)

	s.attractor.Position = s.Position
	s.underAttack = false
	for _, m := range s.Modules {
		m.update(s)
	}
}

// Board takes a into the ship along with its inventory. Cargo that does not
// fit is dropped next to the hull.
func (s *Ship) Board(a *Astronaut) {
	w := s.world
	s.Crew++
	for _, slot := range a.Inventory.TakeAll() {
		if left := s.Inventory.Pickup(slot); left > 0 {
			NewDroppedItem(w, Stack{Item: slot.Item, Count: left}, s.Position)
		}
	}
	a.Destroy()
	w.logf(logging.KindInfo, "ship", "Astronaut boarded the ship")
	w.RefreshUI()
}

// Deploy puts a crew member outside, behind the ship. It returns nil when
// nobody is aboard.
func (s *Ship) Deploy() *Astronaut {
	if s.Crew <= 0 {
		s.world.logf(logging.KindWarn, "ship", "No crew on board")
		return nil
	}
	s.Crew--
	back := vector.FromAngle(s.Rotation + math.Pi)
	a := NewAstronaut(s.world, s.Position.Plus(back.Scaled(config.ShipSize/2)))
	a.Target = s.Position.Plus(back.Scaled(config.ShipSize))
	s.world.logf(logging.KindInfo, "ship", "Astronaut deployed")
	return a
}

// nearestAstronaut returns the closest able astronaut in handover range, or nil.
func (s *Ship) nearestAstronaut() *Astronaut {
	var nearest *Astronaut
	best := config.ShipSize + config.ShipPickupMargin
	for _, a := range object.All[*Astronaut](s.world.reg, object.TagAstronaut) {
		if a.Incapacitated() {
			continue
		}
		if d := a.Position.Distance(s.Position); d < best {
			nearest, best = a, d
		}
	}
	return nearest
}

// GiveItem hands one item from the cargo hold to the nearest astronaut.
func (s *Ship) GiveItem(item ItemType) bool {
	w := s.world
	a := s.nearestAstronaut()
	if a == nil {
		w.logf(logging.KindWarn, "ship", "No astronaut near the ship")
		return false
	}
	if s.Inventory.Count(item) == 0 {
		return false
	}
	if a.Pickup(Stack{Item: item, Count: 1}) > 0 {
		w.logf(logging.KindWarn, "ship", "Astronaut inventory full")
		return false
	}
	s.Inventory.Spend(item)
	return true
}

func (s *Ship) issue(o order.Order) {
	s.current = o
	s.world.orders.NewOrder(o)
}

// Select marks the ship and starts a move order.
func (s *Ship) Select() {
	s.Selection.Select()
	s.issue(NewShipMoveTo(s.world, s))
}

// Unselect clears the mark and drops the ship's planning order.
func (s *Ship) Unselect() {
	s.Selection.Unselect()
	if s.current != nil && s.current.State() == order.Planning {
		s.current.Destroy()
	}
	s.current = nil
}

// Size returns the pick radius.
func (s *Ship) Size() float64 { return config.ShipSize }

func (s *Ship) planning(match func(order.Order) bool) func() bool {
	return func() bool {
		cur := s.world.orders.Current()
		return cur != nil && cur == s.current && match(cur)
	}
}

// UIData describes the ship and lists its commands.
func (s *Ship) UIData() UIData {
	w := s.world
	d := UIData{
		Name: "Ship",
		Stats: []Stat{
			{Name: "Resist", Value: fmt.Sprintf("%.0f/%.0f", s.Resist, s.MaxResist)},
			{Name: "Crew", Value: fmt.Sprint(s.Crew)},
		},
		Actions: []Action{
			{
				Name:     "Deploy astronaut",
				Do:       func() { s.Deploy() },
				Disabled: func() bool { return s.Crew <= 0 },
			},
			{
				Name:   "Move",
				Do:     func() { s.issue(NewShipMoveTo(w, s)) },
				Active: s.planning(func(o order.Order) bool { _, ok := o.(*ShipMoveTo); return ok }),
			},
			{
				Name:   "Rotate",
				Do:     func() { s.issue(NewShipRotateTo(w, s)) },
				Active: s.planning(func(o order.Order) bool { _, ok := o.(*ShipRotateTo); return ok }),
			},
			{
				Name:   "Translate",
				Do:     func() { s.issue(NewShipTranslateTo(w, s)) },
				Active: s.planning(func(o order.Order) bool { _, ok := o.(*ShipTranslateTo); return ok }),
			},
			{
				Name:   "Pick up item",
				Do:     func() { s.issue(NewShipPickupItem(w, s)) },
				Active: s.planning(func(o order.Order) bool { _, ok := o.(*ShipPickupItem); return ok }),
			},
		},
	}
	for _, slot := range s.Inventory.Slots() {
		d.Items = append(d.Items, ItemAction{
			Item:  slot.Item,
			Count: slot.Count,
			Do:    func() { s.GiveItem(slot.Item) },
		})
	}
	return d
}

// Draw implements object.Drawable.
func (s *Ship) Draw(f *draw.Frame) {
	hull := make([]vector.Vector, len(shipHull))
	for i, p := range shipHull {
		hull[i] = s.Position.Plus(p.Scaled(config.ShipSize).Rotate(s.Rotation))
	}
	f.Polygon(hull, s.Ink(draw.InkShip), false)
	if s.Resist < s.MaxResist {
		f.Label(s.Position.Plus(vector.New(0, config.ShipSize)), draw.Meter(s.Resist/s.MaxResist, 8), draw.InkDanger)
	}
}

// Destroy removes the ship and its modules.
func (s *Ship) Destroy() {
	if s.Destroyed() {
		return
	}
	s.attractor.Destroy()
	for _, m := range s.Modules {
		m.destroy()
	}
	s.Deregister()
}
