package game

import (
	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// astronautOrder is embedded by every order an astronaut carries out.
// Starting one drops whatever the astronaut had queued.
type astronautOrder struct {
	order.Base

	astronaut *Astronaut
	world     *World
}

func (o *astronautOrder) init(w *World, a *Astronaut, self order.Order) {
	o.world = w
	o.astronaut = a
	o.Init(w.orders, self)
	a.CancelOrders()
}

// Cancel drops the astronaut's queue along with the order.
func (o *astronautOrder) Cancel() {
	o.astronaut.CancelOrders()
	o.Base.Cancel()
}

func (o *astronautOrder) preview(shape PreviewShape, radius float64) *Preview {
	p := NewPreview(o.world, shape, radius)
	o.OnRelease(p.Destroy)
	return p
}

func (o *astronautOrder) warn(msg string) {
	o.world.logf(logging.KindWarn, "astronaut", msg)
}

// nearestAsteroid finds the asteroid whose surface is closest to the order
// target, between 50 and searchRange units away. When the surface is farther
// than aboveSurface the target is pulled in to aboveSurface units above it;
// otherwise the target follows the pointer. With drillCheck only asteroids
// that can take a drill count.
func (o *astronautOrder) nearestAsteroid(searchRange, aboveSurface float64, drillCheck bool) *Asteroid {
	o.ClearTarget()
	target := o.Target()

	var (
		nearest *Asteroid
		surface = target
		dist    = searchRange
	)
	for _, ast := range object.All[*Asteroid](o.world.reg, object.TagAsteroid) {
		if drillCheck && !ast.CanBuildDrill() {
			continue
		}
		hit, ok := o.world.collision.Raycast(target, ast.Position, collision.Only(ast.Collider()))
		if !ok {
			continue
		}
		d := hit.Point.Distance(target)
		if d < dist && d > 50 {
			nearest, surface, dist = ast, hit.Point, d
		}
	}

	if nearest != nil && dist > aboveSurface {
		o.StoreTarget(surface.Plus(target.Diff(surface).Normalized(aboveSurface)))
	}
	return nearest
}

// AstronautThrowFlare throws a flare of one kind at the clicked point,
// walking into throwing range first when needed.
type AstronautThrowFlare struct {
	astronautOrder

	Kind FlareKind
	ring *Preview
}

// NewAstronautThrowFlare starts planning a throw.
func NewAstronautThrowFlare(w *World, a *Astronaut, kind FlareKind) *AstronautThrowFlare {
	o := &AstronautThrowFlare{Kind: kind}
	o.init(w, a, o)
	o.ring = o.preview(PreviewRing, kind.Range())
	return o
}

func (o *AstronautThrowFlare) inRange() bool {
	return o.Target().DistanceSquared(o.astronaut.Position) < config.ThrowRange*config.ThrowRange
}

// Plan implements order.Order.
func (o *AstronautThrowFlare) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PriorityOrder, func() input.Result {
		if ctl.Clicked() && o.astronaut.ItemCount(o.Kind.Item()) > 0 {
			if o.inRange() {
				o.Execute()
			} else {
				o.ExecuteAfterMove(o.astronaut, config.ThrowRange)
			}
		}
		return input.Stop
	}, o)
}

// Show implements order.Order.
func (o *AstronautThrowFlare) Show() {
	o.ring.Position = o.Target()
	o.ring.Visible = true
	o.ring.Tint(o.inRange())
}

// Execute throws the flare from the astronaut's hand.
func (o *AstronautThrowFlare) Execute() {
	if !o.astronaut.SpendItem(o.Kind.Item()) {
		o.warn("No flares left")
		o.Complete()
		return
	}
	fl := NewFlare(o.world, o.Kind, o.astronaut.Position)
	fl.Toss(o.Target())
	o.Complete()
}

// AstronautGrabFlare takes hold of a flare so it follows the astronaut.
type AstronautGrabFlare struct {
	astronautOrder

	flare *Flare
}

// NewAstronautGrabFlare starts planning a grab.
func NewAstronautGrabFlare(w *World, a *Astronaut) *AstronautGrabFlare {
	o := &AstronautGrabFlare{}
	o.init(w, a, o)
	return o
}

// Plan implements order.Order.
func (o *AstronautGrabFlare) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PrioritySelectOrderTarget, func() input.Result {
		fl, ok := o.world.hovered.(*Flare)
		if !ok {
			return input.Pass
		}
		o.flare = fl
		if ctl.Clicked() {
			if o.astronaut.Position.Distance(fl.Position) < config.GrabRange {
				o.Execute()
			} else {
				o.StoreTarget(fl.Position)
				o.ExecuteAfterMove(o.astronaut, config.GrabRange)
			}
		}
		return input.Stop
	}, o)
}

// Execute grabs the flare if it still burns.
func (o *AstronautGrabFlare) Execute() {
	if o.flare != nil && !o.flare.Destroyed() {
		o.astronaut.Grab(o.flare)
	}
	o.Complete()
}

// AstronautTossGrabbedFlare throws the held flare at the clicked point.
type AstronautTossGrabbedFlare struct {
	astronautOrder

	ring *Preview
}

// NewAstronautTossGrabbedFlare starts planning a toss.
func NewAstronautTossGrabbedFlare(w *World, a *Astronaut) *AstronautTossGrabbedFlare {
	o := &AstronautTossGrabbedFlare{}
	o.init(w, a, o)
	radius := 0.0
	if fl := a.Grabbed(); fl != nil {
		radius = fl.Kind.Range()
	}
	o.ring = o.preview(PreviewRing, radius)
	return o
}

func (o *AstronautTossGrabbedFlare) inRange() bool {
	return o.Target().DistanceSquared(o.astronaut.Position) < config.ThrowRange*config.ThrowRange
}

// Plan implements order.Order.
func (o *AstronautTossGrabbedFlare) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PriorityOrder, func() input.Result {
		if ctl.Clicked() {
			if o.inRange() {
				o.Execute()
			} else {
				o.ExecuteAfterMove(o.astronaut, config.ThrowRange)
			}
		}
		return input.Stop
	}, o)
}

// Show implements order.Order.
func (o *AstronautTossGrabbedFlare) Show() {
	o.ring.Position = o.Target()
	o.ring.Visible = true
	o.ring.Tint(o.inRange())
}

// Execute lets go of the flare and sends it to the target.
func (o *AstronautTossGrabbedFlare) Execute() {
	if fl := o.astronaut.Release(); fl != nil {
		fl.Toss(o.Target())
	}
	o.Complete()
}

// AstronautCollectItem picks up a dropped stack or dismantles an installation.
type AstronautCollectItem struct {
	astronautOrder

	target Pickupable
}

// NewAstronautCollectItem starts planning a pickup.
func NewAstronautCollectItem(w *World, a *Astronaut) *AstronautCollectItem {
	o := &AstronautCollectItem{}
	o.init(w, a, o)
	return o
}

// Plan implements order.Order.
func (o *AstronautCollectItem) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PrioritySelectOrderTarget, func() input.Result {
		target := pickupTarget(o.world.hovered)
		if target == nil {
			return input.Pass
		}
		o.target = target
		if !ctl.Clicked() {
			return input.Pass
		}
		if o.astronaut.Position.Distance(target.Pos()) < config.CollectRange {
			o.Execute()
		} else {
			o.StoreTarget(target.Pos())
			o.ExecuteAfterMove(o.astronaut, config.CollectRange)
		}
		return input.Stop
	}, o)
}

// Execute moves the target into the inventory. Whatever does not fit stays behind.
func (o *AstronautCollectItem) Execute() {
	if o.target != nil && o.world.reg.Has(object.TagPickupable, o.target) {
		left := o.astronaut.Pickup(o.target.CheckPickup())
		if left == 0 {
			o.target.Destroy()
		} else if d, ok := o.target.(*DroppedItem); ok {
			d.Count = left
		}
	} else {
		o.warn("Item no longer available")
	}
	o.Complete()
}

// AstronautMove walks the astronaut to the pointer while the button is held.
// Pressing on a drill sends the astronaut to operate it; pressing on the ship
// sends it aboard. The order stays planning until it is replaced.
type AstronautMove struct {
	astronautOrder

	drillToOperate *Drill
	board          bool
	marker         *Preview
}

// NewAstronautMove starts a move order.
func NewAstronautMove(w *World, a *Astronaut) *AstronautMove {
	o := &AstronautMove{}
	o.init(w, a, o)
	o.marker = o.preview(PreviewMarker, config.AstronautSize/2)
	o.marker.Ink = draw.InkInstallation
	return o
}

func (o *AstronautMove) foreign(h Selectable) bool {
	return h != nil && h != Selectable(o.astronaut) && !(o.world.ship != nil && h == Selectable(o.world.ship))
}

// Plan implements order.Order.
func (o *AstronautMove) Plan() {
	w := o.world
	ctl := w.controls
	ctl.RequestMouse(input.PrioritySelectOrderTarget, func() input.Result {
		target := o.Target()
		hovered := w.hovered
		o.marker.Position = target
		o.marker.Rotation = target.Diff(o.astronaut.Position).Angle()
		o.marker.Visible = !o.foreign(hovered)

		if !ctl.PointerDown() {
			return input.Pass
		}
		if d, ok := hovered.(*Drill); ok {
			o.drillToOperate = d
			o.Execute()
			return input.Stop
		}
		if _, ok := hovered.(*Ship); ok {
			o.board = true
			o.Execute()
			return input.Stop
		}
		if o.foreign(hovered) {
			return input.Pass
		}
		o.board = false
		o.Execute()
		return input.Stop
	}, o)
}

// Execute retargets the astronaut.
func (o *AstronautMove) Execute() {
	a := o.astronaut
	if a.operating != nil {
		a.operating.Detach()
	}
	a.Target = o.Target()
	a.enterShip = o.board
	if o.drillToOperate != nil && !o.drillToOperate.Destroyed() {
		o.drillToOperate.Attach(a)
		a.Target = o.drillToOperate.Position
	}
	o.drillToOperate = nil
	o.board = false
}

// AstronautPlaceInstallation builds a turret or spotlight tethered to the
// nearest asteroid.
type AstronautPlaceInstallation struct {
	astronautOrder

	Kind     InstallationKind
	asteroid *Asteroid
	girder   *Preview
}

// NewAstronautPlaceInstallation starts planning a build.
func NewAstronautPlaceInstallation(w *World, a *Astronaut, kind InstallationKind) *AstronautPlaceInstallation {
	o := &AstronautPlaceInstallation{Kind: kind}
	o.init(w, a, o)
	o.girder = o.preview(PreviewGirder, config.InstallationSize/2)
	return o
}

func (o *AstronautPlaceInstallation) inRange() bool {
	return o.Target().Distance(o.astronaut.Position) < config.PlaceRange
}

// Plan implements order.Order.
func (o *AstronautPlaceInstallation) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PriorityOrder, func() input.Result {
		o.asteroid = o.nearestAsteroid(config.PlaceSearchRange, config.InstallationSurface, false)
		if o.asteroid != nil && ctl.Clicked() && o.astronaut.ItemCount(ConstructionParts) > 0 {
			if o.inRange() {
				o.Execute()
			} else {
				o.ExecuteAfterMove(o.astronaut, config.PlaceRange)
			}
		}
		return input.Stop
	}, o)
}

// Show implements order.Order.
func (o *AstronautPlaceInstallation) Show() {
	showGirder(o.girder, o.Target(), o.asteroid, o.inRange())
}

// Execute builds the installation.
func (o *AstronautPlaceInstallation) Execute() {
	if !o.astronaut.SpendItem(ConstructionParts) {
		o.warn("No construction parts left")
		o.Complete()
		return
	}
	NewInstallation(o.world, o.Kind, o.Target(), o.asteroid)
	o.Complete()
}

// AstronautPlaceDrill mounts a drill on the nearest asteroid that still has
// ore and no drill. The astronaut stays to operate it.
type AstronautPlaceDrill struct {
	astronautOrder

	asteroid *Asteroid
	girder   *Preview
}

// NewAstronautPlaceDrill starts planning a drill placement.
func NewAstronautPlaceDrill(w *World, a *Astronaut) *AstronautPlaceDrill {
	o := &AstronautPlaceDrill{}
	o.init(w, a, o)
	o.girder = o.preview(PreviewGirder, config.InstallationSize/2)
	return o
}

func (o *AstronautPlaceDrill) inRange() bool {
	return o.Target().Distance(o.astronaut.Position) < config.PlaceRange
}

// Plan implements order.Order.
func (o *AstronautPlaceDrill) Plan() {
	ctl := o.world.controls
	ctl.RequestMouse(input.PriorityOrder, func() input.Result {
		o.asteroid = o.nearestAsteroid(config.PlaceSearchRange, config.DrillSurface, true)
		if o.asteroid != nil && ctl.Clicked() && o.astronaut.ItemCount(DrillParts) > 0 {
			if o.inRange() {
				o.Execute()
			} else {
				o.ExecuteAfterMove(o.astronaut, config.PlaceRange)
			}
		}
		return input.Stop
	}, o)
}

// Show implements order.Order.
func (o *AstronautPlaceDrill) Show() {
	showGirder(o.girder, o.Target(), o.asteroid, o.inRange())
}

// Execute builds the drill and puts the astronaut at its controls.
func (o *AstronautPlaceDrill) Execute() {
	if o.asteroid == nil || !o.asteroid.CanBuildDrill() {
		o.warn("Asteroid can no longer take a drill")
		o.Complete()
		return
	}
	if !o.astronaut.SpendItem(DrillParts) {
		o.warn("No drill parts left")
		o.Complete()
		return
	}
	inst := NewInstallation(o.world, DrillInstallation, o.Target(), o.asteroid)
	o.astronaut.Target = inst.Position
	inst.Drill().Attach(o.astronaut)
	o.Complete()
}

func showGirder(p *Preview, target vector.Vector, asteroid *Asteroid, inRange bool) {
	p.Position = target
	p.Visible = true
	if asteroid == nil {
		p.Anchor = target
		p.Ink = draw.InkDanger
		return
	}
	p.Anchor = asteroid.Position
	p.Tint(inRange)
}
