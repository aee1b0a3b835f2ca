// Package object provides the tagged entity registry every game entity lives in.
//
// Entities declare capability tags when they are constructed and the registry
// indexes live entities per tag, so each frame phase iterates only the entities
// that take part in it. The registry holds plain references; an entity is
// responsible for deregistering itself when it is destroyed.
package object

import (
	"errors"

	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// ErrNotFound is returned when a tag has no live entity.
var ErrNotFound = errors.New("object: no entity with tag")

// Tag is a capability or domain marker.
type Tag string

// Frame phase tags.
const (
	TagUpdatable   Tag = "updatable"
	TagDrawable    Tag = "drawable"
	TagPreUpdate   Tag = "preupdate"
	TagPostProcess Tag = "postprocess"
	TagDebug       Tag = "debug"
)

// Domain tags.
const (
	TagSceneBound  Tag = "scenebound"
	TagSelectable  Tag = "selectable"
	TagAsteroid    Tag = "asteroid"
	TagSpirit      Tag = "spirit"
	TagRepeller    Tag = "repeller"
	TagPickupable  Tag = "pickupable"
	TagAstronaut   Tag = "astronaut"
	TagCamera      Tag = "camera"
	TagFlare       Tag = "flare"
	TagDroppedItem Tag = "droppedItem"
	TagShip        Tag = "ship"
	TagTurret      Tag = "turret"
)

// Updatable entities run every frame after input has been collected.
type Updatable interface {
	Update()
}

// Drawable entities render themselves into the frame after all updates.
type Drawable interface {
	Draw(f *draw.Frame)
}

// PreUpdater entities run before the input requests of the frame are gathered.
type PreUpdater interface {
	PreUpdate()
}

// PostProcessor entities run after drawing.
type PostProcessor interface {
	PostProcess()
}

// Debugger entities render debug overlays when debug drawing is on.
type Debugger interface {
	DrawDebug(f *draw.Frame)
}

// Destroyer is implemented by every entity that owns registry entries.
// Scene-bound entities are destroyed through it when a level unloads.
type Destroyer interface {
	Destroy()
}

// Positioned entities expose a world position.
type Positioned interface {
	Pos() vector.Vector
}
