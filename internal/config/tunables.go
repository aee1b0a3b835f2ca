package config

// World units are the units of scene data; time is in seconds.
// Per-frame impulses are tuned for ReferenceFPS and scaled by dt*ReferenceFPS.
const (
	ReferenceFPS = 60.0
)

// World
const (
	WorldWidth  = 5000.0 // spirits leave past this x
	WorldHeight = 5000.0 // spirits spawn at a random y in [0, WorldHeight)
	ExitZoneX   = 4000.0
	ExitZoneY   = 0.0
	ExitZoneR   = 400.0

	// Spirits are bucketed for short-range queries; a cell must cover the
	// largest query radius plus a frame of spirit drift.
	SpiritGridCell   = 250.0
	SpiritGridMargin = 1000.0
)

// Camera
const (
	DefaultZoom = 0.04
	MinZoom     = 0.005
	MaxZoom     = 0.5
	ZoomStep    = 0.1   // fraction of the current zoom per wheel notch
	PanSpeed    = 800.0 // screen units per second, divided by zoom
)

// Selection
const (
	SelectRadius = 500.0
)

// Spirit
const (
	SpiritPower      = 2.0
	SpiritTopSpeed   = 750.0
	SpiritJitter     = 100.0  // max random velocity change per reference frame
	SpiritSteerScale = 1000.0 // repeller steering magnitude to velocity
	SpiritFadeTime   = 1.0
	SpiritTrail      = 100
	SpiritSize       = 40.0
)

// Waves
const (
	WaveSpeed        = 100.0 // drift added per reference frame
	WaveSpawnLimit   = 0.9
	WaveSpreadAngle  = 1.5
	WaveRampDuration = 100.0
)

// Astronaut
const (
	AstronautSpeed        = 120.0
	AstronautResist       = 100.0
	AstronautAttractRange = 500.0
	AstronautAttackRange  = 100.0
	AstronautDrain        = 5.0 // resist per second per attacking spirit
	AstronautRecover      = 2.0 // resist per second when not under attack
	AstronautStress       = 1.0 // seconds an attacked astronaut cannot operate a drill
	AstronautSize         = 50.0
	AstronautSlots        = 3
)

// Installations
const (
	InstallationResist       = 100.0
	InstallationAttractRange = 800.0 // at full resist
	InstallationAttackRange  = 100.0
	InstallationDrain        = 5.0
	InstallationRecover      = 10.0
	InstallationConfused     = 90.0 // below this resist the installation misbehaves
	InstallationSize         = 100.0
)

// Turret
const (
	TurretRange         = 3000.0
	TurretMaxBurst      = 3
	TurretBetweenShots  = 0.1
	TurretBetweenBursts = 1.3
	TurretFireRate      = 0.5
	TurretMuzzleTime    = 0.05
)

// Projectile
const (
	ProjectileSpeed     = 4000.0
	ProjectileLife      = 3.0
	ProjectileHitRange  = 100.0
	ProjectileSeekRange = 5000.0
	ProjectileDamage    = 1.0
	ProjectileKnockback = 2000.0
)

// Spotlight
const (
	SpotlightLength     = 2000.0
	SpotlightDrainScale = 0.3
	SpotlightDecay      = 0.1
	SpotlightMinimum    = 0.03
	SpotlightBlink      = 0.05
	SpotlightAimRate    = 3.0 // fraction of the remaining turn per second
	SpotlightReach      = 1000.0
)

// Drill
const (
	DrillRate          = 1.0 // resource per second
	DrillOperatorRange = 100.0
)

// Flares
const (
	FlareIgnition      = 1.0
	FlareTossTime      = 1.0
	FlareSize          = 50.0
	FlareRepellRange   = 500.0
	FlareKillRange     = 300.0
	FlareAttractRange  = 800.0
	FlareAttractPull   = -0.025
	FlareRepellDecay   = 0.05
	FlareKillDecay     = 0.1
	FlareKillDrain     = 0.2
	FlareAttractDecay  = 0.01
	FlareBurnout       = 0.05
	DroppedItemSize    = 50.0
	FlareGrabbedOffset = 30.0
)

// Orders
const (
	ThrowRange          = 500.0
	GrabRange           = 100.0
	CollectRange        = 50.0
	PlaceRange          = 200.0
	PlaceSearchRange    = 500.0
	InstallationSurface = 300.0 // max distance above an asteroid surface
	DrillSurface        = 150.0
	ShipPickupMargin    = 200.0
)

// Ship
const (
	ShipResist       = 100.0
	ShipSize         = 250.0
	ShipSpeed        = 200.0
	ShipTurnRate     = 1.0 // radians per second
	ShipAttractRange = 1200.0
	ShipAttackRange  = 300.0
	ShipDrain        = 2.0
	ShipSlots        = 8
	ShipCrew         = 3
	ShipBoardRange   = 300.0
)

// Objectives
const (
	MiningTarget    = 200.0
	RecoverTarget   = 2
	CrewTarget      = 3
	ReloadDelay     = 3.0
	TransitionDelay = 2.0
)

// Ritual
const (
	RitualRange   = 2500.0
	RitualCharge  = 30.0
	RitualFade    = 10.0
	RitualDamping = 0.02
)

// Terminal frontends
const (
	MaxTermWidth         = 240 // columns; larger terminals render centred
	MaxTermHeight        = 80  // rows
	MaxFrameDelta        = 0.1 // seconds; longer stalls are simulated as this
	KeyHoldMillis        = 150 // keys without a repeat for this long count as released
	InactivityWarn       = 240 // seconds without input before an SSH player is warned
	InactivityDisconnect = 300 // seconds without input before an SSH session ends
)

// Particles
const (
	SparkCount    = 6
	SparkSpeed    = 300.0 // world units per second
	SparkLife     = 0.4   // seconds
	SparkDrag     = 0.92  // velocity kept per reference frame
	FadeBurstSize = 10
)
