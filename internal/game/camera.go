package game

import (
	"math"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Camera maps world coordinates to the logical render surface.
// It implements input.Camera and draw.Projector.
type Camera struct {
	object.Base

	width, height float64
	zoom          float64
}

// NewCamera registers a camera for a width x height render surface.
func NewCamera(reg *object.Registry, width, height float64) *Camera {
	c := &Camera{width: width, height: height, zoom: config.DefaultZoom}
	c.Register(reg, c, object.TagCamera)
	return c
}

// SetViewport changes the render surface size.
func (c *Camera) SetViewport(width, height float64) {
	c.width, c.height = width, height
}

// Viewport returns the render surface size.
func (c *Camera) Viewport() (float64, float64) { return c.width, c.height }

// Center returns the middle of the render surface.
func (c *Camera) Center() vector.Vector {
	return vector.New(c.width/2, c.height/2)
}

// Zoom returns render units per world unit.
func (c *Camera) Zoom() float64 { return c.zoom }

// SetZoom sets the zoom, clamped to the configured limits.
func (c *Camera) SetZoom(z float64) {
	c.zoom = min(max(z, config.MinZoom), config.MaxZoom)
}

// WorldToRender projects a world point onto the render surface.
func (c *Camera) WorldToRender(p vector.Vector) vector.Vector {
	return p.Diff(c.Position).Scaled(c.zoom).Plus(c.Center())
}

// RenderToWorld is the inverse of WorldToRender.
func (c *Camera) RenderToWorld(p vector.Vector) vector.Vector {
	return p.Diff(c.Center()).Scaled(1 / c.zoom).Plus(c.Position)
}

// Update pans with the arrow keys and zooms with the wheel or +/-.
func (c *Camera) Update(ctl *input.ControlManager, dt float64) {
	pan := config.PanSpeed * dt / c.zoom
	if ctl.Held(input.KeyLeft) {
		c.Position.X -= pan
	}
	if ctl.Held(input.KeyRight) {
		c.Position.X += pan
	}
	if ctl.Held(input.KeyUp) {
		c.Position.Y -= pan
	}
	if ctl.Held(input.KeyDown) {
		c.Position.Y += pan
	}

	wheel := ctl.Wheel()
	if ctl.Pressed(input.KeyPlus) {
		wheel--
	}
	if ctl.Pressed(input.KeyMinus) {
		wheel++
	}
	if wheel != 0 {
		sign := math.Copysign(1, wheel)
		c.SetZoom(c.zoom - sign*config.ZoomStep*c.zoom)
	}
}

// Destroy removes the camera from the registry.
func (c *Camera) Destroy() {
	c.Deregister()
}
