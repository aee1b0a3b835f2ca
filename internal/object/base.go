package object

import (
	"slices"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// Base is embedded by every entity. It carries the world position and
// remembers the tags the entity registered so Deregister can undo them all.
type Base struct {
	Position vector.Vector

	reg       *Registry
	self      any
	tags      []Tag
	destroyed bool
}

// Register adds self under each tag. Embedding types call it from their
// constructors, possibly several times as layered constructors add tags.
// self must be the outer entity, not the embedded Base.
func (b *Base) Register(reg *Registry, self any, tags ...Tag) {
	b.reg = reg
	b.self = self
	for _, t := range tags {
		if slices.Contains(b.tags, t) {
			continue
		}
		b.tags = append(b.tags, t)
		reg.Add(t, self)
	}
}

// Deregister removes the entity from every tag it registered. Safe to call twice.
func (b *Base) Deregister() {
	if b.reg != nil && len(b.tags) > 0 {
		b.reg.RemoveAll(b.self, b.tags...)
	}
	b.tags = nil
	b.destroyed = true
}

// Unregister removes a single tag (used when an entity stops updating, e.g. autoTick off).
func (b *Base) Unregister(tag Tag) {
	i := slices.Index(b.tags, tag)
	if i < 0 {
		return
	}
	b.tags = slices.Delete(b.tags, i, i+1)
	if b.reg != nil {
		b.reg.Remove(tag, b.self)
	}
}

// Destroyed reports whether Deregister has run.
func (b *Base) Destroyed() bool { return b.destroyed }

// Registry returns the registry the entity lives in, or nil before Register.
func (b *Base) Registry() *Registry { return b.reg }

// Tags returns the currently registered tags.
func (b *Base) Tags() []Tag { return slices.Clone(b.tags) }

// HasTag reports whether the entity registered tag.
func (b *Base) HasTag(tag Tag) bool { return slices.Contains(b.tags, tag) }

// Pos returns the world position.
func (b *Base) Pos() vector.Vector { return b.Position }
