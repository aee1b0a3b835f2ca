package object

import (
	"github.com/pkg/errors"
)

// Registry indexes live entities per tag.
// Add and Remove are idempotent set operations with O(1) cost.
// Not safe for concurrent use; a match owns exactly one registry.
type Registry struct {
	sets map[Tag]*entitySet
}

// entitySet is an insertion-ordered set with swap-remove.
type entitySet struct {
	items []any
	index map[any]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[Tag]*entitySet)}
}

// Add registers e under tag. Adding twice is a no-op.
// e must be comparable (entities are pointers).
func (r *Registry) Add(tag Tag, e any) {
	s, ok := r.sets[tag]
	if !ok {
		s = &entitySet{index: make(map[any]int)}
		r.sets[tag] = s
	}
	if _, exists := s.index[e]; exists {
		return
	}
	s.index[e] = len(s.items)
	s.items = append(s.items, e)
}

// Remove deregisters e from tag. Removing an absent entity is a no-op.
func (r *Registry) Remove(tag Tag, e any) {
	s, ok := r.sets[tag]
	if !ok {
		return
	}
	i, exists := s.index[e]
	if !exists {
		return
	}

	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index[moved] = i
	}
	s.items[last] = nil
	s.items = s.items[:last]
	delete(s.index, e)
}

// Has reports whether e is registered under tag.
func (r *Registry) Has(tag Tag, e any) bool {
	s, ok := r.sets[tag]
	if !ok {
		return false
	}
	_, exists := s.index[e]
	return exists
}

// RemoveAll deregisters e from the given tags, or from every tag when none
// are given.
func (r *Registry) RemoveAll(e any, tags ...Tag) {
	if len(tags) == 0 {
		for tag := range r.sets {
			r.Remove(tag, e)
		}
		return
	}
	for _, tag := range tags {
		r.Remove(tag, e)
	}
}

// Count returns the number of entities under tag.
func (r *Registry) Count(tag Tag) int {
	if s, ok := r.sets[tag]; ok {
		return len(s.items)
	}
	return 0
}

// All returns a snapshot of the entities under tag.
// The snapshot is safe to iterate while entities add or remove themselves.
func (r *Registry) All(tag Tag) []any {
	s, ok := r.sets[tag]
	if !ok || len(s.items) == 0 {
		return nil
	}
	out := make([]any, len(s.items))
	copy(out, s.items)
	return out
}

// Clear drops every entity from every tag without calling their destructors.
func (r *Registry) Clear() {
	clear(r.sets)
}

// All returns a snapshot of the entities under tag that implement T.
func All[T any](r *Registry, tag Tag) []T {
	items := r.All(tag)
	out := make([]T, 0, len(items))
	for _, e := range items {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// First returns any one entity under tag implementing T.
func First[T any](r *Registry, tag Tag) (T, error) {
	var zero T
	s, ok := r.sets[tag]
	if !ok {
		return zero, errors.Wrapf(ErrNotFound, "tag %q", tag)
	}
	for _, e := range s.items {
		if t, ok := e.(T); ok {
			return t, nil
		}
	}
	return zero, errors.Wrapf(ErrNotFound, "tag %q", tag)
}

// MustFirst is First for callers that guarantee the tag is populated.
func MustFirst[T any](r *Registry, tag Tag) T {
	t, err := First[T](r, tag)
	if err != nil {
		panic(err)
	}
	return t
}
