package collections

import (
	"fmt"
	"slices"
	"strings"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Members returns all values in the set as a slice, in no particular order
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}

// Path is an insertion-ordered set. Resolvers use it to track the chain of
// identifiers visited so far and report the chain when one repeats.
type Path[T comparable] struct {
	seen  Set[T]
	order []T
}

// NewPath returns a path containing vs in order
func NewPath[T comparable](vs ...T) *Path[T] {
	p := &Path[T]{seen: NewSet[T]()}
	for _, v := range vs {
		p.Push(v)
	}
	return p
}

// Push appends v and reports whether it was new. A repeated value is still
// appended so that Members shows the full cycle.
func (p *Path[T]) Push(v T) bool {
	p.order = append(p.order, v)
	if p.seen.Has(v) {
		return false
	}
	p.seen.Add(v)
	return true
}

// Has reports whether v is already on the path
func (p *Path[T]) Has(v T) bool {
	return p.seen.Has(v)
}

// Len returns the number of pushes
func (p *Path[T]) Len() int {
	return len(p.order)
}

// Members returns the values in push order
func (p *Path[T]) Members() []T {
	return slices.Clone(p.order)
}

// Clone returns an independent copy, so sibling branches of a walk do not
// see each other's entries.
func (p *Path[T]) Clone() *Path[T] {
	c := &Path[T]{seen: NewSet[T](), order: slices.Clone(p.order)}
	for v := range p.seen {
		c.seen.Add(v)
	}
	return c
}

// Join renders the path with sep between elements
func (p *Path[T]) Join(sep string) string {
	parts := make([]string, len(p.order))
	for i, v := range p.order {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}
