package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TODO(go,nth) make this threadsafe

// Set holds items unique by their id. Iteration order is unspecified;
// use SortedItems when a deterministic order is needed.
type Set[T any, ID comparable] struct {
	m  map[ID]T
	id IdFunc[T, ID]
}

func NewSet[T any, ID comparable](id IdFunc[T, ID]) *Set[T, ID] {
	return &Set[T, ID]{
		m:  map[ID]T{},
		id: id,
	}
}

// NewStrSet is a set of strings identified by themselves
func NewStrSet(items ...string) *Set[string, string] {
	s := NewSet(Identity[string])
	s.AddFrom(items)
	return s
}

func (self *Set[T, ID]) Add(items ...T) {
	self.AddFrom(items)
}

func (self *Set[T, ID]) AddFrom(items []T) {
	for _, item := range items {
		self.m[self.id(item)] = item
	}
}

func (self *Set[T, ID]) Has(item T) bool {
	if self == nil {
		return false
	}
	_, ok := self.m[self.id(item)]
	return ok
}

func (self *Set[T, ID]) Len() int {
	if self == nil {
		return 0
	}
	return len(self.m)
}

func (self *Set[T, ID]) Items() []T {
	if self == nil {
		return nil
	}
	return maps.Values(self.m)
}

func (self *Set[T, ID]) Clone() *Set[T, ID] {
	out := NewSet(self.id)
	if self != nil {
		for k, v := range self.m {
			out.m[k] = v
		}
	}
	return out
}

// SortedItems returns the items of an ordered set in ascending order
func SortedItems[T constraints.Ordered](s *Set[T, T]) []T {
	out := s.Items()
	slices.Sort(out)
	return out
}
