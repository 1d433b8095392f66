package game

import (
	"slices"
	"strings"
)

// NameSet is a set of case-insensitive names. Members are stored in their
// canonical Key form.
type NameSet map[string]struct{}

// NewNameSet returns a set holding the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was not already present.
func (s NameSet) Add(name string) bool {
	k := Key(name)
	if k == "" {
		return false
	}
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}

// Remove deletes name and reports whether it was present.
func (s NameSet) Remove(name string) bool {
	k := Key(name)
	if _, ok := s[k]; !ok {
		return false
	}
	delete(s, k)
	return true
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[Key(name)]
	return ok
}

// Sorted returns the members in ascending order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// String renders the set as space separated members.
func (s NameSet) String() string {
	return strings.Join(s.Sorted(), " ")
}

// Clone returns an independent copy of the set.
func (s NameSet) Clone() NameSet {
	c := make(NameSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}
