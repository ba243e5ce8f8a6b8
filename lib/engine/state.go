package engine

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"reflect"
)

// AtomState is the per-store record of one atom. Stores keep it in their state
// cache but never look inside; only the engine reads and writes its fields.
type AtomState struct {
	value    any
	err      error
	computed bool
	// epoch is bumped every time the value changes
	epoch uint64
	// deps maps every atom read during the last computation to its epoch at that time
	deps map[*atom.Atom]uint64
}

func newAtomState() *AtomState {
	return &AtomState{deps: make(map[*atom.Atom]uint64)}
}

// Value returns the cached value and whether the atom was computed at least once.
// It never triggers a read; it is meant for debugging tools.
func (s *AtomState) Value() (value any, ok bool) {
	return s.value, s.computed
}

// Err returns the error of the last computation.
func (s *AtomState) Err() error {
	return s.err
}

// Epoch returns a counter that changes every time the value changes.
func (s *AtomState) Epoch() uint64 {
	return s.epoch
}

// Dependencies returns the number of atoms read during the last computation.
func (s *AtomState) Dependencies() int {
	return len(s.deps)
}

// sameValue compares two values with == when both are dynamically comparable.
// Anything else (slices, maps, funcs) is always treated as changed.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
