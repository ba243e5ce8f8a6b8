package store

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/engine"
	"iter"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface every store exposes. It is identical for the plain and
// the instrumented variant.
type IStore interface {
	// Get returns the current value of an atom, computing it if required.
	// Errors raised by the atom's read operation are returned unmodified.
	Get(a *atom.Atom) (value any, err error)
	// Set runs the write operation of an atom and returns its result.
	// Listeners of changed atoms are called before Set returns.
	Set(a *atom.Atom, args ...any) (result any, err error)
	// Sub mounts an atom and calls listener after every change of its value.
	// The returned function unsubscribes; calling it more than once is a no-op.
	Sub(a *atom.Atom, listener atom.Listener) (unsubscribe func())
	// ID returns a random id of the store, used in log lines and diagnostics.
	ID() (id string)
}

// IDevStore is the instrumented store. Its additional methods are meant for
// debugging tools and may change between releases.
type IDevStore interface {
	IStore
	// StateCache returns a read-only view of the state cache of the store.
	StateCache() StateReader
	// MountedAtoms returns the live set of currently mounted atoms. The set keeps
	// changing with the store; it is not a copy.
	MountedAtoms() *AtomSet
	// RestoreAtoms assigns the given values in one write transaction. Custom write
	// operations are bypassed and atoms without a default value are skipped.
	// values is consumed exactly once, in order.
	RestoreAtoms(values iter.Seq2[*atom.Atom, any]) (err error)
}

// StateReader is a read-only view of a state cache.
type StateReader interface {
	// Get returns the state of an atom, if the store created one.
	Get(a *atom.Atom) (state *engine.AtomState, ok bool)
	// Size returns the number of cached states.
	Size() int
}

// --------------------------------------------------------------------------
// Restore Input
// --------------------------------------------------------------------------

// Pair is one atom value handed to RestoreAtoms.
type Pair struct {
	Atom  *atom.Atom
	Value any
}

// Values returns a sequence over the given pairs, in order.
func Values(pairs ...Pair) iter.Seq2[*atom.Atom, any] {
	return func(yield func(*atom.Atom, any) bool) {
		for _, p := range pairs {
			if !yield(p.Atom, p.Value) {
				return
			}
		}
	}
}
