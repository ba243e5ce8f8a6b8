package store

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/engine"
	"github.com/puzpuzpuz/xsync/v3"
	"iter"
	"runtime"
	"weak"
)

// --------------------------------------------------------------------------
// State Cache
// --------------------------------------------------------------------------

// stateCache maps atoms to their state. Keys are weak pointers, so the cache
// never keeps an atom alive: once an atom is collected its entry is removed.
type stateCache struct {
	m *xsync.MapOf[weak.Pointer[atom.Atom], *engine.AtomState]
}

func newStateCache() *stateCache {
	return &stateCache{
		m: xsync.NewMapOf[weak.Pointer[atom.Atom], *engine.AtomState](),
	}
}

func (c *stateCache) Get(a *atom.Atom) (*engine.AtomState, bool) {
	return c.m.Load(weak.Make(a))
}

func (c *stateCache) Size() int {
	return c.m.Size()
}

// get is the state getter binding of the engine.
func (c *stateCache) get(a *atom.Atom) *engine.AtomState {
	st, _ := c.m.Load(weak.Make(a))
	return st
}

// set is the state setter binding of the engine. It returns the stored state.
func (c *stateCache) set(a *atom.Atom, st *engine.AtomState) *engine.AtomState {
	key := weak.Make(a)
	if _, loaded := c.m.LoadAndStore(key, st); !loaded {
		// the cleanup only holds the cache weakly
		wc := weak.Make(c)
		runtime.AddCleanup(a, func(k weak.Pointer[atom.Atom]) {
			if c := wc.Value(); c != nil {
				c.m.Delete(k)
			}
		}, key)
	}
	return c.get(a)
}

// --------------------------------------------------------------------------
// Atom Set
// --------------------------------------------------------------------------

// AtomSet is a set of atoms, used for the mounted atoms of a dev store.
type AtomSet struct {
	m *xsync.MapOf[*atom.Atom, struct{}]
}

func newAtomSet() *AtomSet {
	return &AtomSet{m: xsync.NewMapOf[*atom.Atom, struct{}]()}
}

// Has reports whether a is in the set.
func (s *AtomSet) Has(a *atom.Atom) bool {
	_, ok := s.m.Load(a)
	return ok
}

// Len returns the number of atoms in the set.
func (s *AtomSet) Len() int {
	return s.m.Size()
}

// All iterates the atoms in the set in no particular order.
func (s *AtomSet) All() iter.Seq[*atom.Atom] {
	return func(yield func(*atom.Atom) bool) {
		s.m.Range(func(a *atom.Atom, _ struct{}) bool {
			return yield(a)
		})
	}
}

func (s *AtomSet) add(a *atom.Atom) {
	s.m.Store(a, struct{}{})
}

func (s *AtomSet) remove(a *atom.Atom) {
	s.m.Delete(a)
}
