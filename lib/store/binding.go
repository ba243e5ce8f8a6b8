package store

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/engine"
)

// --------------------------------------------------------------------------
// Engine Bindings
// --------------------------------------------------------------------------

// buildEngine wires a state cache and a write hook into a new engine store. The
// remaining bindings call the atom's own operations unmodified.
func buildEngine(cache *stateCache, write engine.WriteHook) *engine.Store {
	return engine.BuildStore(
		cache.get,
		cache.set,
		readAtom,
		write,
		initAtom,
		mountAtom,
	)
}

func readAtom(a *atom.Atom, get atom.Getter) (any, error) {
	return a.Read(get)
}

func writeAtom(a *atom.Atom, get atom.Getter, set atom.Setter, args ...any) (any, error) {
	return a.Write(get, set, args...)
}

func initAtom(a *atom.Atom, s atom.Store) {
	a.Init(s)
}

func mountAtom(a *atom.Atom, set atom.SetSelf) func() {
	return a.Mount(set)
}
