package engine

import "github.com/ValentinKolb/atomstore/lib/atom"

// MountObserver is notified whenever an atom is mounted or unmounted in a store.
type MountObserver interface {
	OnMount(a *atom.Atom)
	OnUnmount(a *atom.Atom)
}

// MountObserverFuncs adapts two plain functions to MountObserver. Nil fields are skipped.
type MountObserverFuncs struct {
	Mount   func(a *atom.Atom)
	Unmount func(a *atom.Atom)
}

// OnMount implements MountObserver.
func (f MountObserverFuncs) OnMount(a *atom.Atom) {
	if f.Mount != nil {
		f.Mount(a)
	}
}

// OnUnmount implements MountObserver.
func (f MountObserverFuncs) OnUnmount(a *atom.Atom) {
	if f.Unmount != nil {
		f.Unmount(a)
	}
}

// StoreHooks holds the single mount observer of a store.
type StoreHooks struct {
	observer MountObserver
}

// Observe installs o as the mount observer, replacing any previous one.
// Observers are never chained: the last registration wins. Passing nil removes it.
func (h *StoreHooks) Observe(o MountObserver) {
	h.observer = o
}

func (h *StoreHooks) mount(a *atom.Atom) {
	if h.observer != nil {
		h.observer.OnMount(a)
	}
}

func (h *StoreHooks) unmount(a *atom.Atom) {
	if h.observer != nil {
		h.observer.OnUnmount(a)
	}
}
