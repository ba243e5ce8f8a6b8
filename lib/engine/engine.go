package engine

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/lni/dragonboat/v4/logger"
	"slices"
)

var log = logger.GetLogger("engine")

// --------------------------------------------------------------------------
// Bindings
// --------------------------------------------------------------------------

type (
	// StateGetter returns the cached state of an atom or nil.
	StateGetter func(a *atom.Atom) *AtomState
	// StateSetter stores the state of an atom and returns the stored value.
	StateSetter func(a *atom.Atom, s *AtomState) *AtomState
	// ReadHook computes the value of an atom.
	ReadHook func(a *atom.Atom, get atom.Getter) (any, error)
	// WriteHook runs the write operation of an atom.
	WriteHook func(a *atom.Atom, get atom.Getter, set atom.Setter, args ...any) (any, error)
	// InitHook is called once per atom when its state is created.
	InitHook func(a *atom.Atom, s atom.Store)
	// MountHook is called when an atom is mounted and returns an optional cleanup.
	MountHook func(a *atom.Atom, set atom.SetSelf) (onUnmount func())
)

// mounted is the bookkeeping of an atom that has subscribers or mounted dependents.
type mounted struct {
	listeners  []*listenerEntry
	deps       map[*atom.Atom]struct{}
	dependents map[*atom.Atom]struct{}
	onUnmount  func()
}

type listenerEntry struct {
	fn atom.Listener
}

// Store is the dependency graph engine. It is not safe for concurrent use: every
// operation runs to completion on the calling goroutine, including listeners.
type Store struct {
	getAtomState StateGetter
	setAtomState StateSetter
	readAtom     ReadHook
	writeAtom    WriteHook
	initAtom     InitHook
	mountAtom    MountHook

	hooks   *StoreHooks
	mounted map[*atom.Atom]*mounted

	changed    []*atom.Atom
	changedSet map[*atom.Atom]struct{}
	depth      int
	flushing   bool
}

// BuildStore creates a store that keeps its state through the given bindings.
// The engine owns no atom state itself: everything is read and written through
// getAtomState and setAtomState.
func BuildStore(
	getAtomState StateGetter,
	setAtomState StateSetter,
	readAtom ReadHook,
	writeAtom WriteHook,
	initAtom InitHook,
	mountAtom MountHook,
) *Store {
	return &Store{
		getAtomState: getAtomState,
		setAtomState: setAtomState,
		readAtom:     readAtom,
		writeAtom:    writeAtom,
		initAtom:     initAtom,
		mountAtom:    mountAtom,
		hooks:        &StoreHooks{},
		mounted:      make(map[*atom.Atom]*mounted),
		changedSet:   make(map[*atom.Atom]struct{}),
	}
}

// Hooks gives access to the mount notification slot of the store.
func (s *Store) Hooks() *StoreHooks {
	return s.hooks
}

// --------------------------------------------------------------------------
// Public Operations (docu see atom.Store)
// --------------------------------------------------------------------------

func (s *Store) Get(a *atom.Atom) (any, error) {
	st := s.readAtomState(a)
	return st.value, st.err
}

func (s *Store) Set(a *atom.Atom, args ...any) (result any, err error) {
	s.batch(func() {
		result, err = s.writeAtomState(a, args...)
	})
	return result, err
}

func (s *Store) Sub(a *atom.Atom, listener atom.Listener) func() {
	entry := &listenerEntry{fn: listener}
	s.batch(func() {
		m := s.mount(a)
		m.listeners = append(m.listeners, entry)
	})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		s.batch(func() {
			m := s.mounted[a]
			if m == nil {
				return
			}
			m.listeners = slices.DeleteFunc(m.listeners, func(e *listenerEntry) bool { return e == entry })
			s.unmount(a)
		})
	}
}

// --------------------------------------------------------------------------
// Read and Write
// --------------------------------------------------------------------------

func (s *Store) ensureAtomState(a *atom.Atom) *AtomState {
	if st := s.getAtomState(a); st != nil {
		return st
	}
	st := s.setAtomState(a, newAtomState())
	s.initAtom(a, s)
	return st
}

// readAtomState returns the state of a, recomputing it when it was never computed
// or when one of its dependencies changed since the last computation.
func (s *Store) readAtomState(a *atom.Atom) *AtomState {
	st := s.ensureAtomState(a)
	if st.computed && s.fresh(st) {
		return st
	}

	deps := make(map[*atom.Atom]uint64)
	getter := func(d *atom.Atom) (any, error) {
		if d == a {
			if st.computed {
				return st.value, st.err
			}
			if v, ok := a.Default(); ok {
				return v, nil
			}
			return nil, fmt.Errorf("%w: %s", atom.ErrNoDefault, a)
		}
		ds := s.readAtomState(d)
		deps[d] = ds.epoch
		return ds.value, ds.err
	}

	value, err := s.readAtom(a, getter)
	st.deps = deps
	s.setValue(a, st, value, err)
	return st
}

func (s *Store) fresh(st *AtomState) bool {
	for d, epoch := range st.deps {
		if s.readAtomState(d).epoch != epoch {
			return false
		}
	}
	return true
}

func (s *Store) setValue(a *atom.Atom, st *AtomState, value any, err error) {
	changed := !st.computed || !sameValue(st.err, err) || !sameValue(st.value, value)
	st.value, st.err, st.computed = value, err, true
	if !changed {
		return
	}
	st.epoch++
	if _, ok := s.mounted[a]; ok {
		s.markChanged(a)
	}
}

func (s *Store) writeAtomState(a *atom.Atom, args ...any) (any, error) {
	getter := func(d *atom.Atom) (any, error) {
		st := s.readAtomState(d)
		return st.value, st.err
	}
	setter := func(t *atom.Atom, targs ...any) (any, error) {
		if t != a {
			return s.writeAtomState(t, targs...)
		}
		if !t.HasDefault() {
			return nil, fmt.Errorf("%w: %s has no default value", atom.ErrNotWritable, t)
		}
		var value any
		if len(targs) > 0 {
			value = targs[0]
		}
		st := s.ensureAtomState(t)
		st.deps = make(map[*atom.Atom]uint64)
		s.setValue(t, st, value, nil)
		return nil, nil
	}
	return s.writeAtom(a, getter, setter, args...)
}

// --------------------------------------------------------------------------
// Mounting
// --------------------------------------------------------------------------

func (s *Store) mount(a *atom.Atom) *mounted {
	if m, ok := s.mounted[a]; ok {
		return m
	}
	st := s.readAtomState(a)
	m := &mounted{
		deps:       make(map[*atom.Atom]struct{}),
		dependents: make(map[*atom.Atom]struct{}),
	}
	s.mounted[a] = m
	for dep := range st.deps {
		s.mount(dep).dependents[a] = struct{}{}
		m.deps[dep] = struct{}{}
	}
	log.Debugf("mounted %s", a)
	s.hooks.mount(a)
	m.onUnmount = s.mountAtom(a, func(args ...any) (any, error) {
		return s.Set(a, args...)
	})
	return m
}

// unmount removes a from the mounted atoms if nothing observes it anymore and
// then tries the same for its dependencies.
func (s *Store) unmount(a *atom.Atom) {
	m, ok := s.mounted[a]
	if !ok || len(m.listeners) > 0 || len(m.dependents) > 0 {
		return
	}
	if m.onUnmount != nil {
		m.onUnmount()
	}
	delete(s.mounted, a)
	log.Debugf("unmounted %s", a)
	s.hooks.unmount(a)
	for dep := range m.deps {
		if dm, ok := s.mounted[dep]; ok {
			delete(dm.dependents, a)
			s.unmount(dep)
		}
	}
}

// syncDeps aligns the mounted dependencies of a with the ones recorded during its
// last computation.
func (s *Store) syncDeps(a *atom.Atom) {
	m, ok := s.mounted[a]
	if !ok {
		return
	}
	st := s.getAtomState(a)
	for dep := range st.deps {
		if _, ok := m.deps[dep]; !ok {
			s.mount(dep).dependents[a] = struct{}{}
			m.deps[dep] = struct{}{}
		}
	}
	for dep := range m.deps {
		if _, ok := st.deps[dep]; ok {
			continue
		}
		delete(m.deps, dep)
		if dm, ok := s.mounted[dep]; ok {
			delete(dm.dependents, a)
			s.unmount(dep)
		}
	}
}

// --------------------------------------------------------------------------
// Change Propagation
// --------------------------------------------------------------------------

func (s *Store) markChanged(a *atom.Atom) {
	if _, ok := s.changedSet[a]; ok {
		return
	}
	s.changedSet[a] = struct{}{}
	s.changed = append(s.changed, a)
}

func (s *Store) drainChanged() []*atom.Atom {
	changed := s.changed
	s.changed = nil
	clear(s.changedSet)
	return changed
}

// batch runs fn and flushes pending changes once the outermost batch returns.
// A panic in fn skips the flush; pending changes are kept for the next one.
func (s *Store) batch(fn func()) {
	s.depth++
	func() {
		defer func() { s.depth-- }()
		fn()
	}()
	if s.depth == 0 {
		s.flush()
	}
}

// flush recomputes the mounted dependents of every changed atom and calls the
// listeners of all mounted atoms whose value changed. Writes issued by listeners
// are picked up by the same flush.
func (s *Store) flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()

	for len(s.changed) > 0 {
		changed := s.drainChanged()
		for _, d := range s.dependentsOf(changed) {
			if _, ok := s.mounted[d]; !ok {
				continue
			}
			s.readAtomState(d)
			s.syncDeps(d)
		}
		changed = append(changed, s.drainChanged()...)

		for _, a := range changed {
			m, ok := s.mounted[a]
			if !ok {
				continue
			}
			for _, l := range slices.Clone(m.listeners) {
				l.fn()
			}
		}
	}
}

// dependentsOf returns the roots and all their mounted dependents in topological order.
func (s *Store) dependentsOf(roots []*atom.Atom) []*atom.Atom {
	var order []*atom.Atom
	visited := make(map[*atom.Atom]struct{})
	var visit func(a *atom.Atom)
	visit = func(a *atom.Atom) {
		if _, ok := visited[a]; ok {
			return
		}
		visited[a] = struct{}{}
		if m, ok := s.mounted[a]; ok {
			for d := range m.dependents {
				visit(d)
			}
		}
		order = append(order, a)
	}
	for _, r := range roots {
		visit(r)
	}
	slices.Reverse(order)
	return order
}
