package store

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/engine"
	"github.com/google/uuid"
	"iter"
)

// devStoreImpl is the instrumented store. It tracks mounted atoms and can restore
// atom values while bypassing their custom write operations.
type devStoreImpl struct {
	*engine.Store
	id           string
	cache        *stateCache
	mountedAtoms *AtomSet
	// inRestore is > 0 while a restore transaction runs
	inRestore int
}

// NewDevStore creates an instrumented store.
func NewDevStore() IDevStore {
	d := &devStoreImpl{
		id:           uuid.NewString(),
		cache:        newStateCache(),
		mountedAtoms: newAtomSet(),
	}
	d.Store = buildEngine(d.cache, d.writeAtom)
	d.Store.Hooks().Observe(engine.MountObserverFuncs{
		Mount:   d.onMount,
		Unmount: d.onUnmount,
	})
	storesCreatedDev.Inc()
	log.Debugf("created dev store %s", d.id)
	return d
}

// writeAtom is the write binding of the dev store. During a restore it assigns
// the value directly instead of running the atom's write operation. This applies
// to every write issued while the restore runs, not only the restored atoms.
func (d *devStoreImpl) writeAtom(a *atom.Atom, get atom.Getter, set atom.Setter, args ...any) (any, error) {
	if d.inRestore > 0 {
		return set(a, args...)
	}
	return a.Write(get, set, args...)
}

func (d *devStoreImpl) onMount(a *atom.Atom) {
	d.mountedAtoms.add(a)
	mountTotal.Inc()
}

func (d *devStoreImpl) onUnmount(a *atom.Atom) {
	d.mountedAtoms.remove(a)
	unmountTotal.Inc()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (d *devStoreImpl) ID() string {
	return d.id
}

func (d *devStoreImpl) StateCache() StateReader {
	return d.cache
}

func (d *devStoreImpl) MountedAtoms() *AtomSet {
	return d.mountedAtoms
}

func (d *devStoreImpl) RestoreAtoms(values iter.Seq2[*atom.Atom, any]) error {
	restored, skipped := 0, 0
	restoreAtom := atom.Derived(
		func(atom.Getter) (any, error) { return nil, nil },
		atom.WithLabel("restore"),
		atom.WithWrite(func(_ atom.Getter, set atom.Setter, _ ...any) (any, error) {
			d.inRestore++
			defer func() { d.inRestore-- }()
			for a, value := range values {
				if !a.HasDefault() {
					skipped++
					continue
				}
				if _, err := set(a, value); err != nil {
					return nil, err
				}
				restored++
			}
			return nil, nil
		}),
	)

	restoreTotal.Inc()
	_, err := d.Set(restoreAtom)
	restoredAtoms.Add(restored)
	restoreSkipped.Add(skipped)
	restoreSizes.Update(int64(restored + skipped))
	if err != nil {
		restoreFailed.Inc()
		log.Debugf("store %s: restore failed after %d atoms: %v", d.id, restored, err)
		return err
	}
	log.Debugf("store %s: restored %d atoms, skipped %d", d.id, restored, skipped)
	return nil
}
