package snapshot

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"sort"
)

var log = logger.GetLogger("snapshot")

// Capture returns the cached values of all mounted atoms of a dev store, keyed by
// atom label. It reads the state cache only and never triggers a computation;
// atoms that failed to compute are left out.
func Capture(dev store.IDevStore) Snapshot {
	snap := Snapshot{}
	for a := range dev.MountedAtoms().All() {
		st, ok := dev.StateCache().Get(a)
		if !ok || st.Err() != nil {
			continue
		}
		if v, ok := st.Value(); ok {
			snap[a.String()] = v
		}
	}
	log.Debugf("captured %d atoms from store %s", len(snap), dev.ID())
	return snap
}

// Resolve maps the labels of a snapshot onto the given atoms and returns the
// restore input, ordered by label. Labels without a matching atom fail with
// ErrUnknownAtom.
func Resolve(snap Snapshot, atoms ...*atom.Atom) ([]store.Pair, error) {
	byLabel := make(map[string]*atom.Atom, len(atoms))
	for _, a := range atoms {
		byLabel[a.String()] = a
	}

	labels := make([]string, 0, len(snap))
	for label := range snap {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	pairs := make([]store.Pair, 0, len(labels))
	for _, label := range labels {
		a, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAtom, label)
		}
		pairs = append(pairs, store.Pair{Atom: a, Value: snap[label]})
	}
	return pairs, nil
}

// Restore resolves snap against atoms and restores the result into dev.
func Restore(dev store.IDevStore, snap Snapshot, atoms ...*atom.Atom) error {
	pairs, err := Resolve(snap, atoms...)
	if err != nil {
		return err
	}
	return dev.RestoreAtoms(store.Values(pairs...))
}
