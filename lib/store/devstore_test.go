package store

import (
	"errors"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"iter"
	"strings"
	"testing"
)

func newDevStoreImpl(t *testing.T) *devStoreImpl {
	t.Helper()
	d, ok := NewDevStore().(*devStoreImpl)
	require.True(t, ok)
	return d
}

// loggingAtom returns a primitive atom whose custom write appends to log before assigning.
func loggingAtom(initial any, log *[]any) *atom.Atom {
	var a *atom.Atom
	a = atom.New(initial, atom.WithWrite(func(get atom.Getter, set atom.Setter, args ...any) (any, error) {
		*log = append(*log, args...)
		return set(a, args...)
	}))
	return a
}

func TestRestoreBypassesCustomWrite(t *testing.T) {
	d := newDevStoreImpl(t)
	var log []any
	x := loggingAtom(5, &log)

	require.Equal(t, 0, d.inRestore)
	err := d.RestoreAtoms(Values(Pair{Atom: x, Value: 42}))
	require.NoError(t, err)
	require.Equal(t, 0, d.inRestore)

	v, err := d.Get(x)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Empty(t, log, "custom write must not run during restore")

	// ordinary writes go through the custom write again
	_, err = d.Set(x, 1)
	require.NoError(t, err)
	assert.Equal(t, []any{1}, log)
}

func TestRestoreSkipsDerivedAtoms(t *testing.T) {
	d := newDevStoreImpl(t)
	base := atom.New(2)
	y := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(base))
		return v + 1, err
	}, atom.WithWrite(func(get atom.Getter, set atom.Setter, args ...any) (any, error) {
		return set(base, args...)
	}))

	before, err := d.Get(y)
	require.NoError(t, err)

	err = d.RestoreAtoms(Values(Pair{Atom: y, Value: 99}))
	require.NoError(t, err)

	after, err := d.Get(y)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 3, after)
}

func TestRestoreMixedBatch(t *testing.T) {
	d := newDevStoreImpl(t)
	a, b := atom.New("a"), atom.New(0)
	sum := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(b))
		return v * 10, err
	})

	err := d.RestoreAtoms(Values(
		Pair{Atom: a, Value: "restored"},
		Pair{Atom: sum, Value: -1},
		Pair{Atom: b, Value: 4},
	))
	require.NoError(t, err)

	va, _ := d.Get(a)
	vb, _ := d.Get(b)
	vs, _ := d.Get(sum)
	assert.Equal(t, "restored", va)
	assert.Equal(t, 4, vb)
	assert.Equal(t, 40, vs)
}

func TestRestoreLaterPairWins(t *testing.T) {
	d := newDevStoreImpl(t)
	a := atom.New(0)

	err := d.RestoreAtoms(Values(Pair{Atom: a, Value: 1}, Pair{Atom: a, Value: 2}))
	require.NoError(t, err)

	v, _ := d.Get(a)
	assert.Equal(t, 2, v)
}

func TestRestoreConsumesValuesOnce(t *testing.T) {
	d := newDevStoreImpl(t)
	a := atom.New(0)
	iterations := 0
	var values iter.Seq2[*atom.Atom, any] = func(yield func(*atom.Atom, any) bool) {
		iterations++
		yield(a, 1)
	}

	require.NoError(t, d.RestoreAtoms(values))
	assert.Equal(t, 1, iterations)
}

func TestRestoreCounterBalancedOnPanic(t *testing.T) {
	d := newDevStoreImpl(t)
	var log []any
	x := loggingAtom(0, &log)
	var values iter.Seq2[*atom.Atom, any] = func(yield func(*atom.Atom, any) bool) {
		if !yield(x, 1) {
			return
		}
		panic("broken input")
	}

	assert.Panics(t, func() { _ = d.RestoreAtoms(values) })
	assert.Equal(t, 0, d.inRestore)

	// the bypass must not leak into later writes
	_, err := d.Set(x, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{2}, log)
}

func TestNestedRestoreFails(t *testing.T) {
	d := newDevStoreImpl(t)
	var log []any
	a := loggingAtom(0, &log)
	b := atom.New(0)
	failed := restoreFailed.Get()

	var inner error
	innerCounter := -1
	var values iter.Seq2[*atom.Atom, any] = func(yield func(*atom.Atom, any) bool) {
		if !yield(a, 1) {
			return
		}
		inner = d.RestoreAtoms(Values(Pair{Atom: b, Value: 2}))
		innerCounter = d.inRestore
	}

	require.NoError(t, d.RestoreAtoms(values))
	assert.True(t, errors.Is(inner, atom.ErrNotWritable), "got %v", inner)
	assert.Equal(t, 1, innerCounter, "the failed inner restore must leave the outer count alone")
	assert.Equal(t, 0, d.inRestore)
	assert.Equal(t, failed+1, restoreFailed.Get())

	// the pair before the failure stays applied, the inner pair never ran
	va, _ := d.Get(a)
	vb, _ := d.Get(b)
	assert.Equal(t, 1, va)
	assert.Equal(t, 0, vb)
	assert.Empty(t, log)

	// custom writes work again afterwards
	_, err := d.Set(a, 5)
	require.NoError(t, err)
	assert.Equal(t, []any{5}, log)
}

func TestSequentialRestoresLeaveCounterAtZero(t *testing.T) {
	d := newDevStoreImpl(t)
	a := atom.New(0)
	for i := 1; i <= 3; i++ {
		require.NoError(t, d.RestoreAtoms(Values(Pair{Atom: a, Value: i})))
		assert.Equal(t, 0, d.inRestore)
	}
	v, _ := d.Get(a)
	assert.Equal(t, 3, v)
}

func TestWriteHookBypassWhileRestoring(t *testing.T) {
	d := newDevStoreImpl(t)
	var log []any
	x := loggingAtom(0, &log)

	d.inRestore++
	_, err := d.Set(x, 8)
	d.inRestore--
	require.NoError(t, err)
	assert.Empty(t, log)

	v, _ := d.Get(x)
	assert.Equal(t, 8, v)
}

func TestRestoreNotifiesListenersOnce(t *testing.T) {
	d := newDevStoreImpl(t)
	a, b := atom.New(0), atom.New(0)
	both := atom.Derived(func(get atom.Getter) (any, error) {
		va, err := atom.As[int](get(a))
		if err != nil {
			return nil, err
		}
		vb, err := atom.As[int](get(b))
		return va + vb, err
	})

	notified := 0
	unsub := d.Sub(both, func() { notified++ })
	defer unsub()

	require.NoError(t, d.RestoreAtoms(Values(Pair{Atom: a, Value: 1}, Pair{Atom: b, Value: 2})))
	assert.Equal(t, 1, notified)

	v, _ := d.Get(both)
	assert.Equal(t, 3, v)
}

func TestRestoreMetrics(t *testing.T) {
	d := newDevStoreImpl(t)
	total, skipped := restoreTotal.Get(), restoreSkipped.Get()

	derived := atom.Derived(func(atom.Getter) (any, error) { return 0, nil })
	require.NoError(t, d.RestoreAtoms(Values(Pair{Atom: atom.New(0), Value: 1}, Pair{Atom: derived, Value: 1})))

	assert.Equal(t, total+1, restoreTotal.Get())
	assert.Equal(t, skipped+1, restoreSkipped.Get())
	assert.GreaterOrEqual(t, restoreSizes.Count(), int64(1))

	var out strings.Builder
	require.NoError(t, WriteMetrics(&out))
	assert.Contains(t, out.String(), "atomstore_restore_total")
	assert.Contains(t, out.String(), `atomstore_restore_size{quantile="0.5"}`)
	assert.Contains(t, out.String(), "atomstore_restore_size_count")
}

func TestMountedAtomsFollowSubscriptions(t *testing.T) {
	d := newDevStoreImpl(t)
	count := atom.New(1)
	doubled := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(count))
		return v * 2, err
	})

	mounted := d.MountedAtoms()
	assert.Equal(t, 0, mounted.Len())

	unsub := d.Sub(doubled, func() {})
	assert.True(t, mounted.Has(doubled), "set must be live")
	assert.True(t, mounted.Has(count))
	assert.Equal(t, 2, mounted.Len())

	var seen []*atom.Atom
	for a := range mounted.All() {
		seen = append(seen, a)
	}
	assert.ElementsMatch(t, []*atom.Atom{count, doubled}, seen)

	unsub()
	assert.False(t, mounted.Has(doubled))
	assert.False(t, mounted.Has(count))
	assert.Equal(t, 0, mounted.Len())
}
