package engine

import (
	"errors"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// newTestStore builds an engine store backed by a plain map.
func newTestStore() (*Store, map[*atom.Atom]*AtomState) {
	states := make(map[*atom.Atom]*AtomState)
	s := BuildStore(
		func(a *atom.Atom) *AtomState { return states[a] },
		func(a *atom.Atom, st *AtomState) *AtomState {
			states[a] = st
			return states[a]
		},
		func(a *atom.Atom, get atom.Getter) (any, error) { return a.Read(get) },
		func(a *atom.Atom, get atom.Getter, set atom.Setter, args ...any) (any, error) {
			return a.Write(get, set, args...)
		},
		func(a *atom.Atom, st atom.Store) { a.Init(st) },
		func(a *atom.Atom, set atom.SetSelf) func() { return a.Mount(set) },
	)
	return s, states
}

func double(src *atom.Atom, calls *int) *atom.Atom {
	return atom.Derived(func(get atom.Getter) (any, error) {
		*calls++
		v, err := atom.As[int](get(src))
		return v * 2, err
	})
}

func TestGetReturnsDefault(t *testing.T) {
	s, states := newTestStore()
	count := atom.New(5)

	v, err := s.Get(count)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Len(t, states, 1)
}

func TestSetPrimitiveAndUpdate(t *testing.T) {
	s, _ := newTestStore()
	count := atom.New(1)

	_, err := s.Set(count, 10)
	require.NoError(t, err)
	_, err = s.Set(count, atom.Update(func(prev any) any { return prev.(int) + 1 }))
	require.NoError(t, err)

	v, err := s.Get(count)
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}

func TestDerivedIsCachedUntilDependencyChanges(t *testing.T) {
	s, _ := newTestStore()
	count := atom.New(2)
	calls := 0
	doubled := double(count, &calls)

	v, err := s.Get(doubled)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	_, _ = s.Get(doubled)
	assert.Equal(t, 1, calls)

	_, err = s.Set(count, 3)
	require.NoError(t, err)
	v, _ = s.Get(doubled)
	assert.Equal(t, 6, v)
	assert.Equal(t, 2, calls)
}

func TestSetReadOnlyAtomFails(t *testing.T) {
	s, _ := newTestStore()
	ro := atom.Derived(func(get atom.Getter) (any, error) { return 1, nil })

	_, err := s.Set(ro, 2)
	assert.ErrorIs(t, err, atom.ErrNotWritable)
}

func TestDirectSetOnDerivedFails(t *testing.T) {
	s, _ := newTestStore()
	var self *atom.Atom
	self = atom.Derived(
		func(get atom.Getter) (any, error) { return 0, nil },
		atom.WithWrite(func(get atom.Getter, set atom.Setter, args ...any) (any, error) {
			return set(self, args...)
		}),
	)

	_, err := s.Set(self, 1)
	assert.ErrorIs(t, err, atom.ErrNotWritable)
}

func TestReadErrorPropagates(t *testing.T) {
	s, _ := newTestStore()
	boom := errors.New("boom")
	failing := atom.Derived(func(get atom.Getter) (any, error) { return nil, boom })

	_, err := s.Get(failing)
	assert.ErrorIs(t, err, boom)
}

func TestSubNotifiesOnDependencyChange(t *testing.T) {
	s, _ := newTestStore()
	count := atom.New(1)
	calls := 0
	doubled := double(count, &calls)

	notified := 0
	unsub := s.Sub(doubled, func() { notified++ })

	_, _ = s.Set(count, 2)
	assert.Equal(t, 1, notified)

	// same value, no notification
	_, _ = s.Set(count, 2)
	assert.Equal(t, 1, notified)

	unsub()
	_, _ = s.Set(count, 3)
	assert.Equal(t, 1, notified)
}

func TestMountObserverSeesTransitions(t *testing.T) {
	s, _ := newTestStore()
	count := atom.New(1)
	calls := 0
	doubled := double(count, &calls)

	var events []string
	s.Hooks().Observe(MountObserverFuncs{
		Mount:   func(a *atom.Atom) { events = append(events, "mount:"+a.String()) },
		Unmount: func(a *atom.Atom) { events = append(events, "unmount:"+a.String()) },
	})

	unsub := s.Sub(doubled, func() {})
	assert.ElementsMatch(t, []string{"mount:" + count.String(), "mount:" + doubled.String()}, events)

	events = nil
	unsub()
	assert.Equal(t, []string{"unmount:" + doubled.String(), "unmount:" + count.String()}, events)
}

func TestObserveReplacesPreviousObserver(t *testing.T) {
	s, _ := newTestStore()
	first, second := 0, 0
	s.Hooks().Observe(MountObserverFuncs{Mount: func(*atom.Atom) { first++ }})
	s.Hooks().Observe(MountObserverFuncs{Mount: func(*atom.Atom) { second++ }})

	s.Sub(atom.New(0), func() {})
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestOnMountAndOnUnmount(t *testing.T) {
	s, _ := newTestStore()
	unmounted := false
	count := atom.New(0, atom.WithOnMount(func(set atom.SetSelf) func() {
		_, _ = set(7)
		return func() { unmounted = true }
	}))

	notified := 0
	unsub := s.Sub(count, func() { notified++ })
	v, _ := s.Get(count)
	assert.Equal(t, 7, v)

	unsub()
	assert.True(t, unmounted)
}

func TestOnInitRunsOncePerStore(t *testing.T) {
	inits := 0
	count := atom.New(0, atom.WithOnInit(func(atom.Store) { inits++ }))

	s1, _ := newTestStore()
	s2, _ := newTestStore()
	_, _ = s1.Get(count)
	_, _ = s1.Set(count, 1)
	_, _ = s2.Get(count)
	assert.Equal(t, 2, inits)
}

func TestDynamicDependenciesAreRemounted(t *testing.T) {
	s, _ := newTestStore()
	useA := atom.New(true)
	a := atom.New("a")
	b := atom.New("b")
	pick := atom.Derived(func(get atom.Getter) (any, error) {
		flag, err := atom.As[bool](get(useA))
		if err != nil {
			return nil, err
		}
		if flag {
			return get(a)
		}
		return get(b)
	})

	mountedAtoms := map[*atom.Atom]bool{}
	s.Hooks().Observe(MountObserverFuncs{
		Mount:   func(x *atom.Atom) { mountedAtoms[x] = true },
		Unmount: func(x *atom.Atom) { delete(mountedAtoms, x) },
	})

	s.Sub(pick, func() {})
	assert.True(t, mountedAtoms[a])
	assert.False(t, mountedAtoms[b])

	_, _ = s.Set(useA, false)
	assert.False(t, mountedAtoms[a])
	assert.True(t, mountedAtoms[b])

	notified := 0
	s.Sub(b, func() { notified++ })
	_, _ = s.Set(b, "bb")
	v, _ := s.Get(pick)
	assert.Equal(t, "bb", v)
	assert.Equal(t, 1, notified)
}

func TestListenerWritesAreFlushed(t *testing.T) {
	s, _ := newTestStore()
	src := atom.New(0)
	mirror := atom.New(0)

	s.Sub(src, func() {
		v, _ := s.Get(src)
		_, _ = s.Set(mirror, v)
	})
	mirrored := 0
	s.Sub(mirror, func() { mirrored++ })

	_, _ = s.Set(src, 4)
	v, _ := s.Get(mirror)
	assert.Equal(t, 4, v)
	assert.Equal(t, 1, mirrored)
}

func TestSameValue(t *testing.T) {
	assert.True(t, sameValue(nil, nil))
	assert.True(t, sameValue(1, 1))
	assert.False(t, sameValue(1, int64(1)))
	assert.False(t, sameValue([]int{1}, []int{1}))
	assert.False(t, sameValue(nil, 0))
}
