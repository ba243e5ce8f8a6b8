package testing

import (
	"errors"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/store"
	"testing"
)

// StoreFactory is a function that creates a new, empty store
type StoreFactory func() store.IStore

// RunStoreTests runs the behavior every store variant has to share.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Get&Set", func(t *testing.T) {
			testGetSet(t, factory())
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, factory())
		})

		t.Run("Derived", func(t *testing.T) {
			testDerived(t, factory())
		})

		t.Run("ReadOnly", func(t *testing.T) {
			testReadOnly(t, factory())
		})

		t.Run("Errors", func(t *testing.T) {
			testErrors(t, factory())
		})

		t.Run("Subscribe", func(t *testing.T) {
			testSubscribe(t, factory())
		})

		t.Run("Diamond", func(t *testing.T) {
			testDiamond(t, factory())
		})

		t.Run("Lifecycle", func(t *testing.T) {
			testLifecycle(t, factory())
		})

		t.Run("Isolation", func(t *testing.T) {
			testIsolation(t, factory)
		})
	})
}

func testGetSet(t *testing.T, s store.IStore) {
	count := atom.New(1)

	v, err := s.Get(count)
	if err != nil || v != 1 {
		t.Errorf("Expected initial value 1, got %v (err %v)", v, err)
	}

	if _, err := s.Set(count, 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, _ = s.Get(count)
	if v != 2 {
		t.Errorf("Expected value 2 after Set, got %v", v)
	}

	if s.ID() == "" {
		t.Errorf("Expected store to have an ID")
	}
}

func testUpdate(t *testing.T, s store.IStore) {
	count := atom.New(10)

	if _, err := s.Set(count, atom.Update(func(prev any) any { return prev.(int) + 5 })); err != nil {
		t.Fatalf("Set with update failed: %v", err)
	}

	v, _ := s.Get(count)
	if v != 15 {
		t.Errorf("Expected updated value 15, got %v", v)
	}
}

func testDerived(t *testing.T, s store.IStore) {
	count := atom.New(2)
	calls := 0
	square := atom.Derived(func(get atom.Getter) (any, error) {
		calls++
		v, err := atom.As[int](get(count))
		return v * v, err
	})

	v, _ := s.Get(square)
	if v != 4 {
		t.Errorf("Expected derived value 4, got %v", v)
	}

	_, _ = s.Get(square)
	if calls != 1 {
		t.Errorf("Expected derived atom to be computed once, got %d", calls)
	}

	_, _ = s.Set(count, 3)
	v, _ = s.Get(square)
	if v != 9 {
		t.Errorf("Expected derived value 9 after dependency change, got %v", v)
	}
	if calls != 2 {
		t.Errorf("Expected derived atom to be recomputed once, got %d", calls)
	}
}

func testReadOnly(t *testing.T, s store.IStore) {
	readOnly := atom.Derived(func(atom.Getter) (any, error) { return 1, nil })

	_, err := s.Set(readOnly, 2)
	if !errors.Is(err, atom.ErrNotWritable) {
		t.Errorf("Expected ErrNotWritable, got %v", err)
	}
}

func testErrors(t *testing.T, s store.IStore) {
	failure := errors.New("failure")
	broken := atom.Derived(func(atom.Getter) (any, error) { return nil, failure })
	dependent := atom.Derived(func(get atom.Getter) (any, error) {
		return get(broken)
	})

	if _, err := s.Get(dependent); !errors.Is(err, failure) {
		t.Errorf("Expected error to propagate to dependents, got %v", err)
	}
}

func testSubscribe(t *testing.T, s store.IStore) {
	count := atom.New(0)
	parity := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(count))
		return v % 2, err
	})

	countCalls, parityCalls := 0, 0
	unsubCount := s.Sub(count, func() { countCalls++ })
	unsubParity := s.Sub(parity, func() { parityCalls++ })

	_, _ = s.Set(count, 1)
	if countCalls != 1 || parityCalls != 1 {
		t.Errorf("Expected one notification each, got count=%d parity=%d", countCalls, parityCalls)
	}

	// parity does not change
	_, _ = s.Set(count, 3)
	if countCalls != 2 || parityCalls != 1 {
		t.Errorf("Expected only count to be notified, got count=%d parity=%d", countCalls, parityCalls)
	}

	// same value, no change
	_, _ = s.Set(count, 3)
	if countCalls != 2 {
		t.Errorf("Expected no notification for an unchanged value, got %d", countCalls)
	}

	unsubCount()
	unsubCount()
	_, _ = s.Set(count, 4)
	if countCalls != 2 {
		t.Errorf("Expected no notification after unsubscribe, got %d", countCalls)
	}
	if parityCalls != 2 {
		t.Errorf("Expected remaining subscriber to be notified, got %d", parityCalls)
	}
	unsubParity()
}

func testDiamond(t *testing.T, s store.IStore) {
	base := atom.New(1)
	left := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(base))
		return v + 1, err
	})
	right := atom.Derived(func(get atom.Getter) (any, error) {
		v, err := atom.As[int](get(base))
		return v * 2, err
	})
	computed := 0
	sum := atom.Derived(func(get atom.Getter) (any, error) {
		computed++
		l, err := atom.As[int](get(left))
		if err != nil {
			return nil, err
		}
		r, err := atom.As[int](get(right))
		return l + r, err
	})

	notified := 0
	unsub := s.Sub(sum, func() { notified++ })
	defer unsub()

	computed = 0
	_, _ = s.Set(base, 5)
	if computed != 1 {
		t.Errorf("Expected sum to be computed once per write, got %d", computed)
	}
	if notified != 1 {
		t.Errorf("Expected one notification, got %d", notified)
	}

	v, _ := s.Get(sum)
	if v != 16 {
		t.Errorf("Expected sum 16, got %v", v)
	}
}

func testLifecycle(t *testing.T, s store.IStore) {
	inits, mounts, unmounts := 0, 0, 0
	ticker := atom.New(0,
		atom.WithOnInit(func(atom.Store) { inits++ }),
		atom.WithOnMount(func(set atom.SetSelf) func() {
			mounts++
			_, _ = set(100)
			return func() { unmounts++ }
		}),
	)

	_, _ = s.Get(ticker)
	_, _ = s.Get(ticker)
	if inits != 1 {
		t.Errorf("Expected one init per store, got %d", inits)
	}

	unsub := s.Sub(ticker, func() {})
	if mounts != 1 {
		t.Errorf("Expected one mount, got %d", mounts)
	}
	if v, _ := s.Get(ticker); v != 100 {
		t.Errorf("Expected value written on mount, got %v", v)
	}

	unsub()
	if unmounts != 1 {
		t.Errorf("Expected one unmount, got %d", unmounts)
	}
}

func testIsolation(t *testing.T, factory StoreFactory) {
	count := atom.New(0)
	s1, s2 := factory(), factory()

	_, _ = s1.Set(count, 1)
	if v, _ := s2.Get(count); v != 0 {
		t.Errorf("Expected second store to be unaffected, got %v", v)
	}
	if s1.ID() == s2.ID() {
		t.Errorf("Expected distinct store IDs")
	}
}
