package testing

import (
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/ValentinKolb/atomstore/lib/store"
	"testing"
)

// RunStoreBenchmarks runs all benchmarks for a store variant
func RunStoreBenchmarks(b *testing.B, name string, factory StoreFactory) {

	b.Run(name+"/Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run(name+"/Set", func(b *testing.B) {
		benchmarkSet(b, factory())
	})

	b.Run(name+"/SetSubscribed", func(b *testing.B) {
		benchmarkSetSubscribed(b, factory())
	})

	b.Run(name+"/SubUnsub", func(b *testing.B) {
		benchmarkSubUnsub(b, factory())
	})

	b.Run(name+"/Restore", func(b *testing.B) {
		benchmarkRestore(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// chain creates a derived chain of the given length on top of base
func chain(base *atom.Atom, length int) *atom.Atom {
	last := base
	for i := 0; i < length; i++ {
		prev := last
		last = atom.Derived(func(get atom.Getter) (any, error) {
			v, err := atom.As[int](get(prev))
			return v + 1, err
		})
	}
	return last
}

func benchmarkGet(b *testing.B, s store.IStore) {
	top := chain(atom.New(0), 10)
	_, _ = s.Get(top)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Get(top)
	}
}

func benchmarkSet(b *testing.B, s store.IStore) {
	count := atom.New(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Set(count, i)
	}
}

func benchmarkSetSubscribed(b *testing.B, s store.IStore) {
	base := atom.New(0)
	unsub := s.Sub(chain(base, 10), func() {})
	defer unsub()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Set(base, i)
	}
}

func benchmarkSubUnsub(b *testing.B, s store.IStore) {
	top := chain(atom.New(0), 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sub(top, func() {})()
	}
}

// benchmarkRestore restores 100 atoms per iteration; plain stores are skipped
func benchmarkRestore(b *testing.B, s store.IStore) {
	dev, ok := s.(store.IDevStore)
	if !ok {
		b.Skip("store variant cannot restore")
	}

	pairs := make([]store.Pair, 100)
	for i := range pairs {
		pairs[i] = store.Pair{Atom: atom.New(0), Value: i}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := dev.RestoreAtoms(store.Values(pairs...)); err != nil {
			b.Fatal(err)
		}
	}
}
