package store_test

import (
	"github.com/ValentinKolb/atomstore/lib/store"
	storetesting "github.com/ValentinKolb/atomstore/lib/store/testing"
	"testing"
)

func Test(t *testing.T) {
	storetesting.RunStoreTests(t, "Store", store.NewStore)
	storetesting.RunStoreTests(t, "DevStore", func() store.IStore {
		return store.NewDevStore()
	})
}

func Benchmark(b *testing.B) {
	storetesting.RunStoreBenchmarks(b, "Store", store.NewStore)
	storetesting.RunStoreBenchmarks(b, "DevStore", func() store.IStore {
		return store.NewDevStore()
	})
}
