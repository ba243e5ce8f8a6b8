package store

import (
	"expvar"
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"strconv"
	"sync"
)

// DefaultStoreKey is the process-wide name under which the default store is published
// in development mode.
const DefaultStoreKey = "__ATOMSTORE_DEFAULT_STORE__"

var (
	defaultOnce  sync.Once
	defaultStore IStore

	registryMu sync.Mutex
	registry   Registry = ExpvarRegistry{}

	// warnf reports a duplicate default store
	warnf = log.Warningf
)

// GetDefaultStore returns the store shared by the whole process. The first call
// creates it; every later call returns the same instance.
//
// In development mode the store is also published in the diagnostic registry. If
// the registry holds a different store (another copy of this module in the same
// binary got there first) a warning is logged. The check never changes the result.
func GetDefaultStore() IStore {
	defaultOnce.Do(func() {
		defaultStore = CreateStore()
	})
	if !mode.IsProduction() {
		checkDefaultStore(defaultStore)
	}
	return defaultStore
}

// --------------------------------------------------------------------------
// Diagnostic Registry
// --------------------------------------------------------------------------

// Registry is a process-wide slot table visible to every copy of this module
// linked into a binary. It is only used to detect duplicate default stores.
type Registry interface {
	// Lookup returns the value published under key or nil.
	Lookup(key string) any
	// Publish stores value under key. Implementations may ignore it if the key is taken.
	Publish(key string, value any)
}

// SetRegistry replaces the diagnostic registry. A nil registry disables the check.
func SetRegistry(r Registry) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = r
}

func currentRegistry() Registry {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry
}

// checkDefaultStore publishes s if the slot is empty and warns if it holds another value.
// A failing registry is logged and otherwise ignored.
func checkDefaultStore(s IStore) {
	r := currentRegistry()
	if r == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Debugf("default store check skipped: %v", rec)
		}
	}()

	if r.Lookup(DefaultStoreKey) == nil {
		r.Publish(DefaultStoreKey, s)
	}
	if current := r.Lookup(DefaultStoreKey); current != any(s) {
		defaultStoreMismatch.Inc()
		warnf("Detected multiple atomstore instances. It may cause unexpected behavior with the default store.")
	}
}

// ExpvarRegistry publishes the default store as an expvar variable. expvar is part
// of the standard library, so all copies of this module share it.
//
// Importing expvar registers the /debug/vars handler on http.DefaultServeMux. A
// program that serves the default mux therefore exposes the id of the default
// store under DefaultStoreKey in development mode. Call SetRegistry(nil) or install
// another Registry before the first GetDefaultStore call to avoid publishing it.
type ExpvarRegistry struct{}

// storeVar is the expvar.Var holding a store. It renders as the store id.
type storeVar struct {
	store IStore
}

func (v *storeVar) String() string {
	return strconv.Quote(v.store.ID())
}

func (ExpvarRegistry) Lookup(key string) any {
	v := expvar.Get(key)
	if v == nil {
		return nil
	}
	if sv, ok := v.(*storeVar); ok {
		return sv.store
	}
	return v
}

func (ExpvarRegistry) Publish(key string, value any) {
	s, ok := value.(IStore)
	if !ok {
		panic(fmt.Sprintf("expvar registry: %T is not a store", value))
	}
	// expvar.Publish panics if the name is taken; that is left to the caller's recover
	expvar.Publish(key, &storeVar{store: s})
}
