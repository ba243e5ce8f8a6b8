package store

import (
	"github.com/ValentinKolb/atomstore/lib/engine"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("store")

// storeImpl is the plain store: an engine whose bindings call the atom's own
// operations without any instrumentation.
type storeImpl struct {
	*engine.Store
	id    string
	cache *stateCache
}

// NewStore creates a plain store.
func NewStore() IStore {
	s := &storeImpl{
		id:    uuid.NewString(),
		cache: newStateCache(),
	}
	s.Store = buildEngine(s.cache, writeAtom)
	storesCreatedPlain.Inc()
	log.Debugf("created store %s", s.id)
	return s
}

func (s *storeImpl) ID() string {
	return s.id
}

// CreateStore creates the instrumented store (IDevStore) in development mode and
// the plain store in production mode. The choice is fixed for the store's lifetime.
func CreateStore() IStore {
	if !mode.IsProduction() {
		return NewDevStore()
	}
	return NewStore()
}
