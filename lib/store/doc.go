// Package store assembles stores out of the dependency graph engine and manages
// their lifecycle. It owns the per-store state cache, the bindings handed to the
// engine, the instrumented development variant and the process-wide default store.
//
// Key Components:
//
//   - IStore Interface: Get, Set and Sub. Both variants implement it identically,
//     so callers never need to know which one they hold.
//
//   - State Cache: every store keeps the engine's AtomState per atom in its own
//     cache. Keys are weak pointers to the atom; the cache never extends the
//     lifetime of an atom and drops the entry once the atom is collected.
//
//   - IDevStore Interface: the instrumented variant additionally exposes the
//     state cache (read-only), the live set of mounted atoms and RestoreAtoms.
//
//   - CreateStore: returns the instrumented store unless the process runs in
//     production mode (see package mode), the plain store otherwise.
//
//   - GetDefaultStore: a lazily created store shared by the whole process.
//
// Restore Transactions:
//
//	RestoreAtoms writes a batch of values through one synthetic atom whose write
//	operation sets every restored atom. This way the batch runs as a single engine
//	write and listeners fire once through the usual mechanism. While it runs, a
//	per-store counter makes the write binding assign values directly instead of
//	calling the atoms' own write operations. The counter is decremented on every
//	exit path, including errors and panics. Atoms without a default value cannot be
//	assigned and are skipped silently.
//
//	Any write issued while a restore is in progress is affected, including writes
//	to atoms that are not part of the batch.
//
// Default Store Diagnostics:
//
//	In development mode GetDefaultStore publishes its store in a Registry (expvar
//	by default) under DefaultStoreKey and logs a warning whenever the registry holds
//	a different store. This happens when two copies of this module end up in one
//	binary. The check is best effort: a missing or failing registry is ignored.
//
//	This package imports expvar, which registers /debug/vars on
//	http.DefaultServeMux. Programs serving the default mux expose the default
//	store id there; use SetRegistry to publish elsewhere or to turn the check off.
//
// Usage Example:
//
//	s := store.CreateStore()
//	count := atom.New(0)
//	unsub := s.Sub(count, func() { fmt.Println("changed") })
//	defer unsub()
//	_, _ = s.Set(count, 1)
//
//	if dev, ok := s.(store.IDevStore); ok {
//		_ = dev.RestoreAtoms(store.Values(store.Pair{Atom: count, Value: 42}))
//	}
//
// Thread Safety:
//
//	Stores are not safe for concurrent use. All operations run synchronously on
//	the calling goroutine; reentrant calls from atom callbacks and listeners are
//	supported. GetDefaultStore itself may be called from any goroutine.
package store
