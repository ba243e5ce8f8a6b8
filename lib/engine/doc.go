// Package engine implements the dependency graph behind a store: it computes atom
// values, tracks which atoms were read while computing another one, keeps mounted
// atoms up to date and calls listeners after writes.
//
// The engine owns no state of its own. BuildStore receives six bindings, in this
// order:
//
//  1. state getter: returns the cached AtomState of an atom (or nil)
//  2. state setter: stores an AtomState and returns it
//  3. read: computes the value of an atom
//  4. write: runs the write operation of an atom
//  5. init: called once per atom when its state is created
//  6. mount: called when an atom gets mounted, returns an optional cleanup
//
// Everything that should differ between store flavours (where state lives, how
// writes are routed) is decided by the caller through these bindings.
//
// Change Propagation:
//
//	Every AtomState carries an epoch that is bumped when its value changes, and
//	records the epoch of each dependency read during its last computation. A read
//	revalidates the recorded epochs and recomputes only when one of them moved.
//	After the outermost Set (or Sub) returns, the engine recomputes the mounted
//	dependents of every changed atom in topological order and calls the listeners
//	of all mounted atoms whose value changed.
//
// Mount Notifications:
//
//	Store.Hooks returns the StoreHooks of a store. StoreHooks has a single
//	MountObserver slot; Observe replaces whatever was installed before.
//
// Thread Safety:
//
//	A Store is not safe for concurrent use. All operations, including listener
//	calls, run synchronously on the calling goroutine. Reentrant calls from read,
//	write, listener and mount callbacks are supported.
package engine
