// Package atom defines the state descriptors held by a store.
//
// An atom is identified by its pointer. It carries a read operation, an optional
// write operation, optional init and mount hooks and, for primitive atoms, a
// default value. Atoms never hold state themselves; every store keeps its own
// state per atom.
//
// Two kinds of atoms exist:
//
//   - Primitive atoms (New) carry a default value and accept direct assignment.
//   - Derived atoms (Derived) compute their value from other atoms. They are
//     read-only unless a write operation is supplied with WithWrite.
//
// Usage Example:
//
//	count := atom.New(0, atom.WithLabel("count"))
//	doubled := atom.Derived(func(get atom.Getter) (any, error) {
//		v, err := atom.As[int](get(count))
//		return v * 2, err
//	})
package atom
