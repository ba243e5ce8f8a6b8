package atom

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrNotWritable is returned when writing an atom that has no write operation,
	// or when assigning a value directly to an atom without a default value.
	ErrNotWritable = errors.New("atom: not writable")
	// ErrNoDefault is returned when an atom reads its own value but carries no default.
	ErrNoDefault = errors.New("atom: no default value")
)

// keyCount backs the generated labels of unnamed atoms.
var keyCount atomic.Uint64

// --------------------------------------------------------------------------
// Function Types
// --------------------------------------------------------------------------

// Getter reads the current value of an atom. Inside a read operation every call
// registers the atom as a dependency.
type Getter func(a *Atom) (value any, err error)

// Setter writes to an atom. Targeting the atom whose write is running assigns the
// value directly, any other atom goes through its own write operation.
type Setter func(a *Atom, args ...any) (result any, err error)

// SetSelf writes to the atom a mount hook was registered for.
type SetSelf func(args ...any) (result any, err error)

// Listener is called after a subscribed atom changed.
type Listener func()

// Update can be passed as the single argument when setting a primitive atom.
// It receives the previous value and returns the next one.
type Update func(prev any) any

type (
	ReadFunc  func(get Getter) (any, error)
	WriteFunc func(get Getter, set Setter, args ...any) (any, error)
	InitFunc  func(s Store)
	MountFunc func(set SetSelf) (onUnmount func())
)

// Store is the contract every store exposes to callers and to init hooks.
type Store interface {
	// Get returns the current value of an atom, computing it if required.
	Get(a *Atom) (value any, err error)
	// Set runs the write operation of an atom with the given arguments.
	Set(a *Atom, args ...any) (result any, err error)
	// Sub subscribes a listener to an atom. The returned function removes it again.
	Sub(a *Atom, listener Listener) (unsubscribe func())
}

// --------------------------------------------------------------------------
// Atom
// --------------------------------------------------------------------------

// Atom is an identity-addressed state descriptor. Two atoms are the same atom only
// if they are the same pointer; the fields never take part in comparisons.
type Atom struct {
	// key is the generated "atom<N>" name, assigned on construction
	key     string
	label   string
	read    ReadFunc
	write   WriteFunc
	onInit  InitFunc
	onMount MountFunc
	init    any
	hasInit bool
}

// Option configures an atom on construction.
type Option func(a *Atom)

// WithLabel sets the debug label returned by String.
func WithLabel(label string) Option {
	return func(a *Atom) {
		a.label = label
	}
}

// WithWrite replaces the write operation of the atom.
func WithWrite(write WriteFunc) Option {
	return func(a *Atom) {
		a.write = write
	}
}

// WithOnInit registers a hook called once per store when the atom's state is created.
func WithOnInit(fn InitFunc) Option {
	return func(a *Atom) {
		a.onInit = fn
	}
}

// WithOnMount registers a hook called when the atom gets its first subscriber in a store.
// The returned function, if any, is called on unmount.
func WithOnMount(fn MountFunc) Option {
	return func(a *Atom) {
		a.onMount = fn
	}
}

// New creates a primitive atom holding initial as its default value.
func New(initial any, opts ...Option) *Atom {
	a := &Atom{key: nextKey(), init: initial, hasInit: true}
	a.read = func(get Getter) (any, error) {
		return get(a)
	}
	a.write = func(get Getter, set Setter, args ...any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s needs a value", ErrNotWritable, a)
		}
		next := args[0]
		if update, ok := next.(Update); ok {
			prev, err := get(a)
			if err != nil {
				return nil, err
			}
			next = update(prev)
		}
		return set(a, next)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Derived creates an atom without a default value whose value is computed by read.
// It is read-only unless WithWrite is given.
func Derived(read ReadFunc, opts ...Option) *Atom {
	a := &Atom{key: nextKey(), read: read}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HasDefault reports whether the atom carries a default value. Only these atoms
// accept direct value assignment.
func (a *Atom) HasDefault() bool {
	return a.hasInit
}

// Default returns the default value and whether one exists.
func (a *Atom) Default() (any, bool) {
	return a.init, a.hasInit
}

// Label returns the label set with WithLabel.
func (a *Atom) Label() string {
	return a.label
}

// Key returns the name generated for the atom on construction.
func (a *Atom) Key() string {
	return a.key
}

// String returns the label, or the generated key for unnamed atoms.
func (a *Atom) String() string {
	if a.label == "" {
		return a.key
	}
	return a.label
}

func nextKey() string {
	return fmt.Sprintf("atom%d", keyCount.Add(1))
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// Read runs the atom's read operation.
func (a *Atom) Read(get Getter) (any, error) {
	return a.read(get)
}

// Write runs the atom's write operation. Read-only atoms return ErrNotWritable.
func (a *Atom) Write(get Getter, set Setter, args ...any) (any, error) {
	if a.write == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotWritable, a)
	}
	return a.write(get, set, args...)
}

// Writable reports whether the atom has a write operation.
func (a *Atom) Writable() bool {
	return a.write != nil
}

// Init runs the init hook if there is one.
func (a *Atom) Init(s Store) {
	if a.onInit != nil {
		a.onInit(s)
	}
}

// Mount runs the mount hook if there is one and returns its cleanup (possibly nil).
func (a *Atom) Mount(set SetSelf) func() {
	if a.onMount == nil {
		return nil
	}
	return a.onMount(set)
}

// As converts the result of Get or Set into V. A nil value yields the zero value of V.
func As[V any](value any, err error) (V, error) {
	var zero V
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	v, ok := value.(V)
	if !ok {
		return zero, fmt.Errorf("atom: value of type %T is not a %T", value, zero)
	}
	return v, nil
}
