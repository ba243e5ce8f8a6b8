package util

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/atom"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"strings"
)

var log = logger.GetLogger("cli")

// Demo is the atom graph the CLI commands operate on.
type Demo struct {
	Count    *atom.Atom // primitive, 0
	Step     *atom.Atom // primitive, 1
	Total    *atom.Atom // derived: count * step
	Greeting *atom.Atom // primitive, "hello"
	Shout    *atom.Atom // derived, writable: upper case greeting; writes go to greeting
}

// NewDemo creates a fresh demo graph.
func NewDemo() *Demo {
	d := &Demo{
		Count:    atom.New(0, atom.WithLabel("count")),
		Step:     atom.New(1, atom.WithLabel("step")),
		Greeting: atom.New("hello", atom.WithLabel("greeting")),
	}
	d.Total = atom.Derived(func(get atom.Getter) (any, error) {
		count, err := toInt(get(d.Count))
		if err != nil {
			return nil, err
		}
		step, err := toInt(get(d.Step))
		return count * step, err
	}, atom.WithLabel("total"))
	d.Shout = atom.Derived(func(get atom.Getter) (any, error) {
		greeting, err := atom.As[string](get(d.Greeting))
		return strings.ToUpper(greeting), err
	}, atom.WithLabel("shout"), atom.WithWrite(func(get atom.Getter, set atom.Setter, args ...any) (any, error) {
		return set(d.Greeting, args...)
	}))
	return d
}

// Atoms returns all atoms of the graph.
func (d *Demo) Atoms() []*atom.Atom {
	return []*atom.Atom{d.Count, d.Step, d.Total, d.Greeting, d.Shout}
}

// Roots returns the atoms that mount the whole graph when subscribed.
func (d *Demo) Roots() []*atom.Atom {
	return []*atom.Atom{d.Total, d.Shout}
}

// Find returns the atom with the given label.
func (d *Demo) Find(label string) (*atom.Atom, bool) {
	for _, a := range d.Atoms() {
		if a.String() == label {
			return a, true
		}
	}
	return nil, false
}

// toInt accepts the number types produced by the snapshot decoders.
func toInt(v any, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return atom.As[int](v, nil)
	}
}

// PrintValues writes "label = value" for each atom, reading through s.
func PrintValues(w io.Writer, s atom.Store, atoms []*atom.Atom) error {
	for _, a := range atoms {
		v, err := s.Get(a)
		if err != nil {
			if _, werr := fmt.Fprintf(w, "%-10s ! %v\n", a.String(), err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%-10s = %v\n", a.String(), v); err != nil {
			return err
		}
	}
	return nil
}
