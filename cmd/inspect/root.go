package inspect

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/cmd/util"
	"github.com/ValentinKolb/atomstore/lib/snapshot"
	"github.com/ValentinKolb/atomstore/lib/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"strings"
)

var (
	assignments []string
	showMetrics bool

	// InspectCmd mounts the demo graph, applies writes and prints a snapshot
	InspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Mount the demo atom graph and print a snapshot",
		Long: `Subscribe to the demo atom graph on the default store, apply the given writes and print the mounted atoms followed by a snapshot of their values.
Writes use the atom's own write operation, so writing "shout" updates "greeting".`,
		Example: `  atomstore inspect --set count=3 --set step=2
  atomstore inspect --set shout=hi --format json`,
		RunE: run,
	}
)

func init() {
	key := "set"
	InspectCmd.Flags().StringArrayVar(&assignments, key, nil, util.WrapString("Write a value to an atom before inspecting (label=value, value parsed as YAML)"))

	key = "metrics"
	InspectCmd.Flags().BoolVar(&showMetrics, key, false, util.WrapString("Print the store metrics in Prometheus text format"))
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	demo := util.NewDemo()
	st := store.GetDefaultStore()
	for _, root := range demo.Roots() {
		unsub := st.Sub(root, func() {})
		defer unsub()
	}

	for _, assignment := range assignments {
		label, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %s (expected label=value)", assignment)
		}
		a, ok := demo.Find(label)
		if !ok {
			return fmt.Errorf("%w: %s", snapshot.ErrUnknownAtom, label)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", label, err)
		}
		if _, err := st.Set(a, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", label, err)
		}
	}

	out := cmd.OutOrStdout()
	if err := util.PrintValues(out, st, demo.Atoms()); err != nil {
		return err
	}

	if dev, ok := st.(store.IDevStore); ok {
		data, err := s.Serialize(snapshot.Capture(dev))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\nsnapshot (%d mounted atoms):\n", dev.MountedAtoms().Len())
		if _, err := out.Write(data); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
	} else {
		_, _ = fmt.Fprintln(out, "\nno snapshot: the default store is not instrumented in production mode")
	}

	if showMetrics {
		_, _ = fmt.Fprintln(out)
		return store.WriteMetrics(out)
	}
	return nil
}
