package restore

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/cmd/util"
	"github.com/ValentinKolb/atomstore/lib/snapshot"
	"github.com/ValentinKolb/atomstore/lib/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
)

// RestoreCmd restores a snapshot into a fresh store of the demo graph
var RestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a snapshot into the demo atom graph",
	Long: `Restore a snapshot into a fresh development store holding the demo atom graph and print the resulting values.
Custom write operations are bypassed and derived atoms are skipped. Requires development mode.`,
	RunE: run,
}

func init() {
	key := "file"
	RestoreCmd.Flags().StringP(key, "f", "-", util.WrapString("Snapshot file to read, - for stdin"))
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	data, err := readInput(cmd, viper.GetString("file"))
	if err != nil {
		return err
	}

	var snap snapshot.Snapshot
	if err := s.Deserialize(data, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	dev, ok := store.CreateStore().(store.IDevStore)
	if !ok {
		return fmt.Errorf("restore requires development mode")
	}

	demo := util.NewDemo()
	if err := snapshot.Restore(dev, snap, demo.Atoms()...); err != nil {
		return err
	}

	return util.PrintValues(cmd.OutOrStdout(), dev, demo.Atoms())
}

// readInput reads the snapshot from file, or from the command input for "-"
func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}
