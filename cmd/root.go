package cmd

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/cmd/inspect"
	"github.com/ValentinKolb/atomstore/cmd/restore"
	"github.com/ValentinKolb/atomstore/cmd/util"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "atomstore",
		Short: "reactive atom store toolbox",
		Long: fmt.Sprintf(`atomstore (v%s)

Inspect and restore the state of a reactive atom store. Configuration is read
from flags, .env files and ATOMSTORE_<flag> environment variables.`, Version),
		PersistentPreRunE: util.Setup,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number and build mode of atomstore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atomstore v%s (%s)\n", Version, mode.Current())
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(inspect.InspectCmd)
	RootCmd.AddCommand(restore.RestoreCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
