package util

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/common"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"github.com/ValentinKolb/atomstore/lib/snapshot"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupFlags adds the flags shared by all commands
func SetupFlags(cmd *cobra.Command) {
	key := "mode"
	cmd.PersistentFlags().String(key, "", WrapString("Store mode (production, development). Defaults to the build mode"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (debug, info, warn, error)"))

	key = "format"
	cmd.PersistentFlags().String(key, "yaml", WrapString("Snapshot format (json, yaml, gob)"))
}

// InitConfig initializes configuration from .env files and environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("atomstore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the configuration from viper
func GetConfig() (*common.Config, error) {
	conf := &common.Config{
		Mode:     mode.Current(),
		LogLevel: viper.GetString("log-level"),
		Format:   viper.GetString("format"),
		File:     viper.GetString("file"),
	}
	if raw := viper.GetString("mode"); raw != "" {
		m, ok := mode.Parse(raw)
		if !ok {
			return nil, fmt.Errorf("invalid mode %s", raw)
		}
		conf.Mode = m
	}
	return conf, nil
}

// Setup resolves the configuration of a command, applies the mode and initializes the loggers.
// It is meant to be used as PersistentPreRunE.
func Setup(cmd *cobra.Command, _ []string) error {
	if err := BindCommandFlags(cmd); err != nil {
		return err
	}

	conf, err := GetConfig()
	if err != nil {
		return err
	}
	mode.Set(conf.Mode)
	if err := common.InitLoggers(*conf); err != nil {
		return err
	}
	log.Debugf("configuration: %s", conf.String())
	return nil
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (snapshot.ISerializer, error) {
	return snapshot.ForFormat(viper.GetString("format"))
}
