package common

import (
	"fmt"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"strings"
)

// --------------------------------------------------------------------------
// CLI configuration struct
// --------------------------------------------------------------------------

// Config holds the resolved configuration of one CLI invocation.
type Config struct {
	// Mode decides which store variant CreateStore returns
	Mode mode.Mode
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// Format is the snapshot format (json, yaml, gob)
	Format string
	// File is the snapshot file, "-" for stdin/stdout
	File string
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Store")
	addField("Mode", string(c.Mode))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Snapshot")
	addField("Format", c.Format)
	addField("File", c.File)

	return sb.String()
}
