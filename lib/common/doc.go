// Package common provides the pieces shared by the library packages and the CLI:
// the configuration struct of a CLI invocation and a custom logger that plugs into
// Dragonboat's logger registry.
//
// Logging:
//
//	Library packages obtain their logger with logger.GetLogger (for example
//	"store" or "engine") from github.com/lni/dragonboat/v4/logger. Until
//	InitLoggers is called those loggers use dragonboat's default backend.
//	InitLoggers installs CreateLogger as the factory, which prints
//	"LEVEL | package | message" lines to Output, and sets the configured level.
package common
