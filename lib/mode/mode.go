package mode

import (
	"github.com/spf13/viper"
	"strings"
)

// Mode selects between the production and the development flavour of stores.
type Mode string

const (
	Production  Mode = "production"
	Development Mode = "development"
)

const key = "mode"

var cfg = newConfig()

// newConfig creates the viper instance that resolves the mode. The compiled-in
// default is overridden by ATOMSTORE_MODE, which in turn is overridden by Set.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("atomstore")
	v.AutomaticEnv()
	v.SetDefault(key, string(buildMode))
	return v
}

// Parse converts a string into a Mode. It accepts the short forms "prod" and "dev".
func Parse(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production, true
	case "development", "dev":
		return Development, true
	default:
		return "", false
	}
}

// Current returns the active mode. Unknown values fall back to the build default.
func Current() Mode {
	if m, ok := Parse(cfg.GetString(key)); ok {
		return m
	}
	return buildMode
}

// IsProduction reports whether the active mode is Production.
func IsProduction() bool {
	return Current() == Production
}

// Set overrides the mode for the rest of the process (or until Reset).
func Set(m Mode) {
	cfg.Set(key, string(m))
}

// Reset drops any override made with Set and re-reads the environment.
func Reset() {
	cfg = newConfig()
}
