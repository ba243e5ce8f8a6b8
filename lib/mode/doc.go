// Package mode resolves whether the process runs in production or development mode.
//
// The default is fixed at build time: binaries built with `-tags production` start
// in Production, all others in Development. The environment variable
// ATOMSTORE_MODE (read through viper) overrides the build default, and Set
// overrides both. Stores read the mode once, when they are created.
package mode
