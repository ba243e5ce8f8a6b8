// Package cmd implements the command-line interface of atomstore. The CLI works
// on a small built-in atom graph (count, step, total, greeting, shout) and is
// meant for trying out the store variants and the snapshot tooling.
//
// The package is organized into several subpackages:
//
//   - inspect: Mounts the demo graph on the default store, applies writes and prints a snapshot
//   - restore: Restores a snapshot into a fresh development store
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can also be set through ATOMSTORE_<FLAG> environment variables
// (dashes become underscores) or a .env / .env.local file. The store mode is
// taken from --mode, then ATOMSTORE_MODE, then the build tag "production".
//
// See atomstore -help for a list of all commands.
package cmd
