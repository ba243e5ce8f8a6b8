// Package snapshot moves atom values in and out of development stores.
//
// A Snapshot maps atom labels to values. Capture builds one from the mounted
// atoms of an IDevStore without recomputing anything, Resolve and Restore turn one
// back into a restore transaction for a set of known atoms. Serializers encode
// snapshots as json, yaml or gob.
//
// Decoded snapshots carry the types of their encoding: json yields float64 for
// every number, yaml distinguishes int and float64, gob keeps the Go types.
package snapshot
