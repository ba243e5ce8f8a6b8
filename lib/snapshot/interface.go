package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAtom is returned when a snapshot names an atom that is not known.
	ErrUnknownAtom = errors.New("snapshot: unknown atom")
	// ErrUnknownFormat is returned by ForFormat for unsupported format names.
	ErrUnknownFormat = errors.New("snapshot: unknown format")
)

// Snapshot maps atom labels to values.
type Snapshot map[string]any

// ISerializer is the interface for all snapshot encodings.
type ISerializer interface {
	// Serialize encodes a snapshot into a byte array
	Serialize(s Snapshot) ([]byte, error)
	// Deserialize decodes a byte array into the snapshot pointed to by s
	Deserialize(b []byte, s *Snapshot) error
}

// ForFormat returns the serializer for a format name (json, yaml, gob).
func ForFormat(format string) (ISerializer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return NewJSONSerializer(), nil
	case "yaml", "yml":
		return NewYAMLSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
