package snapshot

import (
	"bytes"
	"encoding/gob"
)

func init() {
	// interface values inside a snapshot need their concrete types registered
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

// NewGOBSerializer creates a new serializer using Go's binary gob format.
// Values of custom types must be registered with gob.Register by the caller.
func NewGOBSerializer() ISerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the ISerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see snapshot.ISerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	buf := bytes.NewBuffer(b)
	dec := gob.NewDecoder(buf)
	return dec.Decode(s)
}
