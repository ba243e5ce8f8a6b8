package snapshot

import "encoding/json"

// NewJSONSerializer creates a new serializer using json encoding.
// Numbers are decoded as float64.
func NewJSONSerializer() ISerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see snapshot.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(s Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func (j jsonSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return json.Unmarshal(b, s)
}
