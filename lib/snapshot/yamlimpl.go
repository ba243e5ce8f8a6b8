package snapshot

import "gopkg.in/yaml.v3"

// NewYAMLSerializer creates a new serializer using yaml encoding.
// Integers are decoded as int, floats as float64.
func NewYAMLSerializer() ISerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the ISerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see snapshot.ISerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

func (y yamlSerializerImpl) Deserialize(b []byte, s *Snapshot) error {
	return yaml.Unmarshal(b, s)
}
