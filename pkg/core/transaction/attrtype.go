package transaction

import (
	"errors"
	"fmt"
)

// AttrType represents the purpose of the attribute.
type AttrType uint8

// List of valid attribute types.
const (
	CosignerT AttrType = 0x01
)

// ErrUnknownAttributeType is returned for attribute tags that have no
// corresponding attribute kind.
var ErrUnknownAttributeType = errors.New("unknown attribute type")

// attrKinds maps every known attribute type to its JSON name and value
// constructor.
var attrKinds = map[AttrType]struct {
	name  string
	value func() AttrValue
}{
	CosignerT: {"Cosigner", func() AttrValue { return new(Cosigner) }},
}

// String implements the fmt.Stringer interface.
func (t AttrType) String() string {
	if k, ok := attrKinds[t]; ok {
		return k.name
	}
	return fmt.Sprintf("AttrType(%d)", uint8(t))
}

// AttrTypeFromString returns the attribute type for its string tag.
func AttrTypeFromString(s string) (AttrType, error) {
	for t, k := range attrKinds {
		if k.name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttributeType, s)
}

// newAttrValue returns an empty value for the given type.
func newAttrValue(t AttrType) (AttrValue, error) {
	k, ok := attrKinds[t]
	if !ok {
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownAttributeType, uint8(t))
	}
	return k.value(), nil
}
