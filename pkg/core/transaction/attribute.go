package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/io"
)

// AttrValue represents a Transaction Attribute value.
type AttrValue interface {
	io.Serializable
	toJSONMap(map[string]any)
}

// Attribute represents a Transaction attribute.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// attrJSON is used for JSON I/O of Attribute.
type attrJSON struct {
	Type string `json:"type"`
}

// NewCosignerAttribute wraps the cosigner into an attribute.
func NewCosignerAttribute(c *Cosigner) Attribute {
	return Attribute{Type: CosignerT, Value: c}
}

// DecodeBinary implements the Serializable interface.
func (attr *Attribute) DecodeBinary(br *io.BinReader) {
	attr.Type = AttrType(br.ReadB())
	if br.Err != nil {
		return
	}
	val, err := newAttrValue(attr.Type)
	if err != nil {
		br.Err = err
		return
	}
	val.DecodeBinary(br)
	attr.Value = val
}

// EncodeBinary implements the Serializable interface.
func (attr Attribute) EncodeBinary(bw *io.BinWriter) {
	if _, ok := attrKinds[attr.Type]; !ok {
		bw.Err = fmt.Errorf("%w: %#02x", ErrUnknownAttributeType, uint8(attr.Type))
		return
	}
	if attr.Value == nil {
		bw.Err = errors.New("attribute without value")
		return
	}
	bw.WriteB(byte(attr.Type))
	attr.Value.EncodeBinary(bw)
}

// MarshalJSON implements the json Marshaller interface.
func (attr Attribute) MarshalJSON() ([]byte, error) {
	m := map[string]any{"type": attr.Type.String()}
	if attr.Value != nil {
		attr.Value.toJSONMap(m)
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaller interface.
func (attr *Attribute) UnmarshalJSON(data []byte) error {
	aj := new(attrJSON)
	if err := json.Unmarshal(data, aj); err != nil {
		return err
	}
	t, err := AttrTypeFromString(aj.Type)
	if err != nil {
		return err
	}
	val, _ := newAttrValue(t)
	if err := json.Unmarshal(data, val); err != nil {
		return err
	}
	attr.Type, attr.Value = t, val
	return nil
}
