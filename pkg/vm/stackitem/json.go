package stackitem

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxJSONDepth is the maximum allowed nesting level of an encoded item.
const MaxJSONDepth = 10

// ErrTooDeep is returned when JSON encoder/decoder goes too deep.
var ErrTooDeep = errors.New("too deep")

type (
	rawItem struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value,omitempty"`
	}

	rawMapElement struct {
		Key   json.RawMessage `json:"key"`
		Value json.RawMessage `json:"value"`
	}
)

func mkErrValue(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidValue, err)
}

// ToJSONWithTypes serializes an item to the typed-json representation used
// by RPC nodes.
func ToJSONWithTypes(item Item) ([]byte, error) {
	result, err := toJSONWithTypes(item, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

func toJSONWithTypes(item Item, depth int) (any, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	var value any
	switch it := item.(type) {
	case *Array, *Struct:
		arr := []any{}
		for _, elem := range it.Value().([]Item) {
			s, err := toJSONWithTypes(elem, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, s)
		}
		value = arr
	case Bool:
		value = bool(it)
	case *Buffer, *ByteArray:
		value = base64.StdEncoding.EncodeToString(it.Value().([]byte))
	case *BigInteger:
		value = it.String()
	case *Map:
		arr := []any{}
		for i := range it.value {
			// map keys are primitive types and can always be converted to json
			key, _ := toJSONWithTypes(it.value[i].Key, depth+1)
			val, err := toJSONWithTypes(it.value[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, map[string]any{
				"key":   key,
				"value": val,
			})
		}
		value = arr
	case Null:
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidValue)
	}
	result := map[string]any{
		"type": item.Type().String(),
	}
	if value != nil {
		result["value"] = value
	}
	return result, nil
}

// FromJSONWithTypes deserializes an item from typed-json representation.
// Integers may be given as strings (an empty one is zero) or numbers,
// booleans as JSON booleans or "true"/"false" strings.
func FromJSONWithTypes(data []byte) (Item, error) {
	return fromJSONWithTypes(data, 0)
}

func fromJSONWithTypes(data []byte, depth int) (Item, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	raw := new(rawItem)
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	typ, err := FromString(raw.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, raw.Type)
	}
	switch typ {
	case AnyT:
		return Null{}, nil
	case BooleanT:
		b, err := decodeBool(raw.Value)
		if err != nil {
			return nil, mkErrValue(err)
		}
		return NewBool(b), nil
	case IntegerT:
		val, err := decodeInteger(raw.Value)
		if err != nil {
			return nil, mkErrValue(err)
		}
		return (*BigInteger)(val), nil
	case ByteArrayT, BufferT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		val, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, mkErrValue(err)
		}
		if typ == ByteArrayT {
			return NewByteArray(val), nil
		}
		return NewBuffer(val), nil
	case ArrayT, StructT:
		var arr []json.RawMessage
		if err := json.Unmarshal(raw.Value, &arr); err != nil {
			return nil, mkErrValue(err)
		}
		items := make([]Item, len(arr))
		for i := range arr {
			it, err := fromJSONWithTypes(arr[i], depth+1)
			if err != nil {
				return nil, err
			}
			items[i] = it
		}
		if typ == ArrayT {
			return NewArray(items), nil
		}
		return NewStruct(items), nil
	case MapT:
		var arr []rawMapElement
		if err := json.Unmarshal(raw.Value, &arr); err != nil {
			return nil, mkErrValue(err)
		}
		m := NewMap()
		for i := range arr {
			key, err := fromJSONWithTypes(arr[i].Key, depth+1)
			if err != nil {
				return nil, err
			} else if err = IsValidMapKey(key); err != nil {
				return nil, err
			}
			value, err := fromJSONWithTypes(arr[i].Value, depth+1)
			if err != nil {
				return nil, err
			}
			m.Add(key, value)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s is not supported", ErrInvalidType, typ)
	}
}

func decodeBool(data json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return false, err
	}
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func decodeInteger(data json.RawMessage) (*big.Int, error) {
	var s string
	if len(data) != 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if len(s) == 0 {
			return new(big.Int), nil
		}
	} else {
		s = string(bytes.TrimSpace(data))
	}
	val, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return val, nil
}
