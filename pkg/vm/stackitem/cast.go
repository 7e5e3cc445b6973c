package stackitem

import "fmt"

func castErr(item Item, to Type) error {
	if item == nil {
		return fmt.Errorf("%w: nil to %s", ErrInvalidCast, to)
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidCast, item.Type(), to)
}

// AsByteString returns the item as a ByteArray or ErrInvalidCast if it's of
// another type.
func AsByteString(item Item) (*ByteArray, error) {
	if b, ok := item.(*ByteArray); ok {
		return b, nil
	}
	return nil, castErr(item, ByteArrayT)
}

// AsInteger returns the item as a BigInteger or ErrInvalidCast if it's of
// another type.
func AsInteger(item Item) (*BigInteger, error) {
	if i, ok := item.(*BigInteger); ok {
		return i, nil
	}
	return nil, castErr(item, IntegerT)
}

// AsBoolean returns the item as a Bool or ErrInvalidCast if it's of another
// type.
func AsBoolean(item Item) (Bool, error) {
	if b, ok := item.(Bool); ok {
		return b, nil
	}
	return false, castErr(item, BooleanT)
}

// AsArray returns the item as an Array or ErrInvalidCast. Structs are not
// arrays.
func AsArray(item Item) (*Array, error) {
	if a, ok := item.(*Array); ok {
		return a, nil
	}
	return nil, castErr(item, ArrayT)
}

// AsStruct returns the item as a Struct or ErrInvalidCast.
func AsStruct(item Item) (*Struct, error) {
	if s, ok := item.(*Struct); ok {
		return s, nil
	}
	return nil, castErr(item, StructT)
}

// AsMap returns the item as a Map or ErrInvalidCast.
func AsMap(item Item) (*Map, error) {
	if m, ok := item.(*Map); ok {
		return m, nil
	}
	return nil, castErr(item, MapT)
}
