package stackitem

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

// Item represents a value returned by the VM. Items produced by this package
// are never modified after construction, so they can be shared freely.
type Item interface {
	fmt.Stringer
	// Value returns the underlying Go value: []byte, *big.Int, bool,
	// []Item, []MapElement or nil.
	Value() any
	// Equals checks if two items are structurally equal.
	Equals(s Item) bool
	// Type returns stack item type.
	Type() Type

	item()
}

var (
	// ErrInvalidValue is returned when the JSON value doesn't match its type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidCast is returned by As* functions when the item is of a
	// different type.
	ErrInvalidCast = errors.New("invalid cast")
)

// Make tries to make an appropriate stack item from the provided value.
// It will panic if it's not possible.
func Make(v any) Item {
	switch val := v.(type) {
	case int:
		return NewBigInteger(big.NewInt(int64(val)))
	case int64:
		return NewBigInteger(big.NewInt(val))
	case uint32:
		return NewBigInteger(big.NewInt(int64(val)))
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(val))
	case *big.Int:
		return NewBigInteger(val)
	case []byte:
		return NewByteArray(val)
	case string:
		return NewByteArray([]byte(val))
	case bool:
		return NewBool(val)
	case util.Uint160:
		return NewByteArray(val.BytesBE())
	case util.Uint256:
		return NewByteArray(val.BytesBE())
	case []Item:
		return NewArray(val)
	case []any:
		res := make([]Item, len(val))
		for i := range val {
			res[i] = Make(val[i])
		}
		return NewArray(res)
	case Item:
		return val
	case nil:
		return Null{}
	default:
		panic(fmt.Sprintf("invalid stack item type: %v (%T)", val, val))
	}
}

// Null represents a null on the stack, it's returned for Any-typed items.
type Null struct{}

func (Null) item() {}

// String implements the Item interface.
func (i Null) String() string {
	return "Null"
}

// Value implements the Item interface.
func (i Null) Value() any {
	return nil
}

// Equals implements the Item interface.
func (i Null) Equals(s Item) bool {
	_, ok := s.(Null)
	return ok
}

// Type implements the Item interface.
func (i Null) Type() Type { return AnyT }

// BigInteger represents a big integer on the stack.
type BigInteger big.Int

// NewBigInteger returns a new BigInteger object, the value is copied.
func NewBigInteger(value *big.Int) *BigInteger {
	return (*BigInteger)(new(big.Int).Set(value))
}

func (*BigInteger) item() {}

// Big returns the underlying big.Int value. It must not be modified.
func (i *BigInteger) Big() *big.Int {
	return (*big.Int)(i)
}

// Value implements the Item interface.
func (i *BigInteger) Value() any {
	return i.Big()
}

// String implements the Item interface.
func (i *BigInteger) String() string {
	return i.Big().String()
}

// Equals implements the Item interface.
func (i *BigInteger) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*BigInteger)
	return ok && i.Big().Cmp(val.Big()) == 0
}

// Type implements the Item interface.
func (i *BigInteger) Type() Type { return IntegerT }

// Bool represents a boolean Item.
type Bool bool

// NewBool returns a new Bool object.
func NewBool(val bool) Bool {
	return Bool(val)
}

func (Bool) item() {}

// Value implements the Item interface.
func (i Bool) Value() any {
	return bool(i)
}

// String implements the Item interface.
func (i Bool) String() string {
	return strconv.FormatBool(bool(i))
}

// Equals implements the Item interface.
func (i Bool) Equals(s Item) bool {
	val, ok := s.(Bool)
	return ok && i == val
}

// Type implements the Item interface.
func (i Bool) Type() Type { return BooleanT }

// ByteArray represents a ByteString on the stack.
type ByteArray []byte

// NewByteArray returns a new ByteArray object.
func NewByteArray(b []byte) *ByteArray {
	return (*ByteArray)(&b)
}

func (*ByteArray) item() {}

// Value implements the Item interface.
func (i *ByteArray) Value() any {
	return []byte(*i)
}

// Bytes returns the raw bytes, they must not be modified.
func (i *ByteArray) Bytes() []byte {
	return *i
}

// String returns the bytes interpreted as UTF-8 text.
func (i *ByteArray) String() string {
	return string(*i)
}

// Number interprets the bytes as a little-endian two's complement integer,
// empty value is zero.
func (i *ByteArray) Number() *big.Int {
	return bigint.FromBytes(*i)
}

// Uint160 interprets the bytes as a script hash in its binary (wire) order.
func (i *ByteArray) Uint160() (util.Uint160, error) {
	return util.Uint160DecodeBytesBE(*i)
}

// Address interprets the bytes as a script hash (see Uint160) and returns
// the address for it.
func (i *ByteArray) Address() (string, error) {
	u, err := i.Uint160()
	if err != nil {
		return "", err
	}
	return address.Uint160ToString(u), nil
}

// Equals implements the Item interface.
func (i *ByteArray) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*ByteArray)
	return ok && bytes.Equal(*i, *val)
}

// Type implements the Item interface.
func (i *ByteArray) Type() Type { return ByteArrayT }

// Buffer represents a mutable byte buffer in the VM. Client-side it's just
// another byte sequence, but it's never equal to a ByteArray.
type Buffer []byte

// NewBuffer returns a new Buffer object.
func NewBuffer(b []byte) *Buffer {
	return (*Buffer)(&b)
}

func (*Buffer) item() {}

// Value implements the Item interface.
func (i *Buffer) Value() any {
	return []byte(*i)
}

// String implements the Item interface.
func (i *Buffer) String() string {
	return "Buffer"
}

// Equals implements the Item interface.
func (i *Buffer) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Buffer)
	return ok && bytes.Equal(*i, *val)
}

// Type implements the Item interface.
func (i *Buffer) Type() Type { return BufferT }

// Array represents a new Array object.
type Array struct {
	value []Item
}

// NewArray returns a new Array object.
func NewArray(items []Item) *Array {
	return &Array{
		value: items,
	}
}

func (*Array) item() {}

// Value implements the Item interface.
func (i *Array) Value() any {
	return i.value
}

// Len returns the number of elements.
func (i *Array) Len() int {
	return len(i.value)
}

// Get returns the element at position n, it panics for out of range n just
// like a slice would.
func (i *Array) Get(n int) Item {
	return i.value[n]
}

// String implements the Item interface.
func (i *Array) String() string {
	return "Array"
}

// Equals implements the Item interface. Arrays are compared element by
// element, an Array is never equal to a Struct.
func (i *Array) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Array)
	return ok && equalItems(i.value, val.value)
}

// Type implements the Item interface.
func (i *Array) Type() Type { return ArrayT }

// Struct represents a struct on the stack.
type Struct struct {
	value []Item
}

// NewStruct returns a new Struct object.
func NewStruct(items []Item) *Struct {
	return &Struct{
		value: items,
	}
}

func (*Struct) item() {}

// Value implements the Item interface.
func (i *Struct) Value() any {
	return i.value
}

// Len returns the number of struct fields.
func (i *Struct) Len() int {
	return len(i.value)
}

// Get returns the field at position n, it panics for out of range n.
func (i *Struct) Get(n int) Item {
	return i.value[n]
}

// String implements the Item interface.
func (i *Struct) String() string {
	return "Struct"
}

// Equals implements the Item interface.
func (i *Struct) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Struct)
	return ok && equalItems(i.value, val.value)
}

// Type implements the Item interface.
func (i *Struct) Type() Type { return StructT }

func equalItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for j := range a {
		if !a[j].Equals(b[j]) {
			return false
		}
	}
	return true
}

// MapElement is a key-value pair of Items.
type MapElement struct {
	Key   Item
	Value Item
}

// Map represents a Map object. It preserves the order in which elements were
// added, though the order doesn't matter for equality.
type Map struct {
	value []MapElement
}

// NewMap returns a new Map object.
func NewMap() *Map {
	return &Map{
		value: make([]MapElement, 0),
	}
}

// NewMapWithValue returns a new Map object filled with the specified value
// without key validation.
func NewMapWithValue(value []MapElement) *Map {
	if value != nil {
		return &Map{
			value: value,
		}
	}
	return NewMap()
}

func (*Map) item() {}

// Value implements the Item interface.
func (i *Map) Value() any {
	return i.value
}

// Len returns the number of elements.
func (i *Map) Len() int {
	return len(i.value)
}

// String implements the Item interface.
func (i *Map) String() string {
	return "Map"
}

// Index returns an index of the key in the map, -1 if there is none.
func (i *Map) Index(key Item) int {
	for k := range i.value {
		if i.value[k].Key.Equals(key) {
			return k
		}
	}
	return -1
}

// Get returns the value stored under the key or nil if there is none.
func (i *Map) Get(key Item) Item {
	if k := i.Index(key); k >= 0 {
		return i.value[k].Value
	}
	return nil
}

// GetString returns the value stored under the ByteString key with the
// given text or nil if there is none.
func (i *Map) GetString(key string) Item {
	return i.Get(NewByteArray([]byte(key)))
}

// Equals implements the Item interface. Maps are equal when they have the
// same set of keys with equal values.
func (i *Map) Equals(s Item) bool {
	if i == s {
		return true
	}
	val, ok := s.(*Map)
	if !ok || len(i.value) != len(val.value) {
		return false
	}
	for k := range i.value {
		other := val.Get(i.value[k].Key)
		if other == nil || !i.value[k].Value.Equals(other) {
			return false
		}
	}
	return true
}

// Type implements the Item interface.
func (i *Map) Type() Type { return MapT }

// Add adds a new item to the map replacing the old value for the same key.
// It's only used during construction.
func (i *Map) Add(key, value Item) {
	if err := IsValidMapKey(key); err != nil {
		panic(err)
	}
	index := i.Index(key)
	if index >= 0 {
		i.value[index].Value = value
	} else {
		i.value = append(i.value, MapElement{key, value})
	}
}

// IsValidMapKey checks whether it's possible to use the given Item as a Map
// key.
func IsValidMapKey(key Item) error {
	switch key.(type) {
	case Bool, *BigInteger, *ByteArray:
		return nil
	default:
		return fmt.Errorf("%w: %s map key", ErrInvalidType, key.Type())
	}
}
