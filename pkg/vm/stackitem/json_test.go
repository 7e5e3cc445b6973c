package stackitem

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const byteStringJSON = `{"type": "ByteString", "value": "V29vbG9uZw=="}`

func TestFromJSONWithTypesByteString(t *testing.T) {
	item, err := FromJSONWithTypes([]byte(byteStringJSON))
	require.NoError(t, err)
	require.Equal(t, ByteArrayT, item.Type())

	bs, err := AsByteString(item)
	require.NoError(t, err)
	expected, _ := hex.DecodeString("576f6f6c6f6e67")
	require.Equal(t, expected, bs.Bytes())
	require.Equal(t, "Woolong", bs.String())

	item, err = FromJSONWithTypes([]byte(`{"type": "ByteString", "value": "aWQ="}`))
	require.NoError(t, err)
	bs, err = AsByteString(item)
	require.NoError(t, err)
	require.Equal(t, []byte{0x69, 0x64}, bs.Bytes())
	require.Equal(t, big.NewInt(25705), bs.Number())

	// The script hash in the order it's stored in scripts.
	item, err = FromJSONWithTypes([]byte(`{"type": "ByteString", "value": "1Cz3qTHOPEZVD9kN5IJYP8XqcBo="}`))
	require.NoError(t, err)
	bs, err = AsByteString(item)
	require.NoError(t, err)
	expected, _ = hex.DecodeString("d42cf7a931ce3c46550fd90de482583fc5ea701a")
	require.Equal(t, expected, bs.Bytes())
	addr, err := bs.Address()
	require.NoError(t, err)
	require.Equal(t, "Ab7kmZJw2yJDNREnyBByt1QEZGbzj9uBf1", addr)

	require.True(t, NewByteArray(expected).Equals(item))
	require.True(t, item.Equals(NewByteArray(expected)))

	t.Run("bad address length", func(t *testing.T) {
		_, err := NewByteArray([]byte{1, 2, 3}).Address()
		require.Error(t, err)
	})
	t.Run("empty number", func(t *testing.T) {
		require.Equal(t, 0, NewByteArray([]byte{}).Number().Sign())
	})
}

func TestFromJSONWithTypesInteger(t *testing.T) {
	item, err := FromJSONWithTypes([]byte(`{"type": "Integer", "value": "1124"}`))
	require.NoError(t, err)
	require.Equal(t, IntegerT, item.Type())
	i, err := AsInteger(item)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1124), i.Big())

	item, err = FromJSONWithTypes([]byte(`{"type": "Integer", "value": ""}`))
	require.NoError(t, err)
	i, err = AsInteger(item)
	require.NoError(t, err)
	require.Equal(t, 0, i.Big().Sign())
	require.True(t, Make(0).Equals(item))

	item, err = FromJSONWithTypes([]byte(`{"type": "Integer", "value": 42}`))
	require.NoError(t, err)
	require.True(t, Make(42).Equals(item))

	item, err = FromJSONWithTypes([]byte(`{"type": "Integer", "value": "-100000000000000000000000"}`))
	require.NoError(t, err)
	expected, _ := new(big.Int).SetString("-100000000000000000000000", 10)
	require.True(t, Make(expected).Equals(item))
}

func TestFromJSONWithTypesBoolean(t *testing.T) {
	item, err := FromJSONWithTypes([]byte(`{"type": "Boolean", "value": "true"}`))
	require.NoError(t, err)
	require.Equal(t, BooleanT, item.Type())
	b, err := AsBoolean(item)
	require.NoError(t, err)
	require.True(t, bool(b))

	item, err = FromJSONWithTypes([]byte(`{"type": "Boolean", "value": false}`))
	require.NoError(t, err)
	b, err = AsBoolean(item)
	require.NoError(t, err)
	require.False(t, bool(b))
	require.True(t, NewBool(false).Equals(item))
	require.False(t, NewBool(true).Equals(item))
}

func TestFromJSONWithTypesArray(t *testing.T) {
	js := `{"type": "Array", "value": [{"type": "Boolean", "value": "true"}, {"type": "Integer", "value": "100"}]}`
	item, err := FromJSONWithTypes([]byte(js))
	require.NoError(t, err)
	require.Equal(t, ArrayT, item.Type())
	arr, err := AsArray(item)
	require.NoError(t, err)
	require.Equal(t, 2, arr.Len())
	require.Equal(t, BooleanT, arr.Get(0).Type())
	require.Equal(t, IntegerT, arr.Get(1).Type())

	other := NewArray([]Item{NewBool(true), Make(100)})
	require.True(t, other.Equals(item))
	require.True(t, item.Equals(other))

	item, err = FromJSONWithTypes([]byte(`{"type": "Array", "value": []}`))
	require.NoError(t, err)
	arr, err = AsArray(item)
	require.NoError(t, err)
	require.Equal(t, 0, arr.Len())
	require.True(t, NewArray([]Item{}).Equals(item))
}

func TestFromJSONWithTypesStruct(t *testing.T) {
	js := `{"type": "Struct", "value": [{"type": "Boolean", "value": "true"}, {"type": "Integer", "value": "100"}]}`
	item, err := FromJSONWithTypes([]byte(js))
	require.NoError(t, err)
	require.Equal(t, StructT, item.Type())
	st, err := AsStruct(item)
	require.NoError(t, err)
	require.Equal(t, 2, st.Len())
	require.Equal(t, BooleanT, st.Get(0).Type())
	require.Equal(t, IntegerT, st.Get(1).Type())

	other := NewStruct([]Item{NewBool(true), Make(100)})
	require.True(t, other.Equals(item))

	// Same elements, different kind.
	require.False(t, NewArray([]Item{NewBool(true), Make(100)}).Equals(item))
	_, err = AsArray(item)
	require.ErrorIs(t, err, ErrInvalidCast)

	item, err = FromJSONWithTypes([]byte(`{"type": "Struct", "value": []}`))
	require.NoError(t, err)
	require.True(t, NewStruct(nil).Equals(item))
}

func TestFromJSONWithTypesMap(t *testing.T) {
	js := `{"type": "Map", "value": [
		{"key": {"type": "ByteString", "value": "dGVzdF9rZXlfYQ=="}, "value": {"type": "Boolean", "value": "false"}},
		{"key": {"type": "ByteString", "value": "dGVzdF9rZXlfYg=="}, "value": {"type": "Integer", "value": "12345"}}
	]}`
	item, err := FromJSONWithTypes([]byte(js))
	require.NoError(t, err)
	require.Equal(t, MapT, item.Type())
	m, err := AsMap(item)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	a := m.GetString("test_key_a")
	require.NotNil(t, a)
	require.Equal(t, BooleanT, a.Type())
	b, err := AsBoolean(a)
	require.NoError(t, err)
	require.False(t, bool(b))

	bv := m.GetString("test_key_b")
	require.NotNil(t, bv)
	i, err := AsInteger(bv)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(12345), i.Big())

	key1, _ := hex.DecodeString("746573745f6b65795f61")
	key2, _ := hex.DecodeString("746573745f6b65795f62")
	require.True(t, NewBool(false).Equals(m.Get(NewByteArray(key1))))
	require.True(t, Make(12345).Equals(m.Get(NewByteArray(key2))))
	require.Nil(t, m.GetString("test_key_c"))

	// Different insertion order.
	other := NewMap()
	other.Add(NewByteArray(key2), Make(12345))
	other.Add(NewByteArray(key1), NewBool(false))
	require.True(t, other.Equals(item))
	require.True(t, item.Equals(other))

	other.Add(NewByteArray(key2), Make(1))
	require.False(t, other.Equals(item))

	item, err = FromJSONWithTypes([]byte(`{"type": "Map", "value": []}`))
	require.NoError(t, err)
	m, err = AsMap(item)
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())
	require.True(t, NewMap().Equals(item))
}

func TestFromJSONWithTypesAny(t *testing.T) {
	item, err := FromJSONWithTypes([]byte(`{"type": "Any"}`))
	require.NoError(t, err)
	require.Equal(t, Null{}, item)
	require.Nil(t, item.Value())
}

func TestFromJSONWithTypesErrors(t *testing.T) {
	errCases := map[string]error{
		`{"type": "Unknown", "value": ""}`:          ErrInvalidType,
		`{"type": "Interop"}`:                       ErrInvalidType,
		`{"type": "Integer", "value": "12a"}`:       ErrInvalidValue,
		`{"type": "Integer", "value": true}`:        ErrInvalidValue,
		`{"type": "Boolean", "value": "yes"}`:       ErrInvalidValue,
		`{"type": "Boolean", "value": 1}`:           ErrInvalidValue,
		`{"type": "ByteString", "value": "!!"}`:     ErrInvalidValue,
		`{"type": "ByteString", "value": 1}`:        ErrInvalidValue,
		`{"type": "Array", "value": {}}`:            ErrInvalidValue,
		`{"type": "Map", "value": [{"key": {"type": "Array", "value": []}, "value": {"type": "Any"}}]}`: ErrInvalidType,
		`{"type": "Array", "value": [{"type": "Foo"}]}`: ErrInvalidType,
	}
	for js, expected := range errCases {
		_, err := FromJSONWithTypes([]byte(js))
		require.ErrorIs(t, err, expected, js)
	}

	_, err := FromJSONWithTypes([]byte(`not a json`))
	require.Error(t, err)
}

func TestJSONWithTypesDepth(t *testing.T) {
	js := `{"type": "Integer", "value": "1"}`
	for i := 0; i <= MaxJSONDepth; i++ {
		js = `{"type": "Array", "value": [` + js + `]}`
	}
	_, err := FromJSONWithTypes([]byte(js))
	require.ErrorIs(t, err, ErrTooDeep)

	js = strings.Replace(js, `{"type": "Array", "value": [`, "", 1)
	js = js[:len(js)-2]
	item, err := FromJSONWithTypes([]byte(js))
	require.NoError(t, err)

	_, err = ToJSONWithTypes(NewArray([]Item{item}))
	require.ErrorIs(t, err, ErrTooDeep)
}

func TestToJSONWithTypes(t *testing.T) {
	m := NewMap()
	m.Add(Make("key"), Make(-5))
	m.Add(Make(true), Null{})
	items := []Item{
		Null{},
		Make(true),
		Make(0),
		Make(-123456789),
		Make("Woolong"),
		NewBuffer([]byte{1, 2, 3}),
		Make([]Item{Make(1), Make("x")}),
		NewStruct([]Item{Make(false), NewArray(nil)}),
		m,
	}
	for _, it := range items {
		data, err := ToJSONWithTypes(it)
		require.NoError(t, err)
		actual, err := FromJSONWithTypes(data)
		require.NoError(t, err)
		require.True(t, it.Equals(actual), string(data))
	}

	data, err := ToJSONWithTypes(Make("Woolong"))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"ByteString","value":"V29vbG9uZw=="}`, string(data))

	data, err = ToJSONWithTypes(Null{})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Any"}`, string(data))

	_, err = ToJSONWithTypes(nil)
	require.Error(t, err)
}
