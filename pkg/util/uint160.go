package util

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util/slice"
)

// Uint160Size is the size of Uint160 in bytes.
const Uint160Size = 20

// Uint160 is a 20 byte long unsigned integer. It's stored in the order the
// hash function produces it which is also the order used for binary
// serialization (scripts, transactions). Human-readable representation
// (like "0x" prefixed strings shown by nodes) is the reversed one.
type Uint160 [Uint160Size]uint8

var (
	// ErrInvalidLength is returned when decoding from a slice or string of
	// the wrong size.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidHex is returned when decoding a malformed hex string.
	ErrInvalidHex = errors.New("invalid hex")
)

// Uint160DecodeStringLE attempts to decode the given string (in LE
// representation, "0x" prefix is allowed) into a Uint160.
func Uint160DecodeStringLE(s string) (Uint160, error) {
	var u Uint160
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint160Size*2 {
		return u, fmt.Errorf("%w: expected string size of %d got %d", ErrInvalidLength, Uint160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return Uint160DecodeBytesLE(b)
}

// Uint160DecodeStringBE attempts to decode the given string (in BE
// representation) into a Uint160.
func Uint160DecodeStringBE(s string) (Uint160, error) {
	var u Uint160
	if len(s) != Uint160Size*2 {
		return u, fmt.Errorf("%w: expected string size of %d got %d", ErrInvalidLength, Uint160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeBytesBE attempts to decode the given bytes (in BE
// representation) into a Uint160.
func Uint160DecodeBytesBE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("%w: expected byte size of %d got %d", ErrInvalidLength, Uint160Size, len(b))
	}
	copy(u[:], b)
	return
}

// Uint160DecodeBytesLE attempts to decode the given bytes (in LE
// representation) into a Uint160.
func Uint160DecodeBytesLE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("%w: expected byte size of %d got %d", ErrInvalidLength, Uint160Size, len(b))
	}
	for i := range b {
		u[Uint160Size-i-1] = b[i]
	}
	return
}

// BytesBE returns a byte slice representation of u.
func (u Uint160) BytesBE() []byte {
	return u[:]
}

// BytesLE returns a little-endian byte representation of u.
func (u Uint160) BytesLE() []byte {
	return slice.CopyReverse(u[:])
}

// String implements the fmt.Stringer interface, it returns the LE
// representation because that's what users see everywhere.
func (u Uint160) String() string {
	return u.StringLE()
}

// StringBE returns a string representation of u (in BE representation).
func (u Uint160) StringBE() string {
	return hex.EncodeToString(u.BytesBE())
}

// StringLE returns a string representation of u (in LE representation).
func (u Uint160) StringLE() string {
	return hex.EncodeToString(u.BytesLE())
}

// Reverse returns a reversed representation of u.
func (u Uint160) Reverse() (r Uint160) {
	for i := 0; i < Uint160Size; i++ {
		r[i] = u[Uint160Size-i-1]
	}
	return
}

// Equals returns true if both Uint160 values are the same.
func (u Uint160) Equals(other Uint160) bool {
	return u == other
}

// Less returns true if this value is less than the given Uint160 value. It's
// primarily intended to be used for sorting purposes.
func (u Uint160) Less(other Uint160) bool {
	return bytes.Compare(u[:], other[:]) < 0
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint160) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*u, err = Uint160DecodeStringLE(js)
	return err
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + u.StringLE() + `"`), nil
}

// EncodeBinary implements the io.Serializable interface.
func (u Uint160) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(u[:])
}

// DecodeBinary implements the io.Serializable interface.
func (u *Uint160) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(u[:])
}
