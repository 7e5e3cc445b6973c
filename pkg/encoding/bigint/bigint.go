package bigint

import (
	"math/big"

	"github.com/nspcc-dev/neo-txkit/pkg/util/slice"
)

// MaxBytesLen is the maximum length of a serialized integer suitable for Neo VM.
const MaxBytesLen = 32 // 256-bit signed integer

var bigOne = big.NewInt(1)

// FromBytesUnsigned converts data in little-endian format to an unsigned integer.
func FromBytesUnsigned(data []byte) *big.Int {
	bs := slice.CopyReverse(data)
	return new(big.Int).SetBytes(bs)
}

// FromBytes converts data in little-endian two's complement format to
// an integer. Empty slice is zero.
func FromBytes(data []byte) *big.Int {
	if len(data) == 0 {
		return big.NewInt(0)
	}
	n := FromBytesUnsigned(data)
	if data[len(data)-1]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(bigOne, uint(len(data)*8)))
	}
	return n
}

// ToBytes converts an integer to a slice in little-endian format.
// Note: NEO3 serialization differs from default C# BigInteger.ToByteArray()
// when n == 0. For zero is equal to empty slice in NEO3.
func ToBytes(n *big.Int) []byte {
	var b []byte
	switch n.Sign() {
	case 0:
		return []byte{}
	case 1:
		b = n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
	default:
		// Two's complement of n is the bitwise inversion of |n|-1.
		m := new(big.Int).Add(n, bigOne)
		b = m.Abs(m).Bytes()
		for i := range b {
			b[i] = ^b[i]
		}
		if len(b) == 0 || b[0]&0x80 == 0 {
			b = append([]byte{0xFF}, b...)
		}
	}
	slice.Reverse(b)
	return b
}
