package emit

import (
	"encoding/binary"
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-txkit/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitInt(t *testing.T) {
	t.Run("minis one", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, -1)
		result := buf.Bytes()
		assert.Len(t, result, 1)
		assert.EqualValues(t, opcode.PUSHM1, result[0])
	})

	t.Run("zero", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 0)
		result := buf.Bytes()
		assert.Len(t, result, 1)
		assert.EqualValues(t, opcode.PUSH0, result[0])
	})

	t.Run("small ints", func(t *testing.T) {
		for i := int64(1); i <= 16; i++ {
			buf := io.NewBufBinWriter()
			Int(buf.BinWriter, i)
			result := buf.Bytes()
			require.Len(t, result, 1)
			require.EqualValues(t, opcode.PUSH0+opcode.Opcode(i), result[0])
		}
	})

	t.Run("1-byte int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 100)
		result := buf.Bytes()
		assert.Equal(t, []byte{byte(opcode.PUSHINT8), 100}, result)
	})

	t.Run("17", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 17)
		assert.Equal(t, []byte{byte(opcode.PUSHINT8), 17}, buf.Bytes())
	})

	t.Run("2-byte int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 1000)
		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHINT16, result[0])
		assert.EqualValues(t, 1000, binary.LittleEndian.Uint16(result[1:3]))
	})

	t.Run("sign byte", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 128)
		assert.Equal(t, []byte{byte(opcode.PUSHINT16), 0x80, 0x00}, buf.Bytes())
	})

	t.Run("negative padding", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, -129)
		assert.Equal(t, []byte{byte(opcode.PUSHINT16), 0x7F, 0xFF}, buf.Bytes())

		buf.Reset()
		Int(buf.BinWriter, -65537)
		assert.Equal(t, []byte{byte(opcode.PUSHINT32), 0xFF, 0xFF, 0xFE, 0xFF}, buf.Bytes())
	})

	t.Run("3-byte int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 65536)
		assert.Equal(t, []byte{byte(opcode.PUSHINT32), 0x00, 0x00, 0x01, 0x00}, buf.Bytes())
	})

	t.Run("8-byte int", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Int(buf.BinWriter, 1<<40)
		result := buf.Bytes()
		require.Len(t, result, 9)
		assert.EqualValues(t, opcode.PUSHINT64, result[0])
		assert.EqualValues(t, uint64(1<<40), binary.LittleEndian.Uint64(result[1:]))
	})
}

func TestEmitBigInt(t *testing.T) {
	t.Run("small", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		BigInt(buf.BinWriter, big.NewInt(5))
		assert.Equal(t, []byte{byte(opcode.PUSH5)}, buf.Bytes())
	})

	t.Run("16 bytes", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 64)
		BigInt(buf.BinWriter, n)
		result := buf.Bytes()
		require.Len(t, result, 17)
		assert.EqualValues(t, opcode.PUSHINT128, result[0])
		assert.EqualValues(t, 1, result[9])
	})

	t.Run("max", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 255)
		n.Sub(n, big.NewInt(1))
		BigInt(buf.BinWriter, n)
		require.NoError(t, buf.Err)
		result := buf.Bytes()
		require.Len(t, result, 33)
		assert.EqualValues(t, opcode.PUSHINT256, result[0])
		assert.EqualValues(t, 0x7F, result[32])
	})

	t.Run("min", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 255)
		n.Neg(n)
		BigInt(buf.BinWriter, n)
		require.NoError(t, buf.Err)
		result := buf.Bytes()
		require.Len(t, result, 33)
		assert.EqualValues(t, 0x80, result[32])
	})

	t.Run("too big", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		n := new(big.Int).Lsh(big.NewInt(1), 255)
		BigInt(buf.BinWriter, n)
		require.ErrorIs(t, buf.Err, ErrUnsupportedSize)
	})
}

func getSlice(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}

	return data
}

func TestBytes(t *testing.T) {
	t.Run("small slice", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, []byte{0, 1, 2, 3})

		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA1, result[0])
		assert.EqualValues(t, 4, result[1])
		assert.EqualValues(t, []byte{0, 1, 2, 3}, result[2:])
	})

	t.Run("slice with len <= 255", func(t *testing.T) {
		const size = 200

		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, getSlice(size))

		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA1, result[0])
		assert.EqualValues(t, size, result[1])
		assert.Equal(t, getSlice(size), result[2:])
	})

	t.Run("slice with len <= 65535", func(t *testing.T) {
		const size = 60000

		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, getSlice(size))

		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA2, result[0])
		assert.EqualValues(t, size, binary.LittleEndian.Uint16(result[1:3]))
		assert.Equal(t, getSlice(size), result[3:])
	})

	t.Run("slice with len > 65535", func(t *testing.T) {
		const size = 100000

		buf := io.NewBufBinWriter()
		Bytes(buf.BinWriter, getSlice(size))

		result := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHDATA4, result[0])
		assert.EqualValues(t, size, binary.LittleEndian.Uint32(result[1:5]))
		assert.Equal(t, getSlice(size), result[5:])
	})
}

func TestEmitBool(t *testing.T) {
	buf := io.NewBufBinWriter()
	Bool(buf.BinWriter, true)
	Bool(buf.BinWriter, false)
	result := buf.Bytes()
	assert.Equal(t, opcode.Opcode(result[0]), opcode.PUSH1)
	assert.Equal(t, opcode.Opcode(result[1]), opcode.PUSH0)
}

func TestEmitString(t *testing.T) {
	buf := io.NewBufBinWriter()
	str := "City Of Zion"
	String(buf.BinWriter, str)
	assert.Equal(t, buf.Len(), len(str)+2)
	assert.Equal(t, buf.Bytes()[2:], []byte(str))
}

func TestEmitUint160(t *testing.T) {
	u := util.Uint160{1, 2, 3}
	buf := io.NewBufBinWriter()
	Uint160(buf.BinWriter, u)
	result := buf.Bytes()
	assert.Equal(t, []byte{byte(opcode.PUSHDATA1), 20}, result[:2])
	assert.Equal(t, u.BytesBE(), result[2:])
}

func TestEmitSyscall(t *testing.T) {
	syscalls := []string{
		"System.Runtime.Log",
		"System.Runtime.Notify",
		"System.Contract.Call",
	}

	buf := io.NewBufBinWriter()
	for _, syscall := range syscalls {
		Syscall(buf.BinWriter, syscall)
		result := buf.Bytes()
		assert.Equal(t, opcode.Opcode(result[0]), opcode.SYSCALL)
		assert.Equal(t, interopnames.ToID([]byte(syscall)), binary.LittleEndian.Uint32(result[1:]))
		buf.Reset()
	}

	t.Run("known id", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Syscall(buf.BinWriter, interopnames.SystemContractCall)
		assert.Equal(t, []byte{byte(opcode.SYSCALL), 0x62, 0x7d, 0x5b, 0x52}, buf.Bytes())
	})

	t.Run("empty syscall", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Syscall(buf.BinWriter, "")
		assert.Error(t, buf.Err)
	})

	t.Run("syscall after error", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		err := errors.New("first error")
		buf.Err = err
		Syscall(buf.BinWriter, interopnames.SystemRuntimeLog)
		assert.Equal(t, err, buf.Err)
		assert.Equal(t, 0, buf.Len())
	})
}

func TestEmitArray(t *testing.T) {
	t.Run("good", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		var p *util.Uint160
		u := util.Uint160{1, 2}
		p = &u
		Array(buf.BinWriter, []any{int64(1), int64(2)}, p, u, big.NewInt(-1), 3, "str", true, []byte{0xCA, 0xFE}, nil)
		require.NoError(t, buf.Err)

		res := buf.Bytes()
		assert.EqualValues(t, opcode.PUSHNULL, res[0])
		assert.EqualValues(t, []byte{byte(opcode.PUSHDATA1), 2, 0xCA, 0xFE}, res[1:5])
		assert.EqualValues(t, opcode.PUSH1, res[5])
		assert.EqualValues(t, []byte{byte(opcode.PUSHDATA1), 3, 's', 't', 'r'}, res[6:11])
		assert.EqualValues(t, opcode.PUSH3, res[11])
		assert.EqualValues(t, opcode.PUSHM1, res[12])
		assert.EqualValues(t, []byte{byte(opcode.PUSHDATA1), 20}, res[13:15])
		assert.EqualValues(t, u.BytesBE(), res[15:35])
		assert.EqualValues(t, []byte{byte(opcode.PUSHDATA1), 20}, res[35:37])
		assert.EqualValues(t, u.BytesBE(), res[37:57])
		assert.EqualValues(t, []byte{byte(opcode.PUSH2), byte(opcode.PUSH1), byte(opcode.PUSH2), byte(opcode.PACK)}, res[57:61])
		assert.EqualValues(t, []byte{byte(opcode.PUSH9), byte(opcode.PACK)}, res[61:])
	})

	t.Run("empty", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Array(buf.BinWriter)
		require.NoError(t, buf.Err)
		assert.Equal(t, []byte{byte(opcode.PUSH0), byte(opcode.PACK)}, buf.Bytes())
	})

	t.Run("invalid type", func(t *testing.T) {
		buf := io.NewBufBinWriter()
		Array(buf.BinWriter, struct{}{})
		require.ErrorIs(t, buf.Err, ErrUnsupportedType)
	})

	t.Run("typed nils", func(t *testing.T) {
		var (
			n *big.Int
			u *util.Uint160
		)
		buf := io.NewBufBinWriter()
		Array(buf.BinWriter, n, u)
		require.NoError(t, buf.Err)
		assert.Equal(t, []byte{byte(opcode.PUSHNULL), byte(opcode.PUSHNULL), byte(opcode.PUSH2), byte(opcode.PACK)}, buf.Bytes())
	})
}

func TestEmitBigIntNil(t *testing.T) {
	buf := io.NewBufBinWriter()
	BigInt(buf.BinWriter, nil)
	require.ErrorIs(t, buf.Err, ErrUnsupportedType)
}

func TestEmitAppCall(t *testing.T) {
	h := util.Uint160{0xAA, 0xBB}
	acc := util.Uint160{1}
	buf := io.NewBufBinWriter()
	AppCall(buf.BinWriter, h, "balanceOf", acc)
	require.NoError(t, buf.Err)
	res := buf.Bytes()

	expected := io.NewBufBinWriter()
	Bytes(expected.BinWriter, acc.BytesBE())
	Opcodes(expected.BinWriter, opcode.PUSH1, opcode.PACK)
	Bytes(expected.BinWriter, []byte("balanceOf"))
	Bytes(expected.BinWriter, h.BytesBE())
	Instruction(expected.BinWriter, opcode.SYSCALL, []byte{0x62, 0x7d, 0x5b, 0x52})
	require.Equal(t, expected.Bytes(), res)
	require.Equal(t, 22+2+11+22+5, len(res))
}
