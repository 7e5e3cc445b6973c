package emit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/nspcc-dev/neo-txkit/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/opcode"
)

var (
	// ErrUnsupportedSize is returned for integers that don't fit into
	// PUSHINT256.
	ErrUnsupportedSize = errors.New("integer is too big")
	// ErrUnsupportedType is returned by Array for parameters that can't be
	// pushed onto the stack.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Instruction emits a VM Instruction with data to the given buffer.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcodes emits a single VM Instruction without arguments to the given buffer.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Bool emits a bool type to the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcodes(w, opcode.PUSH1)
		return
	}
	Opcodes(w, opcode.PUSH0)
}

func padRight(s int, buf []byte) []byte {
	l := len(buf)
	if cap(buf) < s {
		nb := make([]byte, l, s)
		copy(nb, buf)
		buf = nb
	}
	buf = buf[:s]
	var fill byte
	if buf[l-1]&0x80 != 0 {
		fill = 0xFF
	}
	for i := l; i < s; i++ {
		buf[i] = fill
	}
	return buf
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	if smallInt(w, i) {
		return
	}
	bigInt(w, big.NewInt(i))
}

// BigInt emits a big-integer to the given buffer. Values that need more
// than 32 bytes set ErrUnsupportedSize, nil sets ErrUnsupportedType.
func BigInt(w *io.BinWriter, n *big.Int) {
	if w.Err != nil {
		return
	}
	if n == nil {
		w.Err = fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
		return
	}
	if n.IsInt64() && smallInt(w, n.Int64()) {
		return
	}
	bigInt(w, n)
}

func smallInt(w *io.BinWriter, i int64) bool {
	switch {
	case i == -1:
		Opcodes(w, opcode.PUSHM1)
	case i >= 0 && i <= 16:
		Opcodes(w, opcode.PUSH0+opcode.Opcode(i))
	default:
		return false
	}
	return true
}

func bigInt(w *io.BinWriter, n *big.Int) {
	buf := bigint.ToBytes(n)
	if len(buf) > bigint.MaxBytesLen {
		w.Err = fmt.Errorf("%w: %d bytes", ErrUnsupportedSize, len(buf))
		return
	}
	// len(buf) != 0 because zero is a small integer.
	padSize := byte(8 - bits.LeadingZeros8(byte(len(buf)-1)))
	Opcodes(w, opcode.PUSHINT8+opcode.Opcode(padSize))
	w.WriteBytes(padRight(1<<padSize, buf))
}

// Array emits an array of elements to the given buffer: elements are pushed
// in reverse order followed by their count and PACK.
func Array(w *io.BinWriter, es ...any) {
	for i := len(es) - 1; i >= 0; i-- {
		if w.Err != nil {
			return
		}
		switch e := es[i].(type) {
		case []any:
			Array(w, e...)
		case int64:
			Int(w, e)
		case int:
			Int(w, int64(e))
		case uint32:
			Int(w, int64(e))
		case *big.Int:
			if e == nil {
				Opcodes(w, opcode.PUSHNULL)
				continue
			}
			BigInt(w, e)
		case string:
			String(w, e)
		case util.Uint160:
			Bytes(w, e.BytesBE())
		case *util.Uint160:
			if e == nil {
				Opcodes(w, opcode.PUSHNULL)
				continue
			}
			Bytes(w, e.BytesBE())
		case util.Uint256:
			Bytes(w, e.BytesBE())
		case []byte:
			Bytes(w, e)
		case bool:
			Bool(w, e)
		default:
			if es[i] != nil {
				w.Err = fmt.Errorf("%w: %T", ErrUnsupportedType, e)
				return
			}
			Opcodes(w, opcode.PUSHNULL)
		}
	}
	Int(w, int64(len(es)))
	Opcodes(w, opcode.PACK)
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n < 0x100:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n < 0x10000:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Uint160 emits a script hash in its binary (wire) order.
func Uint160(w *io.BinWriter, u util.Uint160) {
	Bytes(w, u.BytesBE())
}

// Syscall emits the syscall API to the given buffer.
// Syscall API string cannot be 0.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, interopnames.ToID([]byte(api)))
	Instruction(w, opcode.SYSCALL, buf)
}

// AppCall emits a call to the given method of the contract with the given
// arguments packed into an array.
func AppCall(w *io.BinWriter, scriptHash util.Uint160, operation string, args ...any) {
	Array(w, args...)
	String(w, operation)
	Uint160(w, scriptHash)
	Syscall(w, interopnames.SystemContractCall)
}
