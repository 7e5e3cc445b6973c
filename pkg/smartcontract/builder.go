package smartcontract

import (
	"bytes"

	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/emit"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/opcode"
)

// Builder is used to create arbitrary scripts from the set of methods it provides.
// Each method emits some set of opcodes performing an action and (in most cases)
// returning a result. These chunks of code can be composed together to perform
// several actions in the same script (and therefore in the same transaction), but
// the end result (in terms of state changes and/or resulting items) of the script
// totally depends on what it contains and that's the responsibility of the Builder
// user. Builder is mostly used to create transaction scripts (also known as
// "entry scripts").
//
// Builder is not safe for concurrent use.
type Builder struct {
	bw *io.BufBinWriter
}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{bw: io.NewBufBinWriter()}
}

// InvokeMethod is the most generic contract method invoker, the code it produces
// packs all of the arguments given into an array and calls some method of the
// contract. The correctness of this invocation (number and type of parameters) is
// out of scope of this method, as well as return value, if contract's method returns
// something this value just remains on the execution stack.
func (b *Builder) InvokeMethod(contract util.Uint160, method string, params ...any) {
	emit.AppCall(b.bw.BinWriter, contract, method, params...)
}

// Assert emits an ASSERT opcode that expects a Boolean value to be on the stack,
// checks if it's true and aborts the transaction if it's not.
func (b *Builder) Assert() {
	emit.Opcodes(b.bw.BinWriter, opcode.ASSERT)
}

// InvokeWithAssert emits an invocation of the method (see InvokeMethod) with
// an ASSERT after the invocation. The presumption is that the method called
// returns a Boolean value signalling the success or failure of the operation.
// NEP-5 'transfer' does exactly that, so a failed transfer makes the whole
// transaction FAULT.
func (b *Builder) InvokeWithAssert(contract util.Uint160, method string, params ...any) {
	b.InvokeMethod(contract, method, params...)
	b.Assert()
}

// Syscall emits a system call with no arguments besides those already pushed.
func (b *Builder) Syscall(api string) {
	emit.Syscall(b.bw.BinWriter, api)
}

// Len returns the number of bytes emitted so far.
func (b *Builder) Len() int {
	return b.bw.Len()
}

// Script returns a copy of the current script, you can't use Builder after
// invoking this method unless you Reset it. An error is returned if any of
// the previous emissions failed.
func (b *Builder) Script() ([]byte, error) {
	err := b.bw.Err
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b.bw.Bytes()), nil
}

// Reset resets the Builder, allowing to reuse it for a new script. Scripts
// returned before are not affected.
func (b *Builder) Reset() {
	b.bw.Reset()
}
