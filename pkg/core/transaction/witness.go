package transaction

import (
	"bytes"

	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

// Script length limits for witnesses.
const (
	MaxInvocationScript   = 1024
	MaxVerificationScript = 1024
)

// Witness proves that the account with the VerificationScript hash allowed
// the transaction, InvocationScript pushes signatures for it.
type Witness struct {
	InvocationScript   []byte `json:"invocation"`
	VerificationScript []byte `json:"verification"`
}

// DecodeBinary implements the Serializable interface.
func (w *Witness) DecodeBinary(br *io.BinReader) {
	w.InvocationScript = br.ReadVarBytes(MaxInvocationScript)
	w.VerificationScript = br.ReadVarBytes(MaxVerificationScript)
}

// EncodeBinary implements the Serializable interface.
func (w Witness) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(w.InvocationScript)
	bw.WriteVarBytes(w.VerificationScript)
}

// ScriptHash returns the account this witness is for.
func (w Witness) ScriptHash() util.Uint160 {
	return hash.Hash160(w.VerificationScript)
}

// Copy returns a deep copy of the Witness.
func (w Witness) Copy() Witness {
	return Witness{
		InvocationScript:   bytes.Clone(w.InvocationScript),
		VerificationScript: bytes.Clone(w.VerificationScript),
	}
}
