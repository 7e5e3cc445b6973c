package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

const (
	// MaxScriptLength is the limit for transaction's script length.
	MaxScriptLength = math.MaxUint16
	// MaxTransactionSize is the upper limit size in bytes that a transaction can reach.
	MaxTransactionSize = 102400
	// MaxAttributes is maximum number of attributes including cosigners
	// that can be contained within a transaction.
	MaxAttributes = 16
	// MaxWitnesses is the maximum number of witnesses in a transaction.
	MaxWitnesses = MaxAttributes + 1
)

// ErrInvalidTransaction is returned for structurally wrong transactions.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is a process recorded in the Neo blockchain.
type Transaction struct {
	// The trading version which is currently 0.
	Version uint8

	// Random number to avoid hash collision.
	Nonce uint32

	// Fee to be burned.
	SystemFee int64

	// Fee to be distributed to consensus nodes.
	NetworkFee int64

	// Maximum blockchain height exceeding which
	// transaction should fail verification.
	ValidUntilBlock uint32

	// Transaction attributes.
	Attributes []Attribute

	// Accounts that have to witness the transaction.
	Cosigners []Cosigner

	// Code to run in NeoVM for this transaction.
	Script []byte

	// Transaction witnesses (only present in the signed form).
	Scripts []Witness

	// size is transaction's serialized size.
	size int

	// Hash of the transaction (double SHA256 of the unsigned part), cached.
	hash   util.Uint256
	hashed bool
}

// NewTransactionFromBytes decodes byte array into *Transaction.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	if len(b) > MaxTransactionSize {
		return nil, fmt.Errorf("%w: %d bytes", io.ErrTooBig, len(b))
	}
	tx := &Transaction{}
	r := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left unread", ErrInvalidTransaction, r.Len())
	}
	return tx, nil
}

// New returns a new transaction to execute the given script and pay the given
// system fee. Version is 0 and nonce is random.
func New(script []byte, sysFee int64) *Transaction {
	return &Transaction{
		Version:    0,
		Nonce:      rand.Uint32(),
		Script:     script,
		SystemFee:  sysFee,
		Attributes: []Attribute{},
		Cosigners:  []Cosigner{},
		Scripts:    []Witness{},
	}
}

// Hash returns the hash of the transaction.
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashed {
		if t.createHash() != nil {
			panic("failed to compute hash!")
		}
	}
	return t.hash
}

// AddCosigner appends the cosigner, resetting the cached hash.
func (t *Transaction) AddCosigner(c Cosigner) {
	t.Cosigners = append(t.Cosigners, c)
	t.invalidate()
}

// AddAttribute appends the attribute, resetting the cached hash.
func (t *Transaction) AddAttribute(a Attribute) {
	t.Attributes = append(t.Attributes, a)
	t.invalidate()
}

// SetWitness adds the witness to the transaction, a witness with the same
// verification script hash is replaced. The cached size is reset, the hash
// doesn't depend on witnesses.
func (t *Transaction) SetWitness(w Witness) {
	t.size = 0
	h := w.ScriptHash()
	for i := range t.Scripts {
		if t.Scripts[i].ScriptHash().Equals(h) {
			t.Scripts[i] = w
			return
		}
	}
	t.Scripts = append(t.Scripts, w)
}

// invalidate drops cached values, it must be called after modifying fields
// directly once Hash or Size was requested.
func (t *Transaction) invalidate() {
	t.hashed = false
	t.size = 0
}

// decodeHashableFields decodes the fields that are used for signing the
// transaction, which are all fields except the scripts.
func (t *Transaction) decodeHashableFields(br *io.BinReader) {
	t.Version = br.ReadB()
	t.Nonce = br.ReadU32LE()
	t.SystemFee = int64(br.ReadU64LE())
	t.NetworkFee = int64(br.ReadU64LE())
	t.ValidUntilBlock = br.ReadU32LE()
	io.ReadArray(br, &t.Attributes, MaxAttributes)
	io.ReadArray(br, &t.Cosigners, MaxAttributes)
	t.Script = br.ReadVarBytes(MaxScriptLength)
	if br.Err == nil {
		br.Err = t.isValid()
	}
}

// DecodeBinary implements the Serializable interface.
func (t *Transaction) DecodeBinary(br *io.BinReader) {
	t.invalidate()
	t.decodeHashableFields(br)
	if br.Err != nil {
		return
	}
	io.ReadArray(br, &t.Scripts, MaxWitnesses)
	if br.Err != nil {
		return
	}
	// Create the hash of the transaction at decode, so we dont need
	// to do it anymore.
	br.Err = t.createHash()
	if br.Err == nil {
		_ = t.Size()
	}
}

// EncodeBinary implements the Serializable interface.
func (t *Transaction) EncodeBinary(bw *io.BinWriter) {
	t.encodeHashableFields(bw)
	io.WriteArray(bw, t.Scripts)
}

// encodeHashableFields encodes the fields that are used for signing the
// transaction, which are all fields except the scripts.
func (t *Transaction) encodeHashableFields(bw *io.BinWriter) {
	if len(t.Script) == 0 {
		bw.Err = fmt.Errorf("%w: no script", ErrInvalidTransaction)
		return
	}
	bw.WriteB(t.Version)
	bw.WriteU32LE(t.Nonce)
	bw.WriteU64LE(uint64(t.SystemFee))
	bw.WriteU64LE(uint64(t.NetworkFee))
	bw.WriteU32LE(t.ValidUntilBlock)
	io.WriteArray(bw, t.Attributes)
	io.WriteArray(bw, t.Cosigners)
	bw.WriteVarBytes(t.Script)
}

// EncodeHashableFields returns the unsigned serialization of the
// transaction, it's the data that gets hashed and signed.
func (t *Transaction) EncodeHashableFields() ([]byte, error) {
	bw := io.NewBufBinWriter()
	t.encodeHashableFields(bw.BinWriter)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return bw.Bytes(), nil
}

// GetSignedPart returns a part of the transaction which must be signed.
func (t *Transaction) GetSignedPart() []byte {
	b, err := t.EncodeHashableFields()
	if err != nil {
		return nil
	}
	return b
}

// createHash creates the hash of the transaction.
func (t *Transaction) createHash() error {
	b, err := t.EncodeHashableFields()
	if err != nil {
		return err
	}
	t.hash = hash.DoubleSha256(b)
	t.hashed = true
	return nil
}

// Bytes converts the transaction to []byte (signed form).
func (t *Transaction) Bytes() []byte {
	buf := io.NewBufBinWriter()
	t.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// Size returns size of the serialized transaction.
func (t *Transaction) Size() int {
	if t.size == 0 {
		t.size = len(t.Bytes())
	}
	return t.size
}

// isValid checks whether decoded/unmarshalled transaction has all fields valid.
func (t *Transaction) isValid() error {
	if t.Version > 0 {
		return fmt.Errorf("%w: only version 0 is supported", ErrInvalidTransaction)
	}
	if t.SystemFee < 0 {
		return fmt.Errorf("%w: negative system fee", ErrInvalidTransaction)
	}
	if t.NetworkFee < 0 {
		return fmt.Errorf("%w: negative network fee", ErrInvalidTransaction)
	}
	if len(t.Attributes)+len(t.Cosigners) > MaxAttributes {
		return fmt.Errorf("%w: too many attributes", ErrInvalidTransaction)
	}
	for i := range t.Cosigners {
		for j := i + 1; j < len(t.Cosigners); j++ {
			if t.Cosigners[i].Account.Equals(t.Cosigners[j].Account) {
				return fmt.Errorf("%w: duplicate cosigner %s", ErrInvalidTransaction, t.Cosigners[i].Account.StringLE())
			}
		}
	}
	if len(t.Script) == 0 {
		return fmt.Errorf("%w: no script", ErrInvalidTransaction)
	}
	return nil
}

// transactionJSON is used for JSON I/O of Transaction.
type transactionJSON struct {
	TxID            util.Uint256  `json:"hash"`
	Size            int           `json:"size"`
	Version         uint8         `json:"version"`
	Nonce           uint32        `json:"nonce"`
	SystemFee       fixedn.Fixed8 `json:"sysfee"`
	NetworkFee      fixedn.Fixed8 `json:"netfee"`
	ValidUntilBlock uint32        `json:"validuntilblock"`
	Attributes      []Attribute   `json:"attributes"`
	Cosigners       []Cosigner    `json:"cosigners"`
	Script          []byte        `json:"script"`
	Scripts         []Witness     `json:"witnesses"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	if !t.hashed {
		if err := t.createHash(); err != nil {
			return nil, err
		}
	}
	tx := transactionJSON{
		TxID:            t.hash,
		Size:            t.Size(),
		Version:         t.Version,
		Nonce:           t.Nonce,
		SystemFee:       fixedn.Fixed8(t.SystemFee),
		NetworkFee:      fixedn.Fixed8(t.NetworkFee),
		ValidUntilBlock: t.ValidUntilBlock,
		Attributes:      t.Attributes,
		Cosigners:       t.Cosigners,
		Script:          t.Script,
		Scripts:         t.Scripts,
	}
	return json.Marshal(tx)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	tx := new(transactionJSON)
	if err := json.Unmarshal(data, tx); err != nil {
		return err
	}
	t.Version = tx.Version
	t.Nonce = tx.Nonce
	t.SystemFee = int64(tx.SystemFee)
	t.NetworkFee = int64(tx.NetworkFee)
	t.ValidUntilBlock = tx.ValidUntilBlock
	t.Attributes = tx.Attributes
	t.Cosigners = tx.Cosigners
	t.Script = tx.Script
	t.Scripts = tx.Scripts
	t.invalidate()
	if err := t.isValid(); err != nil {
		return err
	}
	if t.Hash() != tx.TxID {
		return fmt.Errorf("%w: txid doesn't match transaction hash", ErrInvalidTransaction)
	}
	_ = t.Size()
	return nil
}
