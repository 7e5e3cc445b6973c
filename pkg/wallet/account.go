package wallet

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/emit"
)

// ErrNoKey is returned on an attempt to sign with an account that has no
// private key.
var ErrNoKey = errors.New("account has no private key")

// Account represents a single-signature account. It holds the key pair
// along with its address and verification script.
type Account struct {
	// Private key, nil for watch-only accounts.
	privateKey *keys.PrivateKey

	// Public address of the account.
	Address string `json:"address"`

	// Label is a label the user had made for this account.
	Label string `json:"label"`

	// Verification script of the account.
	Script []byte `json:"script"`
}

// NewAccount creates a new Account with a random generated PrivateKey.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(priv), nil
}

// NewAccountFromWIF creates a new Account from the given WIF.
func NewAccountFromWIF(wif string) (*Account, error) {
	privKey, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(privKey), nil
}

// NewAccountFromPrivateKey creates a wallet from the given PrivateKey.
func NewAccountFromPrivateKey(p *keys.PrivateKey) *Account {
	pubKey := p.PublicKey()

	return &Account{
		privateKey: p,
		Address:    pubKey.Address(),
		Script:     pubKey.GetVerificationScript(),
	}
}

// PrivateKey returns private key corresponding to the account.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// PublicKey returns the public key of the account or nil for watch-only
// accounts.
func (a *Account) PublicKey() *keys.PublicKey {
	if a.privateKey == nil {
		return nil
	}
	return a.privateKey.PublicKey()
}

// ScriptHash returns the script hash (account) corresponding to the Address.
func (a *Account) ScriptHash() util.Uint160 {
	return hash.Hash160(a.Script)
}

// CanSign returns true when account has a private key.
func (a *Account) CanSign() bool {
	return a.privateKey != nil
}

// SignTx signs the transaction and adds the witness to it. Witnesses that
// were there before are kept, a witness for the same verification script is
// replaced.
func (a *Account) SignTx(t *transaction.Transaction) error {
	if !a.CanSign() {
		return ErrNoKey
	}
	w, err := Sign(t, a.privateKey)
	if err != nil {
		return err
	}
	t.SetWitness(w)
	return nil
}

// Sign returns the witness for the transaction made with the given key. The
// signature covers the unsigned serialization of the transaction.
func Sign(t *transaction.Transaction, key *keys.PrivateKey) (transaction.Witness, error) {
	data, err := t.EncodeHashableFields()
	if err != nil {
		return transaction.Witness{}, fmt.Errorf("can't sign: %w", err)
	}
	sig := key.Sign(data)

	buf := io.NewBufBinWriter()
	emit.Bytes(buf.BinWriter, sig)
	return transaction.Witness{
		InvocationScript:   buf.Bytes(),
		VerificationScript: key.PublicKey().GetVerificationScript(),
	}, nil
}
