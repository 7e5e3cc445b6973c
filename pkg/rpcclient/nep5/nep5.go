/*
Package nep5 provides an RPC-based wrapper for NEP-5 tokens.

Tokens are created with a Builder that needs an RPC client and a contract
hash. Read-only methods (Name, Symbol, Decimals, TotalSupply, BalanceOf) run
test invocations and strictly check the returned stack. Transfer methods
build, test-run, sign and (optionally) send a transfer transaction.
*/
package nep5

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/nspcc-dev/neo-txkit/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-txkit/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-txkit/pkg/smartcontract"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/wallet"
	"go.uber.org/zap"
)

const (
	// MaxValidDecimals is the maximum value 'decimals' contract method can
	// return to be considered as valid. It's log10(2^256), higher values
	// don't make any sense on a VM with 256-bit integers.
	MaxValidDecimals = 77

	// DefaultNetworkFee is the network fee (in GAS fractions) attached to
	// transfers unless configured otherwise.
	DefaultNetworkFee = 1000000
	// DefaultValidUntilBlockIncrement is the number of blocks a transfer
	// stays valid for.
	DefaultValidUntilBlockIncrement = 5760
)

var (
	// ErrMissingField is returned from Builder.Build when the client or the
	// contract hash is not set.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidAmount is returned for non-positive transfer amounts.
	ErrInvalidAmount = errors.New("invalid amount: must be positive")
)

// Invoker is used by Token to make test invocations.
type Invoker interface {
	InvokeScript(script []byte, witnesses ...util.Uint160) (*result.Invoke, error)
}

// RPCClient is the set of RPC methods Token needs, rpcclient.Client
// implements it.
type RPCClient interface {
	Invoker
	GetBlockCount() (uint32, error)
	SendRawTransaction(*transaction.Transaction) (util.Uint256, error)
}

// Token provides access to NEP-5 methods of a single contract. Token is
// immutable and safe for concurrent use if the client is.
type Token struct {
	client       RPCClient
	hash         util.Uint160
	netFee       int64
	vubIncrement uint32
	log          *zap.Logger

	// Locally known metadata, native tokens don't need a call to answer.
	meta *metadata
}

type metadata struct {
	name     string
	symbol   string
	decimals int
}

// Hash returns the contract hash of the token.
func (t *Token) Hash() util.Uint160 {
	return t.hash
}

func (t *Token) call(method string, params ...any) (*result.Invoke, error) {
	b := smartcontract.NewBuilder()
	b.InvokeMethod(t.hash, method, params...)
	script, err := b.Script()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s script: %w", method, err)
	}
	return t.client.InvokeScript(script)
}

// Name returns the token name.
func (t *Token) Name() (string, error) {
	if t.meta != nil {
		return t.meta.name, nil
	}
	return unwrap.UTF8String(t.call("name"))
}

// Symbol returns a short token identifier (like "neo" or "gas").
func (t *Token) Symbol() (string, error) {
	if t.meta != nil {
		return t.meta.symbol, nil
	}
	return unwrap.PrintableASCIIString(t.call("symbol"))
}

// Decimals returns the number of decimals used by token. Values less than 0
// or more than MaxValidDecimals are considered to be invalid even if returned
// by the contract.
func (t *Token) Decimals() (int, error) {
	if t.meta != nil {
		return t.meta.decimals, nil
	}
	r, err := t.call("decimals")
	dec, err := unwrap.LimitedInt64(r, err, 0, MaxValidDecimals)
	return int(dec), err
}

// TotalSupply returns the total token supply currently available.
func (t *Token) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(t.call("totalSupply"))
}

// BalanceOf returns the token balance of the given account. The result must
// be an Integer, any other stack item type is an error.
func (t *Token) BalanceOf(account util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(t.call("balanceOf", account))
}

// TransferScript returns a script that transfers the amount of tokens from
// one account to another and fails if the transfer is not successful.
func (t *Token) TransferScript(from, to util.Uint160, amount *big.Int) ([]byte, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	b := smartcontract.NewBuilder()
	b.InvokeWithAssert(t.hash, "transfer", from, to, amount)
	return b.Script()
}

// TransferTx creates a transaction transferring the amount of tokens from the
// account to the given script hash and signs it. The account is the only
// cosigner with CalledByEntry scope. The system fee is taken from a test
// invocation of the script, the transaction is valid for the configured
// number of blocks from the current height.
func (t *Token) TransferTx(acc *wallet.Account, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	if !acc.CanSign() {
		return nil, wallet.ErrNoKey
	}
	from := acc.ScriptHash()
	script, err := t.TransferScript(from, to, amount)
	if err != nil {
		return nil, err
	}
	res, err := t.client.InvokeScript(script, from)
	if err = unwrap.Nothing(res, err); err != nil {
		return nil, fmt.Errorf("test invocation failed: %w", err)
	}
	height, err := t.client.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get block count: %w", err)
	}

	tx := transaction.New(script, res.GasConsumed)
	tx.NetworkFee = t.netFee
	tx.ValidUntilBlock = height + t.vubIncrement
	tx.AddCosigner(transaction.Cosigner{
		Account: from,
		Scopes:  transaction.CalledByEntry,
	})
	if err := acc.SignTx(tx); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	t.log.Debug("transfer transaction created",
		zap.Stringer("token", t.hash),
		zap.Stringer("hash", tx.Hash()),
		zap.Int64("sysfee", tx.SystemFee),
		zap.Uint32("vub", tx.ValidUntilBlock))
	return tx, nil
}

// Transfer creates a transfer transaction (see TransferTx) and sends it to
// the network returning its hash.
func (t *Token) Transfer(acc *wallet.Account, to util.Uint160, amount *big.Int) (util.Uint256, error) {
	tx, err := t.TransferTx(acc, to, amount)
	if err != nil {
		return util.Uint256{}, err
	}
	return t.client.SendRawTransaction(tx)
}
