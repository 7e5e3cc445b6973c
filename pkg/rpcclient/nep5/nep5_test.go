package nep5

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-txkit/pkg/wallet"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	err       error
	res       *result.Invoke
	height    uint32
	sent      *transaction.Transaction
	scripts   [][]byte
	witnesses [][]util.Uint160
}

func (c *testClient) InvokeScript(script []byte, witnesses ...util.Uint160) (*result.Invoke, error) {
	c.scripts = append(c.scripts, script)
	c.witnesses = append(c.witnesses, witnesses)
	return c.res, c.err
}

func (c *testClient) GetBlockCount() (uint32, error) {
	return c.height, c.err
}

func (c *testClient) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	c.sent = tx
	return tx.Hash(), c.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{State: "HALT", GasConsumed: 9007990, Stack: items}
}

func newTestToken(t *testing.T, c *testClient) *Token {
	tok, err := NewBuilder().WithClient(c).FromContract(util.Uint160{1, 2, 3}).Build()
	require.NoError(t, err)
	return tok
}

func TestBuilder(t *testing.T) {
	c := new(testClient)
	h := util.Uint160{1, 2, 3}

	t.Run("no contract", func(t *testing.T) {
		b := NewBuilder().WithClient(c)
		_, err := b.Build()
		require.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("no client", func(t *testing.T) {
		b := NewBuilder().FromContract(h)
		_, err := b.Build()
		require.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("nothing", func(t *testing.T) {
		_, err := NewBuilder().Build()
		require.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("negative fee", func(t *testing.T) {
		_, err := NewBuilder().WithClient(c).FromContract(h).WithNetworkFee(-1).Build()
		require.Error(t, err)
	})
	t.Run("any order", func(t *testing.T) {
		tok, err := NewBuilder().FromContract(h).WithClient(c).Build()
		require.NoError(t, err)
		require.Equal(t, h, tok.Hash())

		tok, err = NewBuilder().WithClient(c).FromContract(h).Build()
		require.NoError(t, err)
		require.Equal(t, h, tok.Hash())
	})
}

func TestReadOnlyMethods(t *testing.T) {
	c := new(testClient)
	tok := newTestToken(t, c)

	c.res = halt(stackitem.Make("Example"))
	name, err := tok.Name()
	require.NoError(t, err)
	require.Equal(t, "Example", name)

	c.res = halt(stackitem.Make("EXP"))
	sym, err := tok.Symbol()
	require.NoError(t, err)
	require.Equal(t, "EXP", sym)

	c.res = halt(stackitem.Make(8))
	dec, err := tok.Decimals()
	require.NoError(t, err)
	require.Equal(t, 8, dec)

	c.res = halt(stackitem.Make(100))
	_, err = tok.Decimals()
	require.Error(t, err)

	c.res = halt(stackitem.Make(1000000000000000))
	ts, err := tok.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000000000000000), ts)

	acc := util.Uint160{3, 2, 1}
	c.res = halt(stackitem.Make(6500))
	bal, err := tok.BalanceOf(acc)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(6500), bal)
	script := c.scripts[len(c.scripts)-1]
	require.True(t, bytes.Contains(script, []byte("balanceOf")))
	require.True(t, bytes.Contains(script, acc.BytesBE()))

	t.Run("balance must be integer", func(t *testing.T) {
		c.res = halt(stackitem.Make([]byte{0x64, 0x19}))
		_, err := tok.BalanceOf(acc)
		require.ErrorIs(t, err, stackitem.ErrInvalidCast)
	})
	t.Run("fault", func(t *testing.T) {
		c.res = &result.Invoke{State: "FAULT", FaultException: "oops"}
		_, err := tok.TotalSupply()
		require.Error(t, err)
	})
	t.Run("transport error", func(t *testing.T) {
		c.err = errors.New("connection refused")
		defer func() { c.err = nil }()
		_, err := tok.Name()
		require.ErrorIs(t, err, c.err)
	})
}

func TestTransferScript(t *testing.T) {
	tok := newTestToken(t, new(testClient))
	from, to := util.Uint160{0xaa}, util.Uint160{0xbb}

	for _, amount := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		_, err := tok.TransferScript(from, to, amount)
		require.ErrorIs(t, err, ErrInvalidAmount)
	}

	script, err := tok.TransferScript(from, to, big.NewInt(20))
	require.NoError(t, err)

	expected := []byte{0x00, 0x14, 0x0c, 0x14}
	expected = append(expected, to.BytesBE()...)
	expected = append(expected, 0x0c, 0x14)
	expected = append(expected, from.BytesBE()...)
	expected = append(expected, 0x13, 0xc0, 0x0c, 0x08)
	expected = append(expected, []byte("transfer")...)
	expected = append(expected, 0x0c, 0x14)
	expected = append(expected, tok.Hash().BytesBE()...)
	expected = append(expected, 0x41, 0x62, 0x7d, 0x5b, 0x52, 0x38)
	require.Equal(t, expected, script)
}

func TestTransfer(t *testing.T) {
	acc, err := wallet.NewAccountFromWIF("KxhEDBQyyEFymvfJD96q8stMbJMbZUb6D1PmXqBWZDU2WvbvVs9o")
	require.NoError(t, err)
	to := util.Uint160{0xbb}

	c := &testClient{res: halt(), height: 100}
	tok, err := NewBuilder().WithClient(c).FromContract(util.Uint160{1, 2, 3}).
		WithNetworkFee(1230000).WithValidUntilBlockIncrement(10).Build()
	require.NoError(t, err)

	t.Run("invalid amount", func(t *testing.T) {
		_, err := tok.TransferTx(acc, to, big.NewInt(-5))
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
	t.Run("watch-only", func(t *testing.T) {
		wo := &wallet.Account{Address: acc.Address, Script: acc.Script}
		_, err := tok.TransferTx(wo, to, big.NewInt(1))
		require.ErrorIs(t, err, wallet.ErrNoKey)
	})
	t.Run("fault", func(t *testing.T) {
		c.res = &result.Invoke{State: "FAULT"}
		defer func() { c.res = halt() }()
		_, err := tok.TransferTx(acc, to, big.NewInt(1))
		require.Error(t, err)
	})

	tx, err := tok.TransferTx(acc, to, big.NewInt(20))
	require.NoError(t, err)
	require.Equal(t, int64(9007990), tx.SystemFee)
	require.Equal(t, int64(1230000), tx.NetworkFee)
	require.Equal(t, uint32(110), tx.ValidUntilBlock)
	require.Equal(t, []transaction.Cosigner{{Account: acc.ScriptHash(), Scopes: transaction.CalledByEntry}}, tx.Cosigners)
	require.Equal(t, []util.Uint160{acc.ScriptHash()}, c.witnesses[len(c.witnesses)-1])

	require.Equal(t, 1, len(tx.Scripts))
	require.Equal(t, acc.Script, tx.Scripts[0].VerificationScript)
	data, err := tx.EncodeHashableFields()
	require.NoError(t, err)
	require.True(t, acc.PublicKey().Verify(tx.Scripts[0].InvocationScript[2:], hash.Sha256(data).BytesBE()))

	decoded, err := transaction.NewTransactionFromBytes(tx.Bytes())
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), decoded.Hash())

	txHash, err := tok.Transfer(acc, to, big.NewInt(20))
	require.NoError(t, err)
	require.Equal(t, c.sent.Hash(), txHash)
}

func TestNativeTokens(t *testing.T) {
	c := new(testClient)

	gas, err := NewGas(c)
	require.NoError(t, err)
	require.Equal(t, "0x8c23f196d8a1bfd103a9dcb1f9ccf0c611377d3b", "0x"+gas.Hash().StringLE())
	name, err := gas.Name()
	require.NoError(t, err)
	require.Equal(t, "GAS", name)
	sym, err := gas.Symbol()
	require.NoError(t, err)
	require.Equal(t, "gas", sym)
	dec, err := gas.Decimals()
	require.NoError(t, err)
	require.Equal(t, 8, dec)

	neo, err := NewNeo(c)
	require.NoError(t, err)
	require.Equal(t, "0x9bde8f209c88dd0e7ca3bf0af0f476cdd8207789", "0x"+neo.Hash().StringLE())
	dec, err = neo.Decimals()
	require.NoError(t, err)
	require.Equal(t, 0, dec)
	require.Equal(t, 0, len(c.scripts))

	custom, err := NewBuilder().WithClient(c).FromContract(GasHash).WithNetworkFee(5).Build()
	require.NoError(t, err)
	sym, err = custom.Symbol()
	require.NoError(t, err)
	require.Equal(t, "gas", sym)
	require.Equal(t, 0, len(c.scripts))

	_, err = NewGas(nil)
	require.ErrorIs(t, err, ErrMissingField)
}
