package util_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/nspcc-dev/neo-txkit/cli/util"
	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func newApp(buf *bytes.Buffer) *cli.App {
	app := cli.NewApp()
	app.Name = "neo-txkit"
	app.Writer = buf
	app.ErrWriter = buf
	app.Commands = util.NewCommands()
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func TestParse(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := util.Parse(nil)
		require.ErrorIs(t, err, util.ErrMissingParameter)
	})
	t.Run("integer", func(t *testing.T) {
		res, err := util.Parse([]string{"42"})
		require.NoError(t, err)
		require.Contains(t, res, "Integer to Hex")
		require.Contains(t, res, "2a")
	})
	t.Run("address", func(t *testing.T) {
		res, err := util.Parse([]string{"AbsnLb2bqPgAZ19jyFy66TcqZs3oGYvSJi"})
		require.NoError(t, err)
		require.Contains(t, res, "Address to BE ScriptHash")
		require.Contains(t, res, "Address to LE ScriptHash")
	})
	t.Run("string", func(t *testing.T) {
		res, err := util.Parse([]string{"neo"})
		require.NoError(t, err)
		require.Contains(t, res, "String to Hex")
		require.Contains(t, res, "6e656f")
		require.NotContains(t, res, "Integer to Hex")
	})
}

func TestStackItemCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	app := newApp(buf)

	require.NoError(t, app.Run([]string{"neo-txkit", "util", "stackitem", `{"type":"Integer","value":"42"}`}))
	require.Contains(t, buf.String(), "Type:\tInteger")
	require.Contains(t, buf.String(), "Value:\t42")

	buf.Reset()
	require.NoError(t, app.Run([]string{"neo-txkit", "util", "stackitem", `{"type":"ByteString","value":"bmVv"}`}))
	require.Contains(t, buf.String(), "Type:\tByteString")
	require.Contains(t, buf.String(), "Hex:\t6e656f")

	require.Error(t, app.Run([]string{"neo-txkit", "util", "stackitem", `{"type":"Unknown"}`}))
	require.Error(t, app.Run([]string{"neo-txkit", "util", "stackitem"}))
}

func TestTxCommand(t *testing.T) {
	tx := transaction.New([]byte{0x11}, 100)
	tx.ValidUntilBlock = 42
	raw := tx.Bytes()
	require.NotNil(t, raw)

	buf := new(bytes.Buffer)
	app := newApp(buf)
	require.NoError(t, app.Run([]string{"neo-txkit", "util", "tx", hex.EncodeToString(raw)}))
	require.Contains(t, buf.String(), "Hash:\t0x"+tx.Hash().StringLE())
	require.Contains(t, buf.String(), `"validuntilblock": 42`)

	require.Error(t, app.Run([]string{"neo-txkit", "util", "tx", "zz"}))
	require.Error(t, app.Run([]string{"neo-txkit", "util", "tx", "00"}))
}
