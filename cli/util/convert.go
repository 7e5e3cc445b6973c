package util

import (
	"bytes"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/util/slice"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/stackitem"
	"github.com/urfave/cli"
)

// ErrMissingParameter is returned when a command is called without its
// argument.
var ErrMissingParameter = errors.New("missing argument")

// NewCommands returns util commands for neo-txkit CLI.
func NewCommands() []cli.Command {
	return []cli.Command{
		{
			Name:  "util",
			Usage: "Various helper commands",
			Subcommands: []cli.Command{
				{
					Name:  "convert",
					Usage: "Convert provided argument into other possible formats",
					UsageText: `convert <arg>

<arg> is an argument which is tried to be interpreted as an item of different types
        and converted to other formats. Strings are escaped and output in quotes.`,
					Action: handleParse,
				},
				{
					Name:      "stackitem",
					Usage:     "Decode a typed stack item JSON",
					UsageText: `stackitem '{"type":"Integer","value":"42"}'`,
					Action:    handleStackItem,
				},
				{
					Name:      "tx",
					Usage:     "Decode a hex-encoded transaction",
					UsageText: "tx <hex>",
					Action:    handleTx,
				},
			},
		},
	}
}

func handleParse(ctx *cli.Context) error {
	res, err := Parse(ctx.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprint(ctx.App.Writer, res)
	return nil
}

// Parse tries to interpret the first argument as an integer, a hex string,
// an address and a base64 string and returns everything it could convert it
// to as a table.
func Parse(args []string) (string, error) {
	if len(args) < 1 {
		return "", ErrMissingParameter
	}
	arg := args[0]
	buf := bytes.NewBuffer(nil)
	if val, err := strconv.ParseInt(arg, 10, 64); err == nil {
		bs := bigint.ToBytes(big.NewInt(val))
		buf.WriteString(fmt.Sprintf("Integer to Hex\t%s\n", hex.EncodeToString(bs)))
		buf.WriteString(fmt.Sprintf("Integer to Base64\t%s\n", base64.StdEncoding.EncodeToString(bs)))
	}
	noX := strings.TrimPrefix(arg, "0x")
	if rawStr, err := hex.DecodeString(noX); err == nil {
		if val, err := util.Uint160DecodeBytesBE(rawStr); err == nil {
			buf.WriteString(fmt.Sprintf("BE ScriptHash to Address\t%s\n", address.Uint160ToString(val)))
			buf.WriteString(fmt.Sprintf("LE ScriptHash to Address\t%s\n", address.Uint160ToString(val.Reverse())))
		}
		if pub, err := keys.NewPublicKeyFromBytes(rawStr, elliptic.P256()); err == nil {
			sh := pub.GetScriptHash()
			buf.WriteString(fmt.Sprintf("Public key to BE ScriptHash\t%s\n", sh.StringBE()))
			buf.WriteString(fmt.Sprintf("Public key to LE ScriptHash\t%s\n", sh.StringLE()))
			buf.WriteString(fmt.Sprintf("Public key to Address\t%s\n", address.Uint160ToString(sh)))
		}
		buf.WriteString(fmt.Sprintf("Hex to String\t%s\n", fmt.Sprintf("%q", string(rawStr))))
		buf.WriteString(fmt.Sprintf("Hex to Integer\t%s\n", bigint.FromBytes(rawStr)))
		buf.WriteString(fmt.Sprintf("Swap Endianness\t%s\n", hex.EncodeToString(slice.CopyReverse(rawStr))))
	}
	if addr, err := address.StringToUint160(arg); err == nil {
		buf.WriteString(fmt.Sprintf("Address to BE ScriptHash\t%s\n", addr.StringBE()))
		buf.WriteString(fmt.Sprintf("Address to LE ScriptHash\t%s\n", addr.StringLE()))
		buf.WriteString(fmt.Sprintf("Address to Base64 (BE)\t%s\n", base64.StdEncoding.EncodeToString(addr.BytesBE())))
		buf.WriteString(fmt.Sprintf("Address to Base64 (LE)\t%s\n", base64.StdEncoding.EncodeToString(addr.BytesLE())))
	}
	if rawStr, err := base64.StdEncoding.DecodeString(arg); err == nil {
		buf.WriteString(fmt.Sprintf("Base64 to String\t%s\n", fmt.Sprintf("%q", string(rawStr))))
		buf.WriteString(fmt.Sprintf("Base64 to BigInteger\t%s\n", bigint.FromBytes(rawStr)))
		if u, err := util.Uint160DecodeBytesBE(rawStr); err == nil {
			buf.WriteString(fmt.Sprintf("Base64 to BE ScriptHash\t%s\n", u.StringBE()))
			buf.WriteString(fmt.Sprintf("Base64 to LE ScriptHash\t%s\n", u.StringLE()))
			buf.WriteString(fmt.Sprintf("Base64 to Address (BE)\t%s\n", address.Uint160ToString(u)))
			buf.WriteString(fmt.Sprintf("Base64 to Address (LE)\t%s\n", address.Uint160ToString(u.Reverse())))
		}
	}

	buf.WriteString(fmt.Sprintf("String to Hex\t%s\n", hex.EncodeToString([]byte(arg))))
	buf.WriteString(fmt.Sprintf("String to Base64\t%s\n", base64.StdEncoding.EncodeToString([]byte(arg))))

	out := buf.Bytes()
	buf = bytes.NewBuffer(nil)
	w := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	if _, err := w.Write(out); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func handleStackItem(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 1 {
		return cli.NewExitError(ErrMissingParameter, 1)
	}
	item, err := stackitem.FromJSONWithTypes([]byte(args[0]))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to decode stack item: %w", err), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Type:\t%s\n", item.Type())
	fmt.Fprintf(ctx.App.Writer, "Value:\t%s\n", item)
	if b, ok := item.(*stackitem.ByteArray); ok {
		fmt.Fprintf(ctx.App.Writer, "Hex:\t%s\n", hex.EncodeToString(b.Bytes()))
		if addr, err := b.Address(); err == nil {
			fmt.Fprintf(ctx.App.Writer, "Address:\t%s\n", addr)
		}
	}
	return nil
}

func handleTx(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) < 1 {
		return cli.NewExitError(ErrMissingParameter, 1)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid hex: %w", err), 1)
	}
	tx, err := transaction.NewTransactionFromBytes(raw)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to decode transaction: %w", err), 1)
	}
	b, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Hash:\t0x%s\n", tx.Hash().StringLE())
	fmt.Fprintln(ctx.App.Writer, string(b))
	return nil
}
