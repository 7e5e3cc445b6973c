/*
Package nep5 contains commands to work with NEP-5 tokens.
*/
package nep5

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-txkit/cli/flags"
	"github.com/nspcc-dev/neo-txkit/cli/input"
	"github.com/nspcc-dev/neo-txkit/cli/options"
	"github.com/nspcc-dev/neo-txkit/pkg/config"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-txkit/pkg/rpcclient"
	"github.com/nspcc-dev/neo-txkit/pkg/rpcclient/nep5"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	errNoToken   = errors.New("token is not specified, use --token")
	errNoAddress = errors.New("address is not specified, use --address")
	errNoAmount  = errors.New("amount is not specified, use --amount")
	errNoTo      = errors.New("recipient is not specified, use --to")
)

var (
	tokenFlag = cli.StringFlag{
		Name:  "token, t",
		Usage: "Token to use: 'gas', 'neo', contract hash (LE) or address",
	}
	addressFlag = flags.AddressFlag{
		Name:  "address, a",
		Usage: "Account address or script hash (LE)",
	}
	toFlag = flags.AddressFlag{
		Name:  "to",
		Usage: "Address to send tokens to",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "Amount of tokens to send, a decimal number like 1.5",
	}
	wifFlag = cli.StringFlag{
		Name:  "wif",
		Usage: "WIF of the sender key (read from the terminal if not given)",
	}
	netFeeFlag = flags.Fixed8Flag{
		Name:  "netfee",
		Usage: "Network fee to attach (overrides configuration)",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Don't send the transaction, print it as hex instead",
	}
)

// NewCommands returns 'nep5' command.
func NewCommands() []cli.Command {
	commonFlags := append([]cli.Flag{options.ConfigFile, options.Debug}, options.RPC...)
	return []cli.Command{{
		Name:  "nep5",
		Usage: "Work with NEP-5 tokens",
		Subcommands: []cli.Command{
			{
				Name:      "info",
				Usage:     "Print token information",
				UsageText: "info --token <token> [-r <endpoint>]",
				Action:    printInfo,
				Flags:     append([]cli.Flag{tokenFlag}, commonFlags...),
			},
			{
				Name:      "balance",
				Usage:     "Get token balance of an account",
				UsageText: "balance --token <token> --address <address> [-r <endpoint>]",
				Action:    getBalance,
				Flags:     append([]cli.Flag{tokenFlag, addressFlag}, commonFlags...),
			},
			{
				Name:  "transfer",
				Usage: "Transfer tokens",
				UsageText: `transfer --token <token> --to <address> --amount <amount> [--wif <wif>] [--netfee <fee>] [--dry-run] [-r <endpoint>]

   Creates a transfer transaction with the sender as the only cosigner
   (CalledByEntry scope), signs it and sends it to the network. System fee
   is taken from a test invocation, network fee from the configuration
   or --netfee.`,
				Action: transfer,
				Flags: append([]cli.Flag{
					tokenFlag,
					toFlag,
					amountFlag,
					wifFlag,
					netFeeFlag,
					dryRunFlag,
				}, commonFlags...),
			},
		},
	}}
}

// parseToken returns the contract hash for 'gas', 'neo', an LE hash or an
// address with the given version.
func parseToken(s string, version byte) (util.Uint160, error) {
	switch strings.ToLower(s) {
	case "":
		return util.Uint160{}, errNoToken
	case "gas":
		return nep5.GasHash, nil
	case "neo":
		return nep5.NeoHash, nil
	}
	h, err := flags.ParseAddress(s, version)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid token %q: %w", s, err)
	}
	return h, nil
}

// tokenEnv is everything a token command needs.
type tokenEnv struct {
	cfg    config.Config
	log    *zap.Logger
	client *rpcclient.Client
	token  *nep5.Token
	cancel func()
	// version is the address version used for parsing and printing.
	version byte
}

func (e *tokenEnv) close() {
	e.client.Close()
	e.cancel()
	_ = e.log.Sync()
}

func newTokenEnv(ctx *cli.Context) (*tokenEnv, cli.ExitCoder) {
	cfg, log, exitErr := options.GetLoggerAndConfig(ctx)
	if exitErr != nil {
		return nil, exitErr
	}
	version := cfg.ApplicationConfiguration.GetAddressVersion()
	h, err := parseToken(ctx.String("token"), version)
	if err != nil {
		_ = log.Sync()
		return nil, cli.NewExitError(err, 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	c, exitErr := options.GetRPCClient(gctx, ctx, cfg.RPC, log)
	if exitErr != nil {
		cancel()
		return nil, exitErr
	}
	netFee := int64(cfg.Transfer.NetworkFee)
	if fee, ok := flags.Fixed8FromContext(ctx, "netfee"); ok {
		netFee = int64(fee)
	}
	tok, err := nep5.NewBuilder().
		WithClient(c).
		FromContract(h).
		WithNetworkFee(netFee).
		WithValidUntilBlockIncrement(cfg.Transfer.ValidUntilBlockIncrement).
		WithLogger(log).
		Build()
	if err != nil {
		c.Close()
		cancel()
		return nil, cli.NewExitError(err, 1)
	}
	return &tokenEnv{cfg: cfg, log: log, client: c, token: tok, cancel: cancel, version: version}, nil
}

func printInfo(ctx *cli.Context) error {
	env, exitErr := newTokenEnv(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer env.close()

	name, err := env.token.Name()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get name: %w", err), 1)
	}
	symbol, err := env.token.Symbol()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get symbol: %w", err), 1)
	}
	decimals, err := env.token.Decimals()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get decimals: %w", err), 1)
	}
	supply, err := env.token.TotalSupply()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get total supply: %w", err), 1)
	}
	w := ctx.App.Writer
	h := env.token.Hash()
	fmt.Fprintf(w, "Name:\t%s\n", name)
	fmt.Fprintf(w, "Symbol:\t%s\n", symbol)
	fmt.Fprintf(w, "Hash:\t0x%s\n", h.StringLE())
	fmt.Fprintf(w, "Address:\t%s\n", address.Uint160ToStringWithVersion(h, env.version))
	fmt.Fprintf(w, "Decimals:\t%d\n", decimals)
	fmt.Fprintf(w, "Total supply:\t%s\n", fixedn.ToString(supply, decimals))
	return nil
}

func getBalance(ctx *cli.Context) error {
	addr := flags.AddressFromContext(ctx, "address")
	if !addr.IsSet {
		return cli.NewExitError(errNoAddress, 1)
	}
	env, exitErr := newTokenEnv(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer env.close()

	acc, err := addr.Uint160(env.version)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid address %q: %w", addr.Raw, err), 1)
	}
	symbol, err := env.token.Symbol()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get symbol: %w", err), 1)
	}
	decimals, err := env.token.Decimals()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get decimals: %w", err), 1)
	}
	balance, err := env.token.BalanceOf(acc)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get balance: %w", err), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Account:\t%s\n", address.Uint160ToStringWithVersion(acc, env.version))
	fmt.Fprintf(ctx.App.Writer, "Amount:\t%s %s\n", fixedn.ToString(balance, decimals), symbol)
	return nil
}

func transfer(ctx *cli.Context) error {
	to := flags.AddressFromContext(ctx, "to")
	if !to.IsSet {
		return cli.NewExitError(errNoTo, 1)
	}
	amountStr := ctx.String("amount")
	if amountStr == "" {
		return cli.NewExitError(errNoAmount, 1)
	}
	env, exitErr := newTokenEnv(ctx)
	if exitErr != nil {
		return exitErr
	}
	defer env.close()

	recipient, err := to.Uint160(env.version)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid recipient %q: %w", to.Raw, err), 1)
	}
	decimals, err := env.token.Decimals()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get decimals: %w", err), 1)
	}
	amount, err := fixedn.FromString(amountStr, decimals)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid amount %q: %w", amountStr, err), 1)
	}

	wif := ctx.String("wif")
	if wif == "" {
		wif, err = input.ReadPassword(ctx.App.ErrWriter, "Enter WIF > ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	acc, err := wallet.NewAccountFromWIF(wif)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid WIF: %w", err), 1)
	}

	tx, err := env.token.TransferTx(acc, recipient, amount)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to create transfer: %w", err), 1)
	}
	if ctx.Bool("dry-run") {
		fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(tx.Bytes()))
		return nil
	}
	h, err := env.client.SendRawTransaction(tx)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to send transaction: %w", err), 1)
	}
	env.log.Info("transfer sent",
		zap.String("from", address.Uint160ToStringWithVersion(acc.ScriptHash(), env.version)),
		zap.String("to", address.Uint160ToStringWithVersion(recipient, env.version)),
		zap.String("amount", amountStr),
		zap.Stringer("hash", h))
	fmt.Fprintf(ctx.App.Writer, "0x%s\n", h.StringLE())
	return nil
}
