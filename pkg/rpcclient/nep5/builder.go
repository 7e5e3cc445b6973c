package nep5

import (
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/emit"
	"go.uber.org/zap"
)

// Builder collects Token parameters, they can be set in any order and are
// only checked by Build. Builder is not safe for concurrent use.
type Builder struct {
	client       RPCClient
	hash         *util.Uint160
	netFee       int64
	vubIncrement uint32
	log          *zap.Logger
}

// NewBuilder returns a Builder with default fee settings.
func NewBuilder() *Builder {
	return &Builder{
		netFee:       DefaultNetworkFee,
		vubIncrement: DefaultValidUntilBlockIncrement,
	}
}

// WithClient sets the RPC client used by the token.
func (b *Builder) WithClient(c RPCClient) *Builder {
	b.client = c
	return b
}

// FromContract sets the token contract hash.
func (b *Builder) FromContract(h util.Uint160) *Builder {
	b.hash = &h
	return b
}

// WithNetworkFee sets the network fee for transfers.
func (b *Builder) WithNetworkFee(fee int64) *Builder {
	b.netFee = fee
	return b
}

// WithValidUntilBlockIncrement sets the number of blocks transfers stay
// valid for.
func (b *Builder) WithValidUntilBlockIncrement(n uint32) *Builder {
	b.vubIncrement = n
	return b
}

// WithLogger sets the logger used for debug messages.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.log = l
	return b
}

// Build checks parameters and returns a Token. ErrMissingField is returned
// if the client or the contract hash is not set.
func (b *Builder) Build() (*Token, error) {
	if b.client == nil {
		return nil, fmt.Errorf("%w: client", ErrMissingField)
	}
	if b.hash == nil {
		return nil, fmt.Errorf("%w: contract hash", ErrMissingField)
	}
	if b.netFee < 0 {
		return nil, fmt.Errorf("negative network fee: %d", b.netFee)
	}
	log := b.log
	if log == nil {
		log = zap.NewNop()
	}
	return &Token{
		client:       b.client,
		hash:         *b.hash,
		netFee:       b.netFee,
		vubIncrement: b.vubIncrement,
		log:          log,
		meta:         nativeMeta[*b.hash],
	}, nil
}

// Native token hashes.
var (
	GasHash = nativeHash(interopnames.NeoNativeTokensGAS)
	NeoHash = nativeHash(interopnames.NeoNativeTokensNEO)
)

// nativeHash returns the hash of a native contract, it's the hash of its
// SYSCALL script.
func nativeHash(api string) util.Uint160 {
	w := io.NewBufBinWriter()
	emit.Syscall(w.BinWriter, api)
	return hash.Hash160(w.Bytes())
}

// nativeMeta holds constant metadata of native tokens, it's not requested
// from the node.
var nativeMeta = map[util.Uint160]*metadata{
	GasHash: {name: "GAS", symbol: "gas", decimals: 8},
	NeoHash: {name: "NEO", symbol: "neo", decimals: 0},
}

// NewGas returns the native GAS token using the given client and default
// transfer settings.
func NewGas(c RPCClient) (*Token, error) {
	return NewBuilder().WithClient(c).FromContract(GasHash).Build()
}

// NewNeo returns the native NEO token using the given client and default
// transfer settings.
func NewNeo(c RPCClient) (*Token, error) {
	return NewBuilder().WithClient(c).FromContract(NeoHash).Build()
}
