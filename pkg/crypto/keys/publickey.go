package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/neo-txkit/pkg/core/interop/interopnames"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/emit"
	"github.com/nspcc-dev/neo-txkit/pkg/vm/opcode"
)

// coordLen is the number of bytes used for a single coordinate.
const coordLen = 32

// ErrInvalidKey is returned for malformed public key encodings.
var ErrInvalidKey = errors.New("invalid public key")

// PublicKeys is a list of public keys.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	return keys[i].Cmp(keys[j]) == -1
}

// Contains checks whether the given key is a part of the list.
func (keys PublicKeys) Contains(pKey *PublicKey) bool {
	for _, key := range keys {
		if key.Equal(pKey) {
			return true
		}
	}
	return false
}

// Copy returns a shallow copy of the list.
func (keys PublicKeys) Copy() PublicKeys {
	if keys == nil {
		return nil
	}
	res := make(PublicKeys, len(keys))
	copy(res, keys)
	return res
}

// PublicKey represents a public key on either secp256r1 (the default) or
// secp256k1 curve.
type PublicKey ecdsa.PublicKey

// NewPublicKeyFromString returns a secp256r1 public key created from the
// given hex string.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b, elliptic.P256())
}

// NewPublicKeyFromBytes decodes the key from its compressed or
// uncompressed representation on the given curve.
func NewPublicKeyFromBytes(b []byte, curve elliptic.Curve) (*PublicKey, error) {
	pubKey := new(PublicKey)
	pubKey.Curve = curve
	if err := pubKey.DecodeBytes(b); err != nil {
		return nil, err
	}
	return pubKey, nil
}

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.Cmp(key) == 0
}

// Cmp compares two keys.
func (p *PublicKey) Cmp(key *PublicKey) int {
	if p.IsInfinity() || key.IsInfinity() {
		switch {
		case p.IsInfinity() && key.IsInfinity():
			return 0
		case p.IsInfinity():
			return -1
		default:
			return 1
		}
	}
	xCmp := p.X.Cmp(key.X)
	if xCmp != 0 {
		return xCmp
	}
	return p.Y.Cmp(key.Y)
}

// Bytes returns the compressed representation of the key (33 bytes) or a
// single zero byte for the point at infinity.
func (p *PublicKey) Bytes() []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}

	var (
		x       = p.X.Bytes()
		paddedX = append(bytes.Repeat([]byte{0x00}, coordLen-len(x)), x...)
		prefix  = byte(0x03)
	)

	if p.Y.Bit(0) == 0 {
		prefix = byte(0x02)
	}

	return append([]byte{prefix}, paddedX...)
}

// UncompressedBytes returns the 65-byte 0x04-prefixed representation.
func (p *PublicKey) UncompressedBytes() []byte {
	if p.IsInfinity() {
		return []byte{0x00}
	}
	res := make([]byte, 1+2*coordLen)
	res[0] = 0x04
	p.X.FillBytes(res[1 : 1+coordLen])
	p.Y.FillBytes(res[1+coordLen:])
	return res
}

// decodeCompressedY performs decompression of Y coordinate for the given X
// and Y's least significant bit on a short Weierstrass curve
// y² = x³ + ax + b where a is 0 for secp256k1 and -3 for secp256r1.
func decodeCompressedY(x *big.Int, ylsb uint, curve elliptic.Curve) (*big.Int, error) {
	var a *big.Int
	switch curve.(type) {
	case *secp256k1.KoblitzCurve:
		a = big.NewInt(0)
	default:
		a = big.NewInt(3)
	}
	cp := curve.Params()
	xCubed := new(big.Int).Exp(x, big.NewInt(3), cp.P)
	aX := new(big.Int).Mul(x, a)
	aX.Mod(aX, cp.P)
	ySquared := new(big.Int).Sub(xCubed, aX)
	ySquared.Add(ySquared, cp.B)
	ySquared.Mod(ySquared, cp.P)
	y := new(big.Int).ModSqrt(ySquared, cp.P)
	if y == nil {
		return nil, fmt.Errorf("%w: error computing Y for compressed point", ErrInvalidKey)
	}
	if y.Bit(0) != ylsb {
		y.Neg(y)
		y.Mod(y, cp.P)
	}
	return y, nil
}

// DecodeBytes decodes a PublicKey from the given slice of bytes. The whole
// slice must be used by the key.
func (p *PublicKey) DecodeBytes(data []byte) error {
	b := io.NewBinReaderFromBuf(data)
	p.DecodeBinary(b)
	if b.Err != nil {
		return b.Err
	}
	if b.Len() != 0 {
		return fmt.Errorf("%w: extra data", ErrInvalidKey)
	}
	return nil
}

// DecodeBinary decodes a PublicKey from the given BinReader. Curve is
// secp256r1 unless it was set before the call.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	var x, y *big.Int
	var err error

	prefix := r.ReadB()
	if r.Err != nil {
		return
	}

	curve := p.Curve
	if curve == nil {
		curve = elliptic.P256()
	}
	cp := curve.Params()
	switch prefix {
	case 0x00:
		p.Curve, p.X, p.Y = curve, nil, nil
		return
	case 0x02, 0x03:
		xbytes := make([]byte, coordLen)
		r.ReadBytes(xbytes)
		if r.Err != nil {
			return
		}
		x = new(big.Int).SetBytes(xbytes)
		if x.Cmp(cp.P) >= 0 {
			r.Err = fmt.Errorf("%w: X is bigger than P", ErrInvalidKey)
			return
		}
		y, err = decodeCompressedY(x, uint(prefix&0x1), curve)
		if err != nil {
			r.Err = err
			return
		}
	case 0x04:
		xbytes := make([]byte, coordLen)
		ybytes := make([]byte, coordLen)
		r.ReadBytes(xbytes)
		r.ReadBytes(ybytes)
		if r.Err != nil {
			return
		}
		x = new(big.Int).SetBytes(xbytes)
		y = new(big.Int).SetBytes(ybytes)
		if !curve.IsOnCurve(x, y) {
			r.Err = fmt.Errorf("%w: point is not on the %s curve", ErrInvalidKey, cp.Name)
			return
		}
	default:
		r.Err = fmt.Errorf("%w: prefix %d", ErrInvalidKey, prefix)
		return
	}
	p.Curve, p.X, p.Y = curve, x, y
}

// EncodeBinary encodes a PublicKey to the given BinWriter.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// GetVerificationScript returns the standard single-signature verification
// script for the key.
func (p *PublicKey) GetVerificationScript() []byte {
	buf := io.NewBufBinWriter()
	emit.Bytes(buf.BinWriter, p.Bytes())
	emit.Opcodes(buf.BinWriter, opcode.PUSHNULL)
	emit.Syscall(buf.BinWriter, interopnames.NeoCryptoECDsaVerify)

	return buf.Bytes()
}

// GetScriptHash returns a Hash160 of verification script for the key.
func (p *PublicKey) GetScriptHash() util.Uint160 {
	return hash.Hash160(p.GetVerificationScript())
}

// Address returns a base58-encoded address based on the key hash.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.GetScriptHash())
}

// Verify returns true if the 64-byte r||s signature is valid for the hash.
func (p *PublicKey) Verify(signature []byte, hash []byte) bool {
	if p.IsInfinity() || len(signature) != 2*coordLen {
		return false
	}
	rBytes := new(big.Int).SetBytes(signature[0:coordLen])
	sBytes := new(big.Int).SetBytes(signature[coordLen:])
	return ecdsa.Verify((*ecdsa.PublicKey)(p), hash, rBytes, sBytes)
}

// IsInfinity checks if the key is infinite (null, basically).
func (p *PublicKey) IsInfinity() bool {
	return p.X == nil && p.Y == nil
}

// StringCompressed returns the hex of the compressed key.
func (p *PublicKey) StringCompressed() string {
	return hex.EncodeToString(p.Bytes())
}

// String implements the Stringer interface.
func (p *PublicKey) String() string {
	return p.StringCompressed()
}

// MarshalJSON implements the json.Marshaler interface.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.Bytes()))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	return p.DecodeBytes(b)
}
