package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/nspcc-dev/rfc6979"
)

// PrivateKey represents a private key and provides a high level API around
// ecdsa.PrivateKey.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey creates a new random Secp256r1 private key.
func NewPrivateKey() (*PrivateKey, error) {
	return newPrivateKeyOnCurve(elliptic.P256())
}

// NewSecp256k1PrivateKey creates a new random Secp256k1 private key.
func NewSecp256k1PrivateKey() (*PrivateKey, error) {
	return newPrivateKeyOnCurve(secp256k1.S256())
}

func newPrivateKeyOnCurve(c elliptic.Curve) (*PrivateKey, error) {
	pk, err := ecdsa.GenerateKey(c, rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{*pk}, nil
}

// NewPrivateKeyFromHex returns a Secp256r1 PrivateKey created from the
// given hex string.
func NewPrivateKeyFromHex(str string) (*PrivateKey, error) {
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromBytes returns a Secp256r1 PrivateKey from the given
// byte slice.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	return newPrivateKeyFromBytesOnCurve(b, elliptic.P256())
}

// NewSecp256k1PrivateKeyFromBytes returns a Secp256k1 PrivateKey from the
// given byte slice.
func NewSecp256k1PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	return newPrivateKeyFromBytesOnCurve(b, secp256k1.S256())
}

func newPrivateKeyFromBytesOnCurve(b []byte, c elliptic.Curve) (*PrivateKey, error) {
	if len(b) != coordLen {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", coordLen, len(b),
		)
	}
	d := new(big.Int).SetBytes(b)
	if d.Sign() == 0 || d.Cmp(c.Params().N) >= 0 {
		return nil, fmt.Errorf("invalid private key: out of range for %s", c.Params().Name)
	}

	x, y := c.ScalarBaseMult(b)

	return &PrivateKey{
		ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{
				Curve: c,
				X:     x,
				Y:     y,
			},
			D: d,
		},
	}, nil
}

// NewPrivateKeyFromWIF returns a PrivateKey from the given WIF (wallet
// import format).
func NewPrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	w, err := WIFDecode(wif, WIFVersion)
	if err != nil {
		return nil, err
	}
	return w.PrivateKey, nil
}

// PublicKey derives the public key from the private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	result := PublicKey(p.PrivateKey.PublicKey)
	return &result
}

// WIF returns the (wallet import format) of the PrivateKey.
func (p *PrivateKey) WIF() string {
	w, err := WIFEncode(p.Bytes(), WIFVersion, true)
	// Only wrong key length can make it fail.
	if err != nil {
		panic(err)
	}
	return w
}

// Address derives the address that is coupled with the private key.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// GetScriptHash returns verification script hash for public key associated
// with the private key.
func (p *PrivateKey) GetScriptHash() util.Uint160 {
	return p.PublicKey().GetScriptHash()
}

// Sign signs arbitrary length data using the private key. It uses SHA256 to
// calculate hash and then SignHash to create a signature.
func (p *PrivateKey) Sign(data []byte) []byte {
	return p.SignHash(hash.Sha256(data))
}

// SignHash signs particular hash with the private key. The signature is
// deterministic (RFC 6979) and is returned as 64-byte r||s.
func (p *PrivateKey) SignHash(digest util.Uint256) []byte {
	r, s := rfc6979.SignECDSA(&p.PrivateKey, digest[:], sha256.New)
	return getSignatureSlice(p.PrivateKey.Curve, r, s)
}

func getSignatureSlice(curve elliptic.Curve, r, s *big.Int) []byte {
	params := curve.Params()
	curveOrderByteSize := params.P.BitLen() / 8
	signature := make([]byte, curveOrderByteSize*2)
	r.FillBytes(signature[:curveOrderByteSize])
	s.FillBytes(signature[curveOrderByteSize:])

	return signature
}

// String implements the stringer interface.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Bytes returns the underlying bytes of the PrivateKey.
func (p *PrivateKey) Bytes() []byte {
	result := make([]byte, coordLen)
	p.D.FillBytes(result)

	return result
}

// Destroy wipes the key value, the key is not usable after this call.
func (p *PrivateKey) Destroy() {
	p.D.SetInt64(0)
}
