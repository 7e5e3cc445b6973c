package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
	"github.com/stretchr/testify/require"
)

type keyTestCase struct {
	wif        string
	privateKey string
	publicKey  string
	scriptHash string
	address    string
}

var keyTestCases = []keyTestCase{
	{
		wif:        "KxhEDBQyyEFymvfJD96q8stMbJMbZUb6D1PmXqBWZDU2WvbvVs9o",
		privateKey: "2bfe58ab6d9fd575bdc3a624e4825dd2b375d64ac033fbc46ea79dbab4f69a3e",
		publicKey:  "03428aa0ed0d97b4d7702523963e2d1b0fe0ada638757ba31f7ef1308c806c2639",
		scriptHash: "dc809472d2a91ce0a4ad90b0f183a147970623d8",
		address:    "AbsnLb2bqPgAZ19jyFy66TcqZs3oGYvSJi",
	},
	{
		wif:        "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn",
		privateKey: "0000000000000000000000000000000000000000000000000000000000000001",
		publicKey:  "036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		scriptHash: "25670d212dead1f2c89ee291c2ed272ff51c477e",
		address:    "AKBe6j1GrjsmfjBdjoxgrF6M7aQKgwWGNH",
	},
}

func TestPrivateKey(t *testing.T) {
	for _, testCase := range keyTestCases {
		privKey, err := NewPrivateKeyFromHex(testCase.privateKey)
		require.NoError(t, err)
		require.Equal(t, testCase.address, privKey.Address())
		require.Equal(t, testCase.wif, privKey.WIF())
		require.Equal(t, testCase.scriptHash, privKey.GetScriptHash().StringBE())
		require.Equal(t, testCase.publicKey, hex.EncodeToString(privKey.PublicKey().Bytes()))
	}
}

func TestPrivateKeyFromWIF(t *testing.T) {
	for _, testCase := range keyTestCases {
		key, err := NewPrivateKeyFromWIF(testCase.wif)
		require.NoError(t, err)
		require.Equal(t, testCase.privateKey, key.String())
	}
}

func TestPrivateKeyFromBytesBad(t *testing.T) {
	_, err := NewPrivateKeyFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = NewPrivateKeyFromBytes(make([]byte, 32))
	require.Error(t, err)

	_, err = NewPrivateKeyFromHex("zz")
	require.Error(t, err)

	// Curve order.
	_, err = NewPrivateKeyFromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
	require.Error(t, err)
}

func TestSigning(t *testing.T) {
	// RFC 6979 A.2.5, P-256 with SHA-256.
	privateKey, err := NewPrivateKeyFromHex("C9AFA9D845BA75166B5C215767B1D6934E50C3DB36E89B127B8A622B120F6721")
	require.NoError(t, err)

	data := privateKey.Sign([]byte("sample"))

	r := "EFD48B2AACB6A8FD1140DD9CD45E81D69D2C877B56AAF991C34D0EA84EAF3716"
	s := "F7CB1C942D657C41D436C7A1B6E29F65F3E900DBB9AFF4064DC4AB2F843ACDA8"
	require.Equal(t, strings.ToLower(r+s), hex.EncodeToString(data))

	pub := privateKey.PublicKey()
	require.True(t, pub.Verify(data, hash.Sha256([]byte("sample")).BytesBE()))
	require.False(t, pub.Verify(data, hash.Sha256([]byte("example")).BytesBE()))
	require.False(t, pub.Verify(data[:63], hash.Sha256([]byte("sample")).BytesBE()))
	require.Equal(t, data, privateKey.Sign([]byte("sample")))
}

func TestSignVerifyRandom(t *testing.T) {
	for _, gen := range []func() (*PrivateKey, error){NewPrivateKey, NewSecp256k1PrivateKey} {
		priv, err := gen()
		require.NoError(t, err)

		msg := []byte("transfer")
		sig := priv.Sign(msg)
		require.Len(t, sig, 64)
		require.True(t, priv.PublicKey().Verify(sig, hash.Sha256(msg).BytesBE()))

		other, err := gen()
		require.NoError(t, err)
		require.False(t, other.PublicKey().Verify(sig, hash.Sha256(msg).BytesBE()))
	}
}

func TestPrivateKeyDestroy(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	priv.Destroy()
	require.Equal(t, make([]byte, 32), priv.Bytes())
}
