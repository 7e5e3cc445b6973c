package base58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/hash"
)

var (
	// ErrInvalidEncoding is returned when the string is not a valid base-58
	// string.
	ErrInvalidEncoding = errors.New("invalid base-58 string")
	// ErrMissingChecksum is returned for strings too short to contain a
	// checksum.
	ErrMissingChecksum = errors.New("invalid base-58 check string: missing checksum")
	// ErrChecksum is returned when the checksum doesn't match the data.
	ErrChecksum = errors.New("invalid base-58 check string: invalid checksum")
)

// CheckDecode implements base58-encoded string decoding with a hash-based
// checksum check.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	if len(b) < 5 {
		return nil, ErrMissingChecksum
	}

	if !bytes.Equal(hash.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, ErrChecksum
	}

	// Strip the 4 byte long hash.
	b = b[:len(b)-4]

	return b, nil
}

// CheckEncode encodes b into a base-58 string with a hash-based checksum.
func CheckEncode(b []byte) string {
	b = append(b[:len(b):len(b)], hash.Checksum(b)...)
	return base58.Encode(b)
}
