package address

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/base58"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

const (
	// NEO3Prefix is the first byte of an address for NEO3 preview networks.
	NEO3Prefix byte = 0x17
)

// Prefix is the byte used to prepend to addresses when encoding them, it can
// be changed and defaults to 23 (0x17), the standard NEO prefix.
var Prefix = NEO3Prefix

var (
	// ErrInvalidFormat is returned for strings that are not base-58 or have
	// a wrong decoded length.
	ErrInvalidFormat = errors.New("invalid address format")
	// ErrChecksumMismatch is returned when the address checksum is wrong.
	ErrChecksumMismatch = errors.New("address checksum mismatch")
	// ErrUnknownVersion is returned when the address has an unexpected
	// version byte.
	ErrUnknownVersion = errors.New("unknown address version")
)

// Uint160ToString returns the "NEO address" from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	return Uint160ToStringWithVersion(u, Prefix)
}

// Uint160ToStringWithVersion returns the address for the given script hash
// using the given version byte.
func Uint160ToStringWithVersion(u util.Uint160, version byte) string {
	b := append([]byte{version}, u.BytesBE()...)
	return base58.CheckEncode(b)
}

// StringToUint160 attempts to decode the given NEO address string
// into a Uint160.
func StringToUint160(s string) (util.Uint160, error) {
	return StringToUint160WithVersion(s, Prefix)
}

// StringToUint160WithVersion decodes the address s expecting the given
// version byte.
func StringToUint160WithVersion(s string, version byte) (u util.Uint160, err error) {
	b, err := base58.CheckDecode(s)
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return u, fmt.Errorf("%w: %s", ErrChecksumMismatch, s)
	case err != nil:
		return u, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(b) != util.Uint160Size+1 {
		return u, fmt.Errorf("%w: wrong decoded length %d", ErrInvalidFormat, len(b)+4)
	}
	if b[0] != version {
		return u, fmt.Errorf("%w: %#x", ErrUnknownVersion, b[0])
	}
	return util.Uint160DecodeBytesBE(b[1:])
}

// IsValid reports whether s is a well-formed address with a matching
// checksum and the current Prefix.
func IsValid(s string) bool {
	_, err := StringToUint160(s)
	return err == nil
}
