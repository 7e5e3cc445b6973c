package flags

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/address"
	"github.com/nspcc-dev/neo-txkit/pkg/encoding/base58"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
	"github.com/urfave/cli"
)

// Address is a wrapper for an address or script hash given on the command
// line. It's checked for format when parsed, the address version is
// checked when it's converted with Uint160.
type Address struct {
	IsSet bool
	Raw   string
}

// AddressFlag is a flag with type Uint160, it accepts addresses and LE
// script hashes.
type AddressFlag struct {
	Name  string
	Usage string
	Value Address
}

var (
	_ flag.Value = (*Address)(nil)
	_ cli.Flag   = AddressFlag{}
)

// String implements the fmt.Stringer interface.
func (a Address) String() string {
	return a.Raw
}

// Set implements the flag.Value interface.
func (a *Address) Set(s string) error {
	if err := checkAddress(s); err != nil {
		return cli.NewExitError(err, 1)
	}
	a.IsSet = true
	a.Raw = s
	return nil
}

// Uint160 converts the address to Uint160 using the given address version.
func (a *Address) Uint160(version byte) (util.Uint160, error) {
	if !a.IsSet {
		// It is a programmer error to call this method without
		// checking if the value was provided.
		panic("address was not set")
	}
	return ParseAddress(a.Raw, version)
}

// String returns a readable representation of this value
// (for usage defaults).
func (f AddressFlag) String() string {
	var names []string
	eachName(f.Name, func(name string) {
		names = append(names, getNameHelp(name))
	})

	return strings.Join(names, ", ") + "\t" + f.Usage
}

// GetName returns the name of the flag.
func (f AddressFlag) GetName() string {
	return f.Name
}

// Apply populates the flag given the flag set and environment.
// Ignores errors.
func (f AddressFlag) Apply(set *flag.FlagSet) {
	eachName(f.Name, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
}

// AddressFromContext returns the named address flag, IsSet is false if it
// wasn't given.
func AddressFromContext(ctx *cli.Context, name string) Address {
	v, ok := ctx.Generic(name).(*Address)
	if !ok {
		return Address{}
	}
	return *v
}

func isScriptHash(s string) bool {
	const uint160size = 2 * util.Uint160Size
	return len(s) == uint160size || (len(s) == uint160size+2 && strings.HasPrefix(s, "0x"))
}

// checkAddress checks that s is an LE script hash or a Base58Check string
// of the address length with any version byte.
func checkAddress(s string) error {
	if isScriptHash(s) {
		_, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
		return err
	}
	b, err := base58.CheckDecode(s)
	if err != nil {
		return fmt.Errorf("%w: %v", address.ErrInvalidFormat, err)
	}
	if len(b) != util.Uint160Size+1 {
		return fmt.Errorf("%w: wrong length", address.ErrInvalidFormat)
	}
	return nil
}

// ParseAddress parses a Uint160 from either an LE string or an address with
// the given version.
func ParseAddress(s string, version byte) (util.Uint160, error) {
	if isScriptHash(s) {
		return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	}
	return address.StringToUint160WithVersion(s, version)
}
