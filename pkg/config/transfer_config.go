package config

import (
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/encoding/fixedn"
)

// Transfer contains parameters of token transfer transactions.
type Transfer struct {
	// NetworkFee is attached to every transfer, it's a decimal GAS amount
	// like 0.01.
	NetworkFee fixedn.Fixed8 `yaml:"NetworkFee"`
	// ValidUntilBlockIncrement is the number of blocks transfers stay valid
	// for starting from the current height.
	ValidUntilBlockIncrement uint32 `yaml:"ValidUntilBlockIncrement"`
}

// Validate returns an error if the fee is negative or transfers can't be
// valid for any block.
func (t *Transfer) Validate() error {
	if t.NetworkFee < 0 {
		return fmt.Errorf("%w: negative NetworkFee", ErrInvalidConfig)
	}
	if t.ValidUntilBlockIncrement == 0 {
		return fmt.Errorf("%w: ValidUntilBlockIncrement must be positive", ErrInvalidConfig)
	}
	return nil
}
