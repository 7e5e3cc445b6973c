package transaction

import (
	"github.com/nspcc-dev/neo-txkit/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

// The maximum number of AllowedContracts or AllowedGroups.
const maxSubitems = 16

// Cosigner is an additional account that has to witness the transaction
// within the given scope.
type Cosigner struct {
	Account          util.Uint160      `json:"account"`
	Scopes           WitnessScope      `json:"scopes"`
	AllowedContracts []util.Uint160    `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey `json:"allowedgroups,omitempty"`
}

// EncodeBinary implements the Serializable interface.
func (c Cosigner) EncodeBinary(bw *io.BinWriter) {
	bw.WriteBytes(c.Account[:])
	bw.WriteB(byte(c.Scopes))
	if c.Scopes&CustomContracts != 0 {
		io.WriteArray(bw, c.AllowedContracts)
	}
	if c.Scopes&CustomGroups != 0 {
		io.WriteArray(bw, c.AllowedGroups)
	}
}

// DecodeBinary implements the Serializable interface.
func (c *Cosigner) DecodeBinary(br *io.BinReader) {
	br.ReadBytes(c.Account[:])
	c.Scopes = WitnessScope(br.ReadB())
	if br.Err != nil {
		return
	}
	if err := c.Scopes.IsValid(); err != nil {
		br.Err = err
		return
	}
	c.AllowedContracts, c.AllowedGroups = nil, nil
	if c.Scopes&CustomContracts != 0 {
		io.ReadArray(br, &c.AllowedContracts, maxSubitems)
	}
	if c.Scopes&CustomGroups != 0 {
		n := br.ReadVarUint()
		if br.Err != nil {
			return
		}
		if n > maxSubitems {
			br.Err = io.ErrTooBig
			return
		}
		c.AllowedGroups = make([]*keys.PublicKey, n)
		for i := range c.AllowedGroups {
			c.AllowedGroups[i] = new(keys.PublicKey)
			c.AllowedGroups[i].DecodeBinary(br)
		}
	}
}

func (c *Cosigner) toJSONMap(m map[string]any) {
	m["account"] = c.Account
	m["scopes"] = c.Scopes
	if len(c.AllowedContracts) != 0 {
		m["allowedcontracts"] = c.AllowedContracts
	}
	if len(c.AllowedGroups) != 0 {
		m["allowedgroups"] = c.AllowedGroups
	}
}

// Copy creates a deep copy of the Cosigner, public keys are shared.
func (c *Cosigner) Copy() *Cosigner {
	if c == nil {
		return nil
	}
	cp := *c
	if c.AllowedContracts != nil {
		cp.AllowedContracts = append([]util.Uint160(nil), c.AllowedContracts...)
	}
	if c.AllowedGroups != nil {
		cp.AllowedGroups = keys.PublicKeys(c.AllowedGroups).Copy()
	}
	return &cp
}
