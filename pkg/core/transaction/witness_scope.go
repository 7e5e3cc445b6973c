package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// WitnessScope represents set of witness flags for Transaction cosigner.
type WitnessScope byte

const (
	// FeeOnly is only valid for a sender, it can't be used during the execution.
	FeeOnly WitnessScope = 0
	// CalledByEntry means that this condition must hold: EntryScriptHash == CallingScriptHash.
	// The witness given on the first invocation automatically expires when
	// entering deeper internal invokes. It's the default for NEO/GAS transfers.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts define custom hash for contract-specific.
	CustomContracts WitnessScope = 0x10
	// CustomGroups define custom pubkey for group members.
	CustomGroups WitnessScope = 0x20
	// Global allows this witness in all contexts. It cannot be combined with
	// other flags.
	Global WitnessScope = 0x80
)

// ErrInvalidScope is returned for unknown or incompatible witness scopes.
var ErrInvalidScope = errors.New("invalid witness scope")

var scopeNames = []struct {
	scope WitnessScope
	name  string
}{
	{CalledByEntry, "CalledByEntry"},
	{CustomContracts, "CustomContracts"},
	{CustomGroups, "CustomGroups"},
	{Global, "Global"},
}

// String returns comma-separated scope names.
func (s WitnessScope) String() string {
	if s == FeeOnly {
		return "FeeOnly"
	}
	var names []string
	for _, sn := range scopeNames {
		if s&sn.scope != 0 {
			names = append(names, sn.name)
		}
	}
	if rest := s &^ (CalledByEntry | CustomContracts | CustomGroups | Global); rest != 0 {
		names = append(names, fmt.Sprintf("WitnessScope(%d)", byte(rest)))
	}
	return strings.Join(names, ", ")
}

// IsValid checks that s only has known flags and that Global is not mixed
// with anything else.
func (s WitnessScope) IsValid() error {
	if s&^(Global|CalledByEntry|CustomContracts|CustomGroups) != 0 {
		return fmt.Errorf("%w: unknown flags %#x", ErrInvalidScope, byte(s))
	}
	if s&Global != 0 && s != Global {
		return fmt.Errorf("%w: Global can't be combined with other scopes", ErrInvalidScope)
	}
	return nil
}

// ScopesFromString converts string of comma-separated scopes to a set of scopes
// (case-sensitive). String can combine several scopes, e.g. be any of: 'Global',
// 'CalledByEntry,CustomGroups' etc. An empty string is an error.
func ScopesFromString(s string) (WitnessScope, error) {
	var result WitnessScope
	for _, scopeStr := range strings.Split(s, ",") {
		scopeStr = strings.TrimSpace(scopeStr)
		if scopeStr == "FeeOnly" {
			continue
		}
		var found bool
		for _, sn := range scopeNames {
			if sn.name == scopeStr {
				result |= sn.scope
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrInvalidScope, scopeStr)
		}
	}
	if err := result.IsValid(); err != nil {
		return 0, err
	}
	return result, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (s WitnessScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *WitnessScope) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	scopes, err := ScopesFromString(js)
	if err != nil {
		return err
	}
	*s = scopes
	return nil
}
