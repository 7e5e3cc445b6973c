package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopesFromString(t *testing.T) {
	testCases := map[string]struct {
		in  string
		out WitnessScope
		ok  bool
	}{
		"global":             {"Global", Global, true},
		"called by entry":    {"CalledByEntry", CalledByEntry, true},
		"fee only":           {"FeeOnly", FeeOnly, true},
		"combined":           {"CalledByEntry, CustomGroups", CalledByEntry | CustomGroups, true},
		"combined no spaces": {"CustomContracts,CustomGroups", CustomContracts | CustomGroups, true},
		"global combined":    {"Global, CalledByEntry", 0, false},
		"case sensitive":     {"global", 0, false},
		"empty":              {"", 0, false},
		"unknown":            {"Whatever", 0, false},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s, err := ScopesFromString(tc.in)
			if !tc.ok {
				require.ErrorIs(t, err, ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, s)
		})
	}
}

func TestWitnessScopeString(t *testing.T) {
	require.Equal(t, "FeeOnly", FeeOnly.String())
	require.Equal(t, "Global", Global.String())
	require.Equal(t, "CalledByEntry, CustomContracts, CustomGroups",
		(CalledByEntry | CustomContracts | CustomGroups).String())
	require.Equal(t, "CalledByEntry, WitnessScope(2)", WitnessScope(3).String())
}

func TestWitnessScopeJSON(t *testing.T) {
	for _, s := range []WitnessScope{FeeOnly, Global, CalledByEntry, CalledByEntry | CustomGroups} {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var actual WitnessScope
		require.NoError(t, json.Unmarshal(data, &actual))
		require.Equal(t, s, actual)
	}
	var s WitnessScope
	require.Error(t, json.Unmarshal([]byte(`1`), &s))
	require.Error(t, json.Unmarshal([]byte(`"Unknown"`), &s))
}
