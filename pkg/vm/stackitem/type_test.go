package stackitem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	for typ, name := range typeNames {
		require.Equal(t, name, typ.String())
		require.True(t, typ.IsValid())

		actual, err := FromString(name)
		require.NoError(t, err)
		require.Equal(t, typ, actual)
	}

	for _, s := range []string{"ByteArray", "integer", ""} {
		_, err := FromString(s)
		require.ErrorIs(t, err, ErrInvalidType, s)
	}
	require.False(t, InvalidT.IsValid())
	require.False(t, Type(0x22).IsValid())
	require.Equal(t, "INVALID", InvalidT.String())
}
