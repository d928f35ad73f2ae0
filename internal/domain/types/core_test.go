package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shieldwallet/internal/domain/types"
)

func TestParseAddress(t *testing.T) {
	a, err := types.ParseAddress(" 0x7e5f4552091a69125d5dfcb7b8c2659029395bdf ")
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", a.Hex())
	require.Equal(t, "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", types.AddressKey(a))

	for _, in := range []string{"", "7e5f4552091a69125d5dfcb7b8c2659029395bdf", "0x1234", "0xzz5f4552091a69125d5dfcb7b8c2659029395bdf"} {
		_, err := types.ParseAddress(in)
		require.Error(t, err, in)
	}
}

func TestIsZeroAddress(t *testing.T) {
	require.True(t, types.IsZeroAddress(types.Address{}))
	require.False(t, types.IsZeroAddress(types.BytesToAddress([]byte{1})))
}
