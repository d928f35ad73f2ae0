package units_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/units"
)

func TestParseUnits(t *testing.T) {
	cases := []struct {
		in       string
		decimals uint8
		want     uint64
	}{
		{"1", 5, 100000},
		{"1.5", 5, 150000},
		{".25", 5, 25000},
		{"0.00001", 5, 1},
		{"42", 0, 42},
		{"1.", 18, 1000000000000000000},
	}
	for _, c := range cases {
		got, err := units.ParseUnits(c.in, c.decimals)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got.Uint64(), c.in)
	}
}

func TestParseUnits_Rejects(t *testing.T) {
	for _, in := range []string{"", "-1", "1.000001", "abc", "1.2.3", "1e5"} {
		_, err := units.ParseUnits(in, 5)
		require.Error(t, err, in)
	}
}

func TestFormatUnits(t *testing.T) {
	require.Equal(t, "1", units.FormatUnits(uint256.NewInt(100000), 5))
	require.Equal(t, "1.5", units.FormatUnits(uint256.NewInt(150000), 5))
	require.Equal(t, "0.00001", units.FormatUnits(uint256.NewInt(1), 5))
	require.Equal(t, "0", units.FormatUnits(uint256.NewInt(0), 18))
	require.Equal(t, "7", units.FormatUnits(uint256.NewInt(7), 0))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	v := new(uint256.Int).SetAllOne()
	s := units.FormatUnits(v, 18)
	back, err := units.ParseUnits(s, 18)
	require.NoError(t, err)
	require.True(t, v.Eq(back))
}

func TestParseBase(t *testing.T) {
	v, err := units.ParseBase("0x2a")
	require.NoError(t, err)
	require.Equal(t, uint64(42), v.Uint64())

	v, err = units.ParseBase("100000")
	require.NoError(t, err)
	require.Equal(t, uint64(100000), v.Uint64())

	_, err = units.ParseBase("-1")
	require.Error(t, err)
}

func TestParseBase_RadixOnlyFromHexPrefix(t *testing.T) {
	cases := map[string]uint64{
		"010":    10,
		"0009":   9,
		"0x0010": 16,
		"0XfF":   255,
		" 42 ":   42,
	}
	for in, want := range cases {
		v, err := units.ParseBase(in)
		require.NoError(t, err, in)
		require.Equal(t, want, v.Uint64(), in)
	}

	for _, in := range []string{"0b11", "0o17", "1_000", "0x", "", "+5", "0x-1", "12a"} {
		_, err := units.ParseBase(in)
		require.Error(t, err, in)
	}
}
