package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestParseRangeAtoms(t *testing.T) {
	tests := []struct {
		raw     string
		wantOp  string
		wantLen int
	}{
		{"=1.2.3", "=", 1},
		{"!=1.2.3", "!=", 1},
		{"<1.2.3", "<", 1},
		{"<=1.2.3", "<=", 1},
		{">1.2.3", ">", 1},
		{">=1.2.3", ">=", 1},
		{"~1.2.3", "~", 1},
		{"^1.2.3", "^", 1},
		{"1.2.3", "", 1},
		{">=1.0.0,<2.0.0", ">=", 2},
	}
	for _, tt := range tests {
		r, err := ParseRange(tt.raw)
		require.NoError(t, err, tt.raw)
		require.Len(t, r.Atoms, tt.wantLen, tt.raw)
		require.Equal(t, tt.wantOp, string(r.Atoms[0].Op), tt.raw)
	}
}

func TestParseRangeErrors(t *testing.T) {
	for _, raw := range []string{"", ">=", "@"} {
		_, err := ParseRange(raw)
		require.Error(t, err, raw)
	}
}

func TestContainsBareAtomIsUpToNextMajor(t *testing.T) {
	r, err := ParseRange("1.2.3")
	require.NoError(t, err)
	contract := types.DefaultCompat()

	inRange, err := ParseVersion("1.9.0")
	require.NoError(t, err)
	require.True(t, Contains(r, inRange, contract).Compatible)

	outOfRange, err := ParseVersion("2.0.0")
	require.NoError(t, err)
	require.False(t, Contains(r, outOfRange, contract).Compatible)

	tooLow, err := ParseVersion("1.2.2")
	require.NoError(t, err)
	require.False(t, Contains(r, tooLow, contract).Compatible)
}

func TestContainsApproxIsMinorBounded(t *testing.T) {
	r, err := ParseRange("~1.2.0")
	require.NoError(t, err)
	contract := types.DefaultCompat()

	ok, err := ParseVersion("1.2.9")
	require.NoError(t, err)
	require.True(t, Contains(r, ok, contract).Compatible)

	tooHigh, err := ParseVersion("1.3.0")
	require.NoError(t, err)
	require.False(t, Contains(r, tooHigh, contract).Compatible)
}

func TestContainsCaretUsesDeclaredCompatForAPICompatibility(t *testing.T) {
	r, err := ParseRange("^1.0.0")
	require.NoError(t, err)

	apiCompatible := ParseCompat("x.a.a")
	higherMinor, err := ParseVersion("1.5.0")
	require.NoError(t, err)
	require.True(t, Contains(r, higherMinor, apiCompatible).Compatible)

	noCompat := ParseCompat("x.x.x")
	require.False(t, Contains(r, higherMinor, noCompat).Compatible)
}

func TestContainsEqAndNe(t *testing.T) {
	r, err := ParseRange("=1.2.3")
	require.NoError(t, err)
	contract := types.DefaultCompat()
	v, err := ParseVersion("1.2.3")
	require.NoError(t, err)
	require.True(t, Contains(r, v, contract).Compatible)

	other, err := ParseVersion("1.2.4")
	require.NoError(t, err)
	require.False(t, Contains(r, other, contract).Compatible)

	ne, err := ParseRange("!=1.2.3")
	require.NoError(t, err)
	require.False(t, Contains(ne, v, contract).Compatible)
	require.True(t, Contains(ne, other, contract).Compatible)
}

func TestEmptyDetectsUnsatisfiableConjunction(t *testing.T) {
	a, err := ParseRange(">=2.0.0")
	require.NoError(t, err)
	b, err := ParseRange("<1.0.0")
	require.NoError(t, err)
	merged := Intersect(a, b)
	require.True(t, Empty(merged))
}

func TestIntersectOfOverlappingRangesIsNotEmpty(t *testing.T) {
	a, err := ParseRange(">=1.0.0")
	require.NoError(t, err)
	b, err := ParseRange("<2.0.0")
	require.NoError(t, err)
	merged := Intersect(a, b)
	require.False(t, Empty(merged))

	contract := types.DefaultCompat()
	v, err := ParseVersion("1.5.0")
	require.NoError(t, err)
	require.True(t, Contains(merged, v, contract).Compatible)
}
