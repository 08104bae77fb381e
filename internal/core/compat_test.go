package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompatDefault(t *testing.T) {
	c := ParseCompat("")
	require.Equal(t, "x.a.b", c.Raw)
	require.Equal(t, []string{"x", "a", "b"}, c.Positions)
}

func TestCompatibleAtWalksFirstDivergingComponent(t *testing.T) {
	contract := ParseCompat("x.a.b")

	d, err := ParseVersion("1.2.3")
	require.NoError(t, err)

	// Patch-level change: position 2 carries "b" -> binary-compatible,
	// but not API-compatible (only "b" is declared there).
	patched, err := ParseVersion("1.2.4")
	require.NoError(t, err)
	require.True(t, CompatibleAt(contract, patched, d, 'b'))
	require.False(t, CompatibleAt(contract, patched, d, 'a'))

	// Minor-level change: position 1 carries "a" -> API-compatible only.
	minorBump, err := ParseVersion("1.3.0")
	require.NoError(t, err)
	require.True(t, CompatibleAt(contract, minorBump, d, 'a'))
	require.False(t, CompatibleAt(contract, minorBump, d, 'b'))

	// Major-level change: position 0 carries "x" -> nothing declared.
	majorBump, err := ParseVersion("2.0.0")
	require.NoError(t, err)
	require.False(t, CompatibleAt(contract, majorBump, d, 'a'))
	require.False(t, CompatibleAt(contract, majorBump, d, 'b'))
}

func TestCompatibleAtEqualVersionsAlwaysCompatible(t *testing.T) {
	contract := ParseCompat("x.x.x")
	v, err := ParseVersion("1.2.3")
	require.NoError(t, err)
	require.True(t, CompatibleAt(contract, v, v, 'a'))
}

func TestCompatMultiLetterPosition(t *testing.T) {
	contract := ParseCompat("x.ab.x")
	d, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	minorBump, err := ParseVersion("1.1.0")
	require.NoError(t, err)
	require.True(t, CompatibleAt(contract, minorBump, d, 'a'))
	require.True(t, CompatibleAt(contract, minorBump, d, 'b'))
}
