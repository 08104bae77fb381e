package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersionRoundTrip(t *testing.T) {
	tests := []string{
		"1.2.3",
		"0.0.1",
		"1.2.3.4",
		"2.0.0-alpha.1",
		"2.0.0+r.2",
		"2.0.0-alpha.1+r.2",
		"1",
	}
	for _, raw := range tests {
		v, err := ParseVersion(raw)
		require.NoError(t, err, raw)
		require.Equal(t, raw, VersionString(v), raw)
	}
}

func TestParseVersionErrors(t *testing.T) {
	for _, raw := range []string{"", "a.b.c", "1.-2.3", "-1.0.0"} {
		_, err := ParseVersion(raw)
		require.Error(t, err, raw)
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0", 0},
		{"1.2.0", "1.10.0", -1},
		{"1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0", "1.0.0-alpha", 1},
		{"1.0.0+r.1", "1.0.0", 1},
		{"1.0.0", "1.0.0+r.1", -1},
		{"1.0.0-alpha.1", "1.0.0-alpha.2", -1},
		{"1.0.0-alpha.2", "1.0.0-alpha.10", -1},
	}
	for _, tt := range tests {
		a, err := ParseVersion(tt.a)
		require.NoError(t, err)
		b, err := ParseVersion(tt.b)
		require.NoError(t, err)
		got := CompareVersions(a, b)
		if tt.want == 0 {
			require.Zero(t, got, "%s vs %s", tt.a, tt.b)
		} else if tt.want < 0 {
			require.Negative(t, got, "%s vs %s", tt.a, tt.b)
		} else {
			require.Positive(t, got, "%s vs %s", tt.a, tt.b)
		}
	}
}

func TestVersionsEqualPadsShorterTuple(t *testing.T) {
	a, err := ParseVersion("1.2")
	require.NoError(t, err)
	b, err := ParseVersion("1.2.0")
	require.NoError(t, err)
	require.True(t, VersionsEqual(a, b))
}

func TestNextMajorAndNextMinor(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	require.NoError(t, err)

	major := NextMajor(v)
	require.Equal(t, "2.0.0", VersionString(major))

	minor := NextMinor(v)
	require.Equal(t, "1.3.0", VersionString(minor))
}
