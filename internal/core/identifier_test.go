package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestParseIdentifier(t *testing.T) {
	id, err := ParseIdentifier("python/3.7.3/abcdef0123456789")
	require.NoError(t, err)
	require.Equal(t, "python", id.Name)
	require.NotNil(t, id.Version)
	require.Equal(t, "3.7.3", VersionString(*id.Version))
	require.Equal(t, types.BuildKindDigest, id.Build.Kind)
	require.Equal(t, "abcdef0123456789", id.Build.Digest)

	src, err := ParseIdentifier("mylib/1.0.0/src")
	require.NoError(t, err)
	require.Equal(t, types.BuildKindSource, src.Build.Kind)

	nameOnly, err := ParseIdentifier("python")
	require.NoError(t, err)
	require.Nil(t, nameOnly.Version)
	require.Nil(t, nameOnly.Build)
}

func TestParseIdentifierErrors(t *testing.T) {
	for _, raw := range []string{"Python", "a/1.0/src/extra", "1abc"} {
		_, err := ParseIdentifier(raw)
		require.Error(t, err, raw)
	}
}

func TestIdentifierStringRoundTrip(t *testing.T) {
	id, err := ParseIdentifier("python/3.7.3/src")
	require.NoError(t, err)
	require.Equal(t, "python/3.7.3/src", id.String())
}

func TestValidName(t *testing.T) {
	require.True(t, ValidName("python"))
	require.True(t, ValidName("lib-foo2"))
	require.False(t, ValidName("Python"))
	require.False(t, ValidName("2lib"))
	require.False(t, ValidName(""))
}
