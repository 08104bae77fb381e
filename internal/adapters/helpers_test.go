package adapters

import (
	"testing"

	"avular-packages/internal/types"
)

// mustIdentifier builds an Identifier naming a digest build, for
// tests that need to address a FileRepository/HTTPRepository entry
// directly without going through ParseIdentifier.
func mustIdentifier(t *testing.T, name string, version types.Version, digest string) types.Identifier {
	t.Helper()
	return types.Identifier{Name: name, Version: &version, Build: &types.Build{Kind: types.BuildKindDigest, Digest: digest}}
}
