package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestParsePkgRequest(t *testing.T) {
	req, err := ParsePkgRequest("python/^3.7")
	require.NoError(t, err)
	require.Equal(t, "python", req.Name)
	require.Equal(t, types.PrereleasePolicyExcludeAll, req.PrereleasePolicy)
	require.Len(t, req.Range.Atoms, 1)
	require.Equal(t, types.RangeOpCaret, req.Range.Atoms[0].Op)

	bare, err := ParsePkgRequest("python")
	require.NoError(t, err)
	require.Equal(t, "python", bare.Name)
	require.Empty(t, bare.Range.Atoms)

	pre, err := ParsePkgRequest("python/>=3.9@prerelease")
	require.NoError(t, err)
	require.Equal(t, types.PrereleasePolicyIncludeAll, pre.PrereleasePolicy)
}

func TestParsePkgRequestErrors(t *testing.T) {
	for _, raw := range []string{"", "Python", "python@unknown", "python/not-a-version"} {
		_, err := ParsePkgRequest(raw)
		require.Error(t, err, raw)
	}
}

func TestParseVarRequest(t *testing.T) {
	vr, err := ParseVarRequest("python.abi=cp37")
	require.NoError(t, err)
	require.Equal(t, "python.abi", vr.Name)
	require.Equal(t, "cp37", vr.Value)

	_, err = ParseVarRequest("noequals")
	require.Error(t, err)
}

func TestMergePkgRequestsIntersectsRangesAndStricterPolicy(t *testing.T) {
	a, err := ParsePkgRequest("lib/>=1.0.0")
	require.NoError(t, err)
	b, err := ParsePkgRequest("lib/<2.0.0")
	require.NoError(t, err)
	b.InclusionPolicy = types.InclusionPolicyIfAlreadyPresent

	merged, err := MergePkgRequests(a, b)
	require.NoError(t, err)
	require.Equal(t, types.InclusionPolicyAlways, merged.InclusionPolicy)

	contract := types.DefaultCompat()
	v, err := ParseVersion("1.5.0")
	require.NoError(t, err)
	require.True(t, Contains(merged.Range, v, contract).Compatible)
}

func TestMergePkgRequestsConflictingRangesFail(t *testing.T) {
	a, err := ParsePkgRequest("python/=2.7.0")
	require.NoError(t, err)
	b, err := ParsePkgRequest("python/=3.9.0")
	require.NoError(t, err)
	_, err = MergePkgRequests(a, b)
	require.Error(t, err)
}

func TestMergePkgRequestsDifferentNamesFail(t *testing.T) {
	a, err := ParsePkgRequest("python")
	require.NoError(t, err)
	b, err := ParsePkgRequest("numpy")
	require.NoError(t, err)
	_, err = MergePkgRequests(a, b)
	require.Error(t, err)
}

func TestMergeVarRequests(t *testing.T) {
	same, err := MergeVarRequests(types.VarRequest{Name: "debug", Value: "true"}, types.VarRequest{Name: "debug", Value: "true"})
	require.NoError(t, err)
	require.Equal(t, "true", same.Value)

	_, err = MergeVarRequests(types.VarRequest{Name: "debug", Value: "true"}, types.VarRequest{Name: "debug", Value: "false"})
	require.Error(t, err)
}
