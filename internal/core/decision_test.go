package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestApplyRequestPackageMergesSameName(t *testing.T) {
	state := types.Default()
	first, err := ParsePkgRequest("lib/>=1.0.0")
	require.NoError(t, err)
	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &first}}})
	require.NoError(t, err)

	second, err := ParsePkgRequest("lib/<2.0.0")
	require.NoError(t, err)
	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &second}}})
	require.NoError(t, err)

	require.Len(t, state.PkgRequests, 1)
}

func TestApplyRequestPackageConflictAborts(t *testing.T) {
	state := types.Default()
	first, err := ParsePkgRequest("python/=2.7.0")
	require.NoError(t, err)
	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &first}}})
	require.NoError(t, err)

	second, err := ParsePkgRequest("python/=3.9.0")
	require.NoError(t, err)
	_, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &second}}})
	require.Error(t, err)
}

func TestApplyRequestVarConflictAborts(t *testing.T) {
	state := types.Default()
	a := types.VarRequest{Name: "debug", Value: "true"}
	state, err := Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestVar, VarRequest: &a}}})
	require.NoError(t, err)

	b := types.VarRequest{Name: "debug", Value: "false"}
	_, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestVar, VarRequest: &b}}})
	require.Error(t, err)
}

func TestApplySetOptionsRespectsStaticBinding(t *testing.T) {
	state := types.Default()
	state.StaticOptions["abi"] = struct{}{}
	state.Options.Set("abi", "cp37")

	same := types.NewOptionMap()
	same.Set("abi", "cp37")
	state, err := Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeSetOptions, Options: same}}})
	require.NoError(t, err)

	conflict := types.NewOptionMap()
	conflict.Set("abi", "cp38")
	_, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeSetOptions, Options: conflict}}})
	require.Error(t, err)
}

func TestApplyResolvePackageRemovesRequestAndAppendsPackage(t *testing.T) {
	state := types.Default()
	req, err := ParsePkgRequest("python")
	require.NoError(t, err)
	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &req}}})
	require.NoError(t, err)

	v, err := ParseVersion("3.7.3")
	require.NoError(t, err)
	spec := &types.Spec{Pkg: types.Identifier{Name: "python", Version: &v}, Compat: types.DefaultCompat()}
	source := &types.PackageSource{Kind: types.PackageSourceBinary, RepoName: "main"}

	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeResolvePackage, Spec: spec, Source: source, Request: &req}}})
	require.NoError(t, err)

	require.Empty(t, state.PkgRequests)
	require.Len(t, state.Packages, 1)
	require.Equal(t, "python", state.Packages[0].Spec.Pkg.Name)
}

func TestApplyIsPureAndDoesNotMutateParentOnFailure(t *testing.T) {
	state := types.Default()
	req, err := ParsePkgRequest("python/=2.7.0")
	require.NoError(t, err)
	state, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &req}}})
	require.NoError(t, err)

	before := len(state.PkgRequests)
	conflicting, err := ParsePkgRequest("python/=3.9.0")
	require.NoError(t, err)
	_, err = Apply(state, types.Decision{Changes: []types.Change{{Kind: types.ChangeRequestPackage, PkgRequest: &conflicting}}})
	require.Error(t, err)
	require.Equal(t, before, len(state.PkgRequests))
}

func TestFingerprintStableUnderPkgRequestOrderPermutation(t *testing.T) {
	a, err := ParsePkgRequest("python")
	require.NoError(t, err)
	b, err := ParsePkgRequest("numpy")
	require.NoError(t, err)

	s1 := types.Default()
	s1.PkgRequests = []types.PkgRequest{a, b}
	s2 := types.Default()
	s2.PkgRequests = []types.PkgRequest{b, a}

	require.Equal(t, Fingerprint(s1), Fingerprint(s2))
}

func TestFingerprintChangesWithResolvedPackages(t *testing.T) {
	s1 := types.Default()
	v, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	s2 := types.Default()
	s2.Packages = []types.ResolvedPackage{{Spec: &types.Spec{Pkg: types.Identifier{Name: "lib", Version: &v}}}}

	require.NotEqual(t, Fingerprint(s1), Fingerprint(s2))
}
