package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestDigestStableUnderInsertionOrderPermutation(t *testing.T) {
	a := types.NewOptionMap()
	a.Set("debug", "true")
	a.Set("python.abi", "cp37")

	b := types.NewOptionMap()
	b.Set("python.abi", "cp37")
	b.Set("debug", "true")

	require.Equal(t, Digest(a), Digest(b))
}

func TestDigestChangesWithValue(t *testing.T) {
	a := types.NewOptionMap()
	a.Set("debug", "true")
	b := types.NewOptionMap()
	b.Set("debug", "false")
	require.NotEqual(t, Digest(a), Digest(b))
}

func TestSeedOptionPrecedence(t *testing.T) {
	opt := types.BuildOption{Kind: types.BuildOptionKindVar, Name: "abi", Default: "cp39"}

	// 1. Explicit user-supplied value wins over everything.
	user := types.NewOptionMap()
	user.Set("abi", "cp37")
	state := types.Default()
	state.Options.Set("abi", "cp38")
	state.VarRequests = []types.VarRequest{{Name: "python.abi", Value: "cp36"}}
	result := SeedOption(opt, "python", state, user)
	require.True(t, result.Compatibility.Compatible)
	require.Equal(t, "cp37", result.Value)

	// 2. Existing bound state value wins over a VarRequest or default.
	result = SeedOption(opt, "python", state, nil)
	require.Equal(t, "cp38", result.Value)

	// 3. A matching VarRequest wins over the default.
	state2 := types.Default()
	state2.VarRequests = []types.VarRequest{{Name: "python.abi", Value: "cp36"}}
	result = SeedOption(opt, "python", state2, nil)
	require.Equal(t, "cp36", result.Value)

	// 4. Falls back to default, with a note.
	state3 := types.Default()
	result = SeedOption(opt, "python", state3, nil)
	require.Equal(t, "cp39", result.Value)
	require.NotNil(t, result.Note)
	require.Equal(t, types.NoteOptionDefaulted, result.Note.Category)
}

func TestSeedOptionChoicesViolation(t *testing.T) {
	opt := types.BuildOption{Kind: types.BuildOptionKindVar, Name: "abi", Default: "cp39", Choices: []string{"cp37", "cp38"}}
	state := types.Default()
	result := SeedOption(opt, "python", state, nil)
	require.False(t, result.Compatibility.Compatible)
	require.Contains(t, result.Compatibility.Reason, "not in choices")
}

func TestInheritanceChangesWeakProducesNothing(t *testing.T) {
	opt := types.BuildOption{Kind: types.BuildOptionKindVar, Name: "debug", Inheritance: types.InheritanceWeak}
	v, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	changes := InheritanceChanges("python", v, opt, "true")
	require.Empty(t, changes)
}

func TestInheritanceChangesStrongForBuildOnlyAddsOnlyVarRequest(t *testing.T) {
	opt := types.BuildOption{Kind: types.BuildOptionKindVar, Name: "abi", Inheritance: types.InheritanceStrongForBuildOnly}
	v, err := ParseVersion("3.7.3")
	require.NoError(t, err)
	changes := InheritanceChanges("python", v, opt, "cp37")
	require.Len(t, changes, 1)
	require.Equal(t, types.ChangeRequestVar, changes[0].Kind)
	require.Equal(t, "python.abi", changes[0].VarRequest.Name)
	require.Equal(t, "cp37", changes[0].VarRequest.Value)
}

func TestInheritanceChangesStrongAddsVarRequestAndPinnedPkgRequest(t *testing.T) {
	opt := types.BuildOption{Kind: types.BuildOptionKindVar, Name: "abi", Inheritance: types.InheritanceStrong}
	v, err := ParseVersion("3.7.3")
	require.NoError(t, err)
	changes := InheritanceChanges("python", v, opt, "cp37")
	require.Len(t, changes, 2)
	require.Equal(t, types.ChangeRequestVar, changes[0].Kind)
	require.Equal(t, "python.abi", changes[0].VarRequest.Name)
	require.Equal(t, types.ChangeRequestPackage, changes[1].Kind)
	require.Equal(t, "python", changes[1].PkgRequest.Name)
	require.Equal(t, types.InclusionPolicyAlways, changes[1].PkgRequest.InclusionPolicy)

	contract := types.DefaultCompat()
	require.True(t, Contains(changes[1].PkgRequest.Range, v, contract).Compatible)
}

func TestCanonicalStringSortsByKey(t *testing.T) {
	m := types.NewOptionMap()
	m.Set("z", "1")
	m.Set("a", "2")
	require.Equal(t, "a=2,z=1", CanonicalString(m))
}
