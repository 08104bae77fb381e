package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestSpecValidatorRejectsDuplicateOptionNames(t *testing.T) {
	spec := types.Spec{
		Pkg: types.Identifier{Name: "python"},
		Build: types.BuildSpec{Options: []types.BuildOption{
			{Kind: types.BuildOptionKindVar, Name: "abi"},
			{Kind: types.BuildOptionKindVar, Name: "abi"},
		}},
	}
	err := NewSpecValidator().Validate(context.Background(), spec)
	require.Error(t, err)
}

func TestSpecValidatorRejectsSelfReferencingInstallRequirement(t *testing.T) {
	spec := types.Spec{
		Pkg:     types.Identifier{Name: "python"},
		Install: types.InstallSpec{Requirements: []types.PkgRequest{{Name: "python"}}},
	}
	err := NewSpecValidator().Validate(context.Background(), spec)
	require.Error(t, err)
}

func TestSpecValidatorRejectsUnknownTestStage(t *testing.T) {
	spec := types.Spec{
		Pkg:   types.Identifier{Name: "python"},
		Tests: []types.TestSpec{{Stage: types.TestStage("bogus")}},
	}
	err := NewSpecValidator().Validate(context.Background(), spec)
	require.Error(t, err)
}

func TestSpecValidatorRejectsEmbeddedSpecWithoutEmbeddedBuild(t *testing.T) {
	child := &types.Spec{Pkg: types.Identifier{Name: "python-headers"}}
	spec := types.Spec{
		Pkg:      types.Identifier{Name: "python"},
		Embedded: []*types.Spec{child},
	}
	err := NewSpecValidator().Validate(context.Background(), spec)
	require.Error(t, err)
}

func TestSpecValidatorAcceptsWellFormedSpec(t *testing.T) {
	child := &types.Spec{Pkg: types.Identifier{Name: "python-headers", Build: &types.Build{Kind: types.BuildKindEmbedded}}}
	spec := types.Spec{
		Pkg: types.Identifier{Name: "python"},
		Build: types.BuildSpec{Options: []types.BuildOption{
			{Kind: types.BuildOptionKindVar, Name: "abi"},
		}},
		Install:  types.InstallSpec{Requirements: []types.PkgRequest{{Name: "openssl"}}},
		Tests:    []types.TestSpec{{Stage: types.TestStageInstall}},
		Embedded: []*types.Spec{child},
	}
	err := NewSpecValidator().Validate(context.Background(), spec)
	require.NoError(t, err)
}
