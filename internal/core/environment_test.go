package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/types"
)

func TestToEnvironmentProjectsVersionComponents(t *testing.T) {
	v, err := ParseVersion("3.7.3")
	require.NoError(t, err)
	spec := &types.Spec{Pkg: types.Identifier{Name: "python", Version: &v}}
	sol := types.Solution{Requests: []types.SolvedRequest{{Spec: spec}}, Options: types.NewOptionMap()}

	vars := ToEnvironment(sol, "")
	byKey := map[string]string{}
	for _, v := range vars {
		byKey[v.Key] = v.Value
	}

	require.Equal(t, "/spfs", byKey["SPK_ACTIVE_PREFIX"])
	require.Equal(t, "3.7.3", byKey["SPK_PKG_PYTHON"])
	require.Equal(t, "3", byKey["SPK_PKG_PYTHON_VERSION_MAJOR"])
	require.Equal(t, "7", byKey["SPK_PKG_PYTHON_VERSION_MINOR"])
	require.Equal(t, "3", byKey["SPK_PKG_PYTHON_VERSION_PATCH"])
}

func TestToEnvironmentLaterPackageShadowsEarlierInRenderedOrder(t *testing.T) {
	v1, err := ParseVersion("1.0.0")
	require.NoError(t, err)
	v2, err := ParseVersion("2.0.0")
	require.NoError(t, err)
	sol := types.Solution{
		Requests: []types.SolvedRequest{
			{Spec: &types.Spec{Pkg: types.Identifier{Name: "lib-foo", Version: &v1}}},
			{Spec: &types.Spec{Pkg: types.Identifier{Name: "lib-foo", Version: &v2}}},
		},
		Options: types.NewOptionMap(),
	}
	rendered := RenderEnvironment(ToEnvironment(sol, "/custom"))
	require.Contains(t, rendered, "SPK_ACTIVE_PREFIX=/custom")

	firstIdx := indexOf(rendered, "SPK_PKG_LIB_FOO=1.0.0")
	secondIdx := indexOf(rendered, "SPK_PKG_LIB_FOO=2.0.0")
	require.True(t, firstIdx >= 0 && secondIdx >= 0 && firstIdx < secondIdx)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
