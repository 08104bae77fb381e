package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// fakeRepo is an in-memory ports.Repository used to drive the
// end-to-end solver scenarios of spec.md §8 without any filesystem or
// network collaborator.
type fakeRepo struct {
	name       string
	specs      map[string]*types.Spec // keyed by Identifier.String()
	deprecated map[string]bool
	payloads   map[string]map[string]string
}

var _ ports.Repository = (*fakeRepo)(nil)

func newFakeRepo(name string) *fakeRepo {
	return &fakeRepo{
		name:       name,
		specs:      map[string]*types.Spec{},
		deprecated: map[string]bool{},
		payloads:   map[string]map[string]string{},
	}
}

func (r *fakeRepo) Name() string { return r.name }

func (r *fakeRepo) addBinary(t *testing.T, name, version, digest string, mutate func(*types.Spec)) types.Identifier {
	t.Helper()
	v, err := ParseVersion(version)
	require.NoError(t, err)
	id := types.Identifier{Name: name, Version: &v, Build: &types.Build{Kind: types.BuildKindDigest, Digest: digest}}
	spec := &types.Spec{Pkg: id, Compat: types.DefaultCompat()}
	if mutate != nil {
		mutate(spec)
	}
	spec.Pkg = id
	r.specs[id.String()] = spec
	r.payloads[id.String()] = map[string]string{"run": "sha256:" + digest}
	return id
}

func (r *fakeRepo) addSource(t *testing.T, name, version string, mutate func(*types.Spec)) types.Identifier {
	t.Helper()
	v, err := ParseVersion(version)
	require.NoError(t, err)
	id := types.Identifier{Name: name, Version: &v, Build: &types.Build{Kind: types.BuildKindSource}}
	spec := &types.Spec{Pkg: id, Compat: types.DefaultCompat()}
	if mutate != nil {
		mutate(spec)
	}
	spec.Pkg = id
	r.specs[id.String()] = spec
	return id
}

func (r *fakeRepo) markDeprecated(id types.Identifier) {
	r.deprecated[id.String()] = true
}

func (r *fakeRepo) ListPackages(name string) ([]types.Version, error) {
	seen := map[string]struct{}{}
	var out []types.Version
	for _, spec := range r.specs {
		if spec.Pkg.Name != name || spec.Pkg.Version == nil {
			continue
		}
		key := VersionString(*spec.Pkg.Version)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, *spec.Pkg.Version)
	}
	return out, nil
}

func (r *fakeRepo) ListBuilds(name string, version types.Version) ([]types.Identifier, error) {
	var out []types.Identifier
	for _, spec := range r.specs {
		if spec.Pkg.Name != name || spec.Pkg.Version == nil {
			continue
		}
		if !VersionsEqual(*spec.Pkg.Version, version) {
			continue
		}
		out = append(out, spec.Pkg)
	}
	return out, nil
}

func (r *fakeRepo) ReadSpec(id types.Identifier) (*types.Spec, error) {
	return r.specs[id.String()], nil
}

func (r *fakeRepo) GetPackagePayload(id types.Identifier) (map[string]string, error) {
	return r.payloads[id.String()], nil
}

func (r *fakeRepo) IsDeprecated(id types.Identifier) (bool, error) {
	return r.deprecated[id.String()], nil
}
