package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/policies"
	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// resolveSource produces the PackageSource for cand: a binary payload
// lookup, or — for a synthetic source candidate — the recursive
// child-solver build-environment resolution of spec.md §4.G
// "Source-build recursion". A child-solver failure is reported as
// Incompatible, not a hard error, so the outer search backtracks
// instead of aborting (spec.md §8 seed scenario 6).
func (r *SolverRuntime) resolveSource(ctx context.Context, state types.State, cand candidate) (types.PackageSource, types.Compatibility, error) {
	if !cand.sourceBuild {
		repo := r.findRepo(cand.repoName)
		if repo == nil {
			return types.PackageSource{}, types.Compatibility{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("repository disappeared mid-solve: " + cand.repoName)
		}
		layers, err := repo.GetPackagePayload(cand.identifier)
		if err != nil {
			return types.PackageSource{}, types.Compatibility{}, wrapRepositoryError(err)
		}
		return types.PackageSource{Kind: types.PackageSourceBinary, RepoName: cand.repoName, Layers: layers}, types.Ok(), nil
	}

	name := cand.spec.Pkg.Name
	if _, cyclic := r.building[name]; cyclic {
		return types.PackageSource{}, types.Incompatible("cyclic source-build dependency on " + name), nil
	}

	pkgReqs, varReqs, err := seedBuildEnvironmentRequests(name, cand.spec, state)
	if err != nil {
		return types.PackageSource{}, types.Incompatible(err.Error()), nil
	}

	r.building[name] = struct{}{}
	defer delete(r.building, name)

	child := &SolverRuntime{Repos: r.Repos, cache: r.cache, building: r.building}
	solution, _, err := child.Solve(ctx, pkgReqs, varReqs, state.Options.Clone())
	if err != nil {
		return types.PackageSource{}, types.Incompatible("source build failed for " + name + ": " + err.Error()), nil
	}
	return types.PackageSource{Kind: types.PackageSourceBuild, Environment: &solution}, types.Ok(), nil
}

func (r *SolverRuntime) findRepo(name string) ports.Repository {
	for _, repo := range r.Repos {
		if repo.Name() == name {
			return repo
		}
	}
	return nil
}

// seedBuildEnvironmentRequests turns a source candidate's build
// options into the package/variable requests that seed its child
// solver, rejecting any direct dependency on the package being built
// (spec.md §9 "Source-build recursion bound").
func seedBuildEnvironmentRequests(buildingName string, spec *types.Spec, state types.State) ([]types.PkgRequest, []types.VarRequest, error) {
	var pkgReqs []types.PkgRequest
	var varReqs []types.VarRequest
	seeded := map[string]struct{}{}
	for _, opt := range spec.Build.Options {
		switch opt.Kind {
		case types.BuildOptionKindPkg:
			if opt.Name == buildingName {
				return nil, nil, errBuildEnvCycle(buildingName)
			}
			req := types.PkgRequest{
				Name:             opt.Name,
				PrereleasePolicy: opt.PrereleasePolicy,
				InclusionPolicy:  types.InclusionPolicyAlways,
				Raw:              opt.Name,
			}
			if opt.Default != "" {
				rng, err := ParseRange(opt.Default)
				if err == nil {
					req.Range = rng
				}
			}
			pkgReqs = append(pkgReqs, req)
		case types.BuildOptionKindVar:
			result := SeedOption(opt, buildingName, state, nil)
			if result.Compatibility.Compatible {
				varReqs = append(varReqs, types.VarRequest{Name: opt.Name, Value: result.Value, FromBuildEnv: true})
				seeded[opt.Name] = struct{}{}
			}
		}
	}

	// build.variants only fills keys the user has left unconstrained
	// (spec.md §4.G "Variants"): anything already bound by an option
	// default above, or already present in the incoming state, is left
	// alone.
	if variant := policies.SelectVariant(spec.Build.Variants, state.Options); variant != nil {
		for _, key := range variant.Keys() {
			if _, ok := seeded[key]; ok {
				continue
			}
			if _, ok := state.Options.Get(key); ok {
				continue
			}
			value, _ := variant.Get(key)
			varReqs = append(varReqs, types.VarRequest{Name: key, Value: value, FromBuildEnv: true})
		}
	}
	return pkgReqs, varReqs, nil
}

type buildEnvCycleError struct{ name string }

func (e buildEnvCycleError) Error() string {
	return "build environment of " + e.name + " must not depend on itself"
}

func errBuildEnvCycle(name string) error { return buildEnvCycleError{name: name} }
