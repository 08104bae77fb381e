package core

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// repoCache memoizes spec and build listing lookups per-solver-run,
// keyed by (repo, name) and (repo, name, version), per spec.md §5,
// to avoid repeated repository I/O during backtracking.
type repoCache struct {
	packages map[string][]types.Version
	builds   map[string][]types.Identifier
	specs    map[string]*types.Spec
}

func newRepoCache() *repoCache {
	return &repoCache{
		packages: map[string][]types.Version{},
		builds:   map[string][]types.Identifier{},
		specs:    map[string]*types.Spec{},
	}
}

func (c *repoCache) listPackages(repo ports.Repository, name string) ([]types.Version, error) {
	key := repo.Name() + "|" + name
	if v, ok := c.packages[key]; ok {
		return v, nil
	}
	versions, err := repo.ListPackages(name)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	c.packages[key] = versions
	return versions, nil
}

func (c *repoCache) listBuilds(repo ports.Repository, name string, v types.Version) ([]types.Identifier, error) {
	key := repo.Name() + "|" + name + "|" + VersionString(v)
	if ids, ok := c.builds[key]; ok {
		return ids, nil
	}
	ids, err := repo.ListBuilds(name, v)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	c.builds[key] = ids
	return ids, nil
}

func (c *repoCache) readSpec(repo ports.Repository, id types.Identifier) (*types.Spec, error) {
	key := repo.Name() + "|" + id.String()
	if s, ok := c.specs[key]; ok {
		return s, nil
	}
	spec, err := repo.ReadSpec(id)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	c.specs[key] = spec
	return spec, nil
}

func wrapRepositoryError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("repository error").
		WithCause(err)
}

// candidate is one build a PkgRequest might resolve to: a binary
// identifier with its spec, or a synthetic source build.
type candidate struct {
	identifier  types.Identifier
	spec        *types.Spec
	repoName    string
	sourceBuild bool
}

// enumerateCandidates implements spec.md §4.G step 3: gather builds
// from all repos whose version satisfies the request, filter
// pre-releases and deprecated builds, sort newest-first with
// registration-order and option-match tie-breaks, and append a
// synthetic source-build candidate last when no binary remains.
func enumerateCandidates(repos []ports.Repository, cache *repoCache, req types.PkgRequest, state types.State) ([]candidate, error) {
	type keyed struct {
		id   types.Identifier
		spec *types.Spec
		repo string
	}
	seen := map[string]struct{}{}
	var all []keyed

	for _, repo := range repos {
		versions, err := cache.listPackages(repo, req.Name)
		if err != nil {
			return nil, err
		}
		for _, v := range versions {
			builds, err := cache.listBuilds(repo, req.Name, v)
			if err != nil {
				return nil, err
			}
			for _, id := range builds {
				key := id.String()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				spec, err := cache.readSpec(repo, id)
				if err != nil {
					return nil, err
				}
				all = append(all, keyed{id: id, spec: spec, repo: repo.Name()})
			}
		}
	}

	var binary []candidate
	var sourceFallback []keyed
	for _, k := range all {
		if k.id.Version == nil {
			continue
		}
		compat := Contains(req.Range, *k.id.Version, k.spec.Compat)
		if !compat.Compatible {
			continue
		}
		if len(k.id.Version.Pre) > 0 && req.PrereleasePolicy != types.PrereleasePolicyIncludeAll {
			continue
		}
		if k.spec.IsSource() {
			sourceFallback = append(sourceFallback, k)
			continue
		}
		deprecated := false
		for _, repo := range repos {
			if repo.Name() != k.repo {
				continue
			}
			d, err := repo.IsDeprecated(k.id)
			if err != nil {
				return nil, wrapRepositoryError(err)
			}
			deprecated = d
			break
		}
		if deprecated && !isExactRequest(req) {
			continue
		}
		binary = append(binary, candidate{identifier: k.id, spec: k.spec, repoName: k.repo})
	}

	sort.SliceStable(binary, func(i, j int) bool {
		vi, vj := *binary[i].identifier.Version, *binary[j].identifier.Version
		if c := CompareVersions(vi, vj); c != 0 {
			return c > 0
		}
		return optionMatchScore(binary[i].spec, state.Options) > optionMatchScore(binary[j].spec, state.Options)
	})

	if len(binary) > 0 {
		return binary, nil
	}
	if len(sourceFallback) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no build or source candidate for %s", req.Name))
	}
	sort.SliceStable(sourceFallback, func(i, j int) bool {
		return CompareVersions(*sourceFallback[i].id.Version, *sourceFallback[j].id.Version) > 0
	})
	best := sourceFallback[0]
	return []candidate{{identifier: best.id, spec: best.spec, repoName: best.repo, sourceBuild: true}}, nil
}

// isExactRequest reports whether req pins a single exact version,
// making a deprecated build eligible per spec.md §4.G step 3.b.
func isExactRequest(req types.PkgRequest) bool {
	return len(req.Range.Atoms) == 1 && req.Range.Atoms[0].Op == types.RangeOpEq
}

// optionMatchScore counts how many of spec's build-option defaults
// already agree with current, used to prefer builds whose option
// digest matches more of the current option map (spec.md §4.G step 3.c).
func optionMatchScore(spec *types.Spec, current *types.OptionMap) int {
	score := 0
	for _, opt := range spec.Build.Options {
		if v, ok := current.Get(opt.Name); ok && v == opt.Default {
			score++
		}
	}
	return score
}
