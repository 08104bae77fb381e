package core

import "avular-packages/internal/types"

// BuildSolution projects a terminal State (one with no unresolved
// PkgRequests) into the final Solution of spec.md §3/§4.H: an ordered
// list of SolvedRequests pairing each resolved package with the
// PkgRequest it satisfied, the effective OptionMap, and the set of
// distinct repositories referenced by its binary sources.
func BuildSolution(state types.State) types.Solution {
	requests := make([]types.SolvedRequest, 0, len(state.Packages))
	seenRepo := map[string]struct{}{}
	var repos []string
	for _, pkg := range state.Packages {
		requests = append(requests, types.SolvedRequest{
			Request: pkg.Request,
			Spec:    pkg.Spec,
			Source:  pkg.Source,
		})
		if pkg.Source.Kind == types.PackageSourceBinary && pkg.Source.RepoName != "" {
			if _, ok := seenRepo[pkg.Source.RepoName]; !ok {
				seenRepo[pkg.Source.RepoName] = struct{}{}
				repos = append(repos, pkg.Source.RepoName)
			}
		}
	}
	return types.Solution{
		Requests:     requests,
		Options:      state.Options.Clone(),
		Repositories: repos,
	}
}
