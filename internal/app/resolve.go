package app

import (
	"context"

	"avular-packages/internal/core"
	"avular-packages/internal/types"
)

// ResolveRequest is the input to Resolve: the raw request strings as a
// user or CLI flag would write them, plus the repositories to search.
type ResolveRequest struct {
	Repos       []RepoSource
	PkgRequests []string
	VarRequests []string
	Options     map[string]string
}

// ResolveResult is everything Resolve produces: the Solution plus the
// full decision Graph, kept together so a caller can render either one
// without re-solving.
type ResolveResult struct {
	Solution types.Solution
	Graph    *types.Graph
}

// Resolve parses req's requests, builds a SolverRuntime over the
// requested repositories and runs spec.md §4.G's search to completion.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	repos, err := openRepositories(req.Repos)
	if err != nil {
		return ResolveResult{}, err
	}

	pkgRequests := make([]types.PkgRequest, 0, len(req.PkgRequests))
	for _, raw := range req.PkgRequests {
		pr, err := core.ParsePkgRequest(raw)
		if err != nil {
			return ResolveResult{}, err
		}
		pkgRequests = append(pkgRequests, pr)
	}

	varRequests := make([]types.VarRequest, 0, len(req.VarRequests))
	for _, raw := range req.VarRequests {
		vr, err := core.ParseVarRequest(raw)
		if err != nil {
			return ResolveResult{}, err
		}
		varRequests = append(varRequests, vr)
	}

	var userOptions *types.OptionMap
	if len(req.Options) > 0 {
		userOptions = types.NewOptionMap()
		for k, v := range req.Options {
			userOptions.Set(k, v)
		}
	}

	runtime := core.NewSolverRuntime(repos)
	solution, graph, err := runtime.Solve(ctx, pkgRequests, varRequests, userOptions)
	if err != nil {
		// Solve still returns the partial decision Graph on a solver
		// failure (not on a setup error, where graph is nil) — keep it
		// so InspectGraph can render the backtracking that led to the
		// failure instead of losing it.
		return ResolveResult{Graph: graph}, err
	}
	return ResolveResult{Solution: solution, Graph: graph}, nil
}
