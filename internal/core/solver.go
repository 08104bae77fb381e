package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// maxNotesPerPackage bounds the backtrack notes kept per exhausted
// selection, per spec.md §4.G step 6 ("bounded: keep the most recent N
// per package").
const maxNotesPerPackage = 5

// SolverRuntime drives the depth-first backtracking search of spec.md
// §4.G over a fixed, registration-ordered set of repositories.
//
// It is single-threaded and deterministic (spec.md §5): a fresh
// SolverRuntime should be used per solve, since its repoCache and
// `building` cycle guard are scoped to one run.
type SolverRuntime struct {
	Repos []ports.Repository
	// OnStep, if set, is called with each edge as soon as it is
	// recorded — the "resumable iterator" observation point of
	// spec.md §5, implemented as a callback rather than a channel or
	// goroutine since the search itself is synchronous and single
	// threaded.
	OnStep func(types.Edge)

	cache    *repoCache
	building map[string]struct{}
}

// NewSolverRuntime returns a SolverRuntime querying repos in the given
// registration order.
func NewSolverRuntime(repos []ports.Repository) *SolverRuntime {
	return &SolverRuntime{Repos: repos, cache: newRepoCache(), building: map[string]struct{}{}}
}

// backtrackError signals that every candidate at one selection point
// was exhausted; it is caught by the caller frame (which then tries
// its own next candidate) and never escapes Solve directly — only a
// root-level exhaustion is converted into SolverFailedError.
type backtrackError struct {
	notes []types.Note
}

func (e *backtrackError) Error() string { return "backtrack: candidates exhausted" }

// Solve builds a Solver for the given initial requests and runs it to
// completion, returning the final Solution and the full decision
// Graph for post-mortem inspection (spec.md §5).
func (r *SolverRuntime) Solve(ctx context.Context, pkgRequests []types.PkgRequest, varRequests []types.VarRequest, userOptions *types.OptionMap) (types.Solution, *types.Graph, error) {
	root := types.Default()
	if userOptions != nil {
		root.Options = userOptions.Clone()
	}
	for _, req := range pkgRequests {
		var err error
		root, err = applyRequestPackage(root, &req)
		if err != nil {
			return types.Solution{}, nil, err
		}
	}
	for _, vr := range varRequests {
		var err error
		root, err = applyRequestVar(root, &vr)
		if err != nil {
			return types.Solution{}, nil, err
		}
	}

	graph := types.NewGraph(root, Fingerprint(root))
	final, err := r.solveFrom(ctx, graph, graph.Root())
	if err != nil {
		if bt, ok := err.(*backtrackError); ok {
			chain := make([]string, len(bt.notes))
			for i, n := range bt.notes {
				chain[i] = string(n.Category) + ": " + n.Message
			}
			log.Ctx(ctx).Warn().Strs("backtrack_chain", chain).Msg("solver exhausted search")
			return types.Solution{}, graph, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("solver failed: " + strings.Join(chain, "; "))
		}
		return types.Solution{}, graph, err
	}
	return BuildSolution(graph.State(final)), graph, nil
}

func (r *SolverRuntime) solveFrom(ctx context.Context, graph *types.Graph, handle types.StateHandle) (types.StateHandle, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	state := graph.State(handle)
	if len(state.PkgRequests) == 0 {
		return handle, nil
	}

	req := state.PkgRequests[0]
	candidates, err := enumerateCandidates(r.Repos, r.cache, req, state)
	if err != nil {
		return 0, err
	}

	var notes []types.Note
	for _, cand := range candidates {
		newState, decision, compat, err := r.tryCandidate(ctx, state, req, cand)
		if err != nil {
			return 0, err
		}
		if !compat.Compatible {
			notes = appendBounded(notes, types.Note{
				Category: types.NoteCandidateRejected,
				Message:  cand.identifier.String() + ": " + compat.Reason,
			})
			log.Ctx(ctx).Debug().Str("candidate", cand.identifier.String()).Str("reason", compat.Reason).Msg("candidate rejected")
			continue
		}

		childHandle := graph.AddState(newState, Fingerprint(newState))
		graph.AddEdge(handle, childHandle, decision)
		if r.OnStep != nil {
			r.OnStep(graph.Edges[len(graph.Edges)-1])
		}

		result, rerr := r.solveFrom(ctx, graph, childHandle)
		if rerr == nil {
			return result, nil
		}
		if bt, ok := rerr.(*backtrackError); ok {
			notes = appendBounded(notes, types.Note{
				Category: types.NoteBacktrack,
				Message:  fmt.Sprintf("candidate %s exhausted downstream", cand.identifier.String()),
			})
			for _, n := range bt.notes {
				notes = appendBounded(notes, n)
			}
			log.Ctx(ctx).Debug().Str("candidate", cand.identifier.String()).Msg("backtrack")
			continue
		}
		return 0, rerr
	}

	return 0, &backtrackError{notes: notes}
}

func appendBounded(notes []types.Note, note types.Note) []types.Note {
	notes = append(notes, note)
	if len(notes) > maxNotesPerPackage {
		notes = notes[len(notes)-maxNotesPerPackage:]
	}
	return notes
}
