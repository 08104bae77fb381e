package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

// Apply implements Decision::apply(state) (spec.md §4.F): it produces
// a new State by sequentially applying d's Changes, aborting the
// whole decision (and returning the original parent unmodified) the
// moment any change cannot be merged.
func Apply(parent types.State, d types.Decision) (types.State, error) {
	state := parent.Clone()
	for _, ch := range d.Changes {
		var err error
		state, err = applyChange(state, ch)
		if err != nil {
			return parent, err
		}
	}
	return state, nil
}

func applyChange(state types.State, ch types.Change) (types.State, error) {
	switch ch.Kind {
	case types.ChangeRequestPackage:
		return applyRequestPackage(state, ch.PkgRequest)
	case types.ChangeRequestVar:
		return applyRequestVar(state, ch.VarRequest)
	case types.ChangeSetOptions:
		return applySetOptions(state, ch.Options)
	case types.ChangeResolvePackage:
		return applyResolvePackage(state, ch.Spec, ch.Source, ch.Request)
	case types.ChangeStepBack:
		// Sentinel only; does not modify state (spec.md §4.F item 5).
		return state, nil
	default:
		return state, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown change kind")
	}
}

func applyRequestPackage(state types.State, req *types.PkgRequest) (types.State, error) {
	if req == nil {
		return state, errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("RequestPackage change missing request")
	}
	for i, existing := range state.PkgRequests {
		if existing.Name == req.Name {
			merged, err := MergePkgRequests(existing, *req)
			if err != nil {
				return state, err
			}
			state.PkgRequests[i] = merged
			return state, nil
		}
	}
	// A request against a name already resolved (e.g. a Strong
	// inheritance re-request, or another package's install requirement
	// landing after the fact) is never re-enqueued: spec.md §3's "no
	// two resolved packages share a name" invariant means there is
	// nothing left to search for. It is validated against the existing
	// resolution instead, so a conflicting request aborts the decision
	// rather than silently producing a second resolution of the name.
	for _, resolved := range state.Packages {
		if resolved.Spec.Pkg.Name != req.Name {
			continue
		}
		compat := Contains(req.Range, *resolved.Spec.Pkg.Version, resolved.Spec.Compat)
		if !compat.Compatible {
			return state, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("already resolved " + resolved.Spec.Pkg.String() + " does not satisfy request for " + req.Name + ": " + compat.Reason)
		}
		return state, nil
	}
	state.PkgRequests = append(state.PkgRequests, *req)
	return state, nil
}

func applyRequestVar(state types.State, req *types.VarRequest) (types.State, error) {
	if req == nil {
		return state, errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("RequestVar change missing request")
	}
	for i, existing := range state.VarRequests {
		if existing.Name == req.Name {
			merged, err := MergeVarRequests(existing, *req)
			if err != nil {
				return state, err
			}
			state.VarRequests[i] = merged
			return state, nil
		}
	}
	state.VarRequests = append(state.VarRequests, *req)
	return state, nil
}

func applySetOptions(state types.State, opts *types.OptionMap) (types.State, error) {
	if opts == nil {
		return state, nil
	}
	if state.StaticOptions == nil {
		state.StaticOptions = map[string]struct{}{}
	}
	for _, k := range opts.Keys() {
		v, _ := opts.Get(k)
		if _, static := state.StaticOptions[k]; static {
			if existing, _ := state.Options.Get(k); existing != v {
				return state, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg("option " + k + " is static and cannot be rebound to " + v)
			}
			continue
		}
		state.Options.Set(k, v)
	}
	return state, nil
}

func applyResolvePackage(state types.State, spec *types.Spec, source *types.PackageSource, request *types.PkgRequest) (types.State, error) {
	if spec == nil || source == nil {
		return state, errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("ResolvePackage change missing spec or source")
	}
	kept := state.PkgRequests[:0:0]
	removed := false
	var satisfied types.PkgRequest
	if request != nil {
		satisfied = *request
	}
	for _, r := range state.PkgRequests {
		if !removed && r.Name == spec.Pkg.Name {
			removed = true
			if request == nil {
				satisfied = r
			}
			continue
		}
		kept = append(kept, r)
	}
	state.PkgRequests = kept
	state.Packages = append(state.Packages, types.ResolvedPackage{Spec: spec, Source: *source, Request: satisfied})
	for _, opt := range spec.Build.Options {
		if opt.Static {
			if state.StaticOptions == nil {
				state.StaticOptions = map[string]struct{}{}
			}
			state.StaticOptions[opt.Name] = struct{}{}
		}
	}
	return state, nil
}
