package core

import (
	"context"
	"strings"

	"avular-packages/internal/types"
)

// tryCandidate implements spec.md §4.G steps 4–5: validate a single
// candidate against the state (seeding its build options, checking
// var-request satisfiability, and resolving its source), then build
// the Decision and trial-apply it. A validation or merge failure
// surfaces as Incompatible(reason); repository/internal failures
// surface as a real error.
func (r *SolverRuntime) tryCandidate(ctx context.Context, state types.State, req types.PkgRequest, cand candidate) (types.State, types.Decision, types.Compatibility, error) {
	name := cand.identifier.Name
	version := *cand.identifier.Version

	for _, vr := range state.VarRequests {
		prefix := name + "."
		if !strings.HasPrefix(vr.Name, prefix) && !hasGlobalOption(cand.spec, vr.Name) {
			continue
		}
		optName := vr.Name
		if strings.HasPrefix(vr.Name, prefix) {
			optName = strings.TrimPrefix(vr.Name, prefix)
		}
		opt, ok := findOption(cand.spec, optName)
		if !ok {
			return types.State{}, types.Decision{}, types.Incompatible(
				"var request " + vr.Name + " references an option " + name + " does not declare"), nil
		}
		if len(opt.Choices) > 0 && !choiceContains(opt.Choices, vr.Value) {
			return types.State{}, types.Decision{}, types.Incompatible(
				"var request " + vr.Name + "=" + vr.Value + " not in choices for " + opt.Name), nil
		}
		if opt.Static && opt.Default != "" && vr.Value != opt.Default {
			return types.State{}, types.Decision{}, types.Incompatible(
				"var request " + vr.Name + "=" + vr.Value + " contradicts static option " + opt.Name), nil
		}
	}

	optionChanges, seededValues, notes, compat := seedAllOptions(name, cand.spec, state)
	if !compat.Compatible {
		return types.State{}, types.Decision{}, compat, nil
	}

	source, compat, err := r.resolveSource(ctx, state, cand)
	if err != nil {
		return types.State{}, types.Decision{}, types.Compatibility{}, err
	}
	if !compat.Compatible {
		return types.State{}, types.Decision{}, compat, nil
	}

	decision := types.Decision{Notes: notes}
	if optionChanges.Len() > 0 {
		decision.Changes = append(decision.Changes, types.Change{Kind: types.ChangeSetOptions, Options: optionChanges})
	}
	satisfiedReq := req
	decision.Changes = append(decision.Changes, types.Change{Kind: types.ChangeResolvePackage, Spec: cand.spec, Source: &source, Request: &satisfiedReq})
	decision.Changes = append(decision.Changes, embeddedResolveChanges(source, cand.spec.Embedded)...)

	for _, opt := range cand.spec.Build.Options {
		value := seededValues[opt.Name]
		decision.Changes = append(decision.Changes, InheritanceChanges(name, version, opt, value)...)
	}

	for _, req := range cand.spec.Install.Requirements {
		if req.InclusionPolicy == types.InclusionPolicyIfAlreadyPresent && !packagePresent(state, req.Name) {
			continue
		}
		reqCopy := req
		decision.Changes = append(decision.Changes, types.Change{Kind: types.ChangeRequestPackage, PkgRequest: &reqCopy})
	}

	newState, applyErr := Apply(state, decision)
	if applyErr != nil {
		return types.State{}, types.Decision{}, types.Incompatible(applyErr.Error()), nil
	}
	return newState, decision, types.Ok(), nil
}

// embeddedResolveChanges implements spec.md §4.D's "solving the parent
// adds them to the solution atomically": an embedded spec carries no
// requester of its own, so each one gets a synthetic exact-version
// ResolvePackage change in the same Decision as its parent, sharing the
// parent's PackageSource (an embedded spec ships inside the parent's own
// payload, not a separate repository lookup). Recurses so an embedded
// spec that itself embeds further specs still resolves atomically.
func embeddedResolveChanges(source types.PackageSource, embedded []*types.Spec) []types.Change {
	var changes []types.Change
	for _, child := range embedded {
		if child == nil || child.Pkg.Version == nil {
			continue
		}
		pin := types.PkgRequest{
			Name:             child.Pkg.Name,
			Range:            types.Range{Raw: "=" + VersionString(*child.Pkg.Version), Atoms: []types.RangeAtom{{Op: types.RangeOpEq, Version: *child.Pkg.Version}}},
			PrereleasePolicy: types.PrereleasePolicyExcludeAll,
			InclusionPolicy:  types.InclusionPolicyAlways,
			Raw:              child.Pkg.Name + "/=" + VersionString(*child.Pkg.Version),
		}
		childSource := source
		changes = append(changes, types.Change{Kind: types.ChangeResolvePackage, Spec: child, Source: &childSource, Request: &pin})
		changes = append(changes, embeddedResolveChanges(source, child.Embedded)...)
	}
	return changes
}

func hasGlobalOption(spec *types.Spec, name string) bool {
	_, ok := findOption(spec, name)
	return ok
}

func findOption(spec *types.Spec, name string) (types.BuildOption, bool) {
	for _, opt := range spec.Build.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return types.BuildOption{}, false
}

func choiceContains(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

func packagePresent(state types.State, name string) bool {
	for _, p := range state.Packages {
		if p.Spec.Pkg.Name == name {
			return true
		}
	}
	for _, r := range state.PkgRequests {
		if r.Name == name {
			return true
		}
	}
	return false
}

// seedAllOptions seeds every build option the candidate declares,
// returning the options to bind, the chosen values keyed by option
// name (for InheritanceChanges), and any OptionDefaulted notes.
func seedAllOptions(declaringPkg string, spec *types.Spec, state types.State) (*types.OptionMap, map[string]string, []types.Note, types.Compatibility) {
	out := types.NewOptionMap()
	values := map[string]string{}
	var notes []types.Note
	for _, opt := range spec.Build.Options {
		result := SeedOption(opt, declaringPkg, state, nil)
		if !result.Compatibility.Compatible {
			return nil, nil, nil, result.Compatibility
		}
		out.Set(opt.Name, result.Value)
		values[opt.Name] = result.Value
		if result.Note != nil {
			notes = append(notes, *result.Note)
		}
	}
	return out, values, notes, types.Ok()
}
