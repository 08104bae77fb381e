package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

// ParsePkgRequest reads the package-request shorthand grammar
// `name[/range][@prerelease-policy]` (spec.md §4.B). The only
// recognized `@` suffix is `prerelease`, selecting
// PrereleasePolicyIncludeAll; its absence means ExcludeAll.
func ParsePkgRequest(raw string) (types.PkgRequest, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.PkgRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package request must not be empty")
	}
	policy := types.PrereleasePolicyExcludeAll
	rest := trimmed
	if idx := strings.LastIndex(rest, "@"); idx >= 0 {
		suffix := rest[idx+1:]
		switch suffix {
		case "prerelease":
			policy = types.PrereleasePolicyIncludeAll
		default:
			return types.PkgRequest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unknown prerelease-policy suffix: " + suffix)
		}
		rest = rest[:idx]
	}
	parts := strings.SplitN(rest, "/", 2)
	name := parts[0]
	if !ValidName(name) {
		return types.PkgRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid package request name: " + name)
	}
	var rng types.Range
	if len(parts) == 2 && parts[1] != "" {
		r, err := ParseRange(parts[1])
		if err != nil {
			return types.PkgRequest{}, err
		}
		rng = r
	}
	return types.PkgRequest{
		Name:             name,
		Range:            rng,
		PrereleasePolicy: policy,
		InclusionPolicy:  types.InclusionPolicyAlways,
		Raw:              trimmed,
	}, nil
}

// ParseVarRequest reads the variable-request shorthand grammar
// `name=value` (spec.md §4.B).
func ParseVarRequest(raw string) (types.VarRequest, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.SplitN(trimmed, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return types.VarRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("variable request must be name=value: " + raw)
	}
	return types.VarRequest{Name: strings.TrimSpace(parts[0]), Value: strings.TrimSpace(parts[1])}, nil
}

// MergePkgRequests merges two requests for the same package name:
// the intersection of their ranges, and the stricter of each policy
// (Always > IfAlreadyPresent; ExcludeAll > IncludeAll). An empty
// intersection merges into ConflictingRequests.
func MergePkgRequests(a, b types.PkgRequest) (types.PkgRequest, error) {
	if a.Name != b.Name {
		return types.PkgRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot merge requests for different packages: " + a.Name + ", " + b.Name)
	}
	merged := Intersect(a.Range, b.Range)
	if Empty(merged) {
		return types.PkgRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("conflicting requests for " + a.Name + ": " + a.Raw + " vs " + b.Raw)
	}
	policy := a.PrereleasePolicy
	if b.PrereleasePolicy == types.PrereleasePolicyExcludeAll {
		policy = types.PrereleasePolicyExcludeAll
	}
	inclusion := a.InclusionPolicy
	if b.InclusionPolicy == types.InclusionPolicyAlways {
		inclusion = types.InclusionPolicyAlways
	}
	return types.PkgRequest{
		Name:             a.Name,
		Range:            merged,
		PrereleasePolicy: policy,
		InclusionPolicy:  inclusion,
		Raw:              a.Raw,
	}, nil
}

// MergeVarRequests merges two VarRequests for the same name: a
// conflicting binding (name=x vs name=y) is a ConflictingRequests
// error; identical bindings merge into either one.
func MergeVarRequests(a, b types.VarRequest) (types.VarRequest, error) {
	if a.Name != b.Name {
		return types.VarRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot merge var requests for different names: " + a.Name + ", " + b.Name)
	}
	if a.Value != b.Value {
		return types.VarRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg("conflicting variable requests for " + a.Name + ": " + a.Value + " vs " + b.Value)
	}
	return a, nil
}
