package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"avular-packages/internal/types"
)

// Digest computes the canonical build identifier for an OptionMap: a
// deterministic hash over its keys in lexicographic order with values
// rendered canonically (spec.md §3), stable under permutation of
// insertion order (spec.md §8 round-trip property). Modeled on the
// teacher's buildSnapshotID sha256-over-canonical-rendering approach.
func Digest(m *types.OptionMap) string {
	keys := m.Keys()
	sort.Strings(keys)
	h := sha256.New()
	for _, k := range keys {
		v, _ := m.Get(k)
		fmt.Fprintf(h, "%s=%s\n", k, v)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// SeedResult is the outcome of seeding one BuildOption's value.
type SeedResult struct {
	Value         string
	Compatibility types.Compatibility
	Note          *types.Note
}

// SeedOption resolves the value of a single BuildOption, in the order
// spec.md §4.C specifies: explicit user-supplied value > existing
// bound value in state options > value from a matching VarRequest >
// option default. Choices violations surface as Incompatible, and so
// does any value other than the default for a static option.
func SeedOption(opt types.BuildOption, declaringPkg string, state types.State, userOptions *types.OptionMap) SeedResult {
	var value string
	var fromDefault bool

	if userOptions != nil {
		if v, ok := userOptions.Get(opt.Name); ok {
			value = v
		}
	}
	if value == "" && state.Options != nil {
		if v, ok := state.Options.Get(opt.Name); ok {
			value = v
		}
	}
	if value == "" {
		namespaced := declaringPkg + "." + opt.Name
		for _, vr := range state.VarRequests {
			if vr.Name == namespaced || vr.Name == opt.Name {
				value = vr.Value
				break
			}
		}
	}
	if value == "" {
		value = opt.Default
		fromDefault = true
	}

	if len(opt.Choices) > 0 {
		ok := false
		for _, c := range opt.Choices {
			if c == value {
				ok = true
				break
			}
		}
		if !ok {
			return SeedResult{Compatibility: types.Incompatible(
				fmt.Sprintf("option %s value %s not in choices", opt.Name, value),
			)}
		}
	}
	if opt.Static && opt.Default != "" && value != opt.Default {
		return SeedResult{Compatibility: types.Incompatible(
			fmt.Sprintf("option %s is static at %s and cannot take %s", opt.Name, opt.Default, value),
		)}
	}

	var note *types.Note
	if fromDefault {
		note = &types.Note{Category: types.NoteOptionDefaulted, Message: fmt.Sprintf("%s.%s defaulted to %q", declaringPkg, opt.Name, value)}
	}
	return SeedResult{Value: value, Compatibility: types.Ok(), Note: note}
}

// InheritanceChanges produces the Changes option inheritance adds to
// the state once a package resolving `opt` is applied, per spec.md
// §4.C:
//   - Weak: no propagation.
//   - Strong: a VarRequest binding "<pkgname>.<optname>=<value>" plus a
//     PkgRequest pinning <pkgname> to the resolved version (so any other
//     requester of <pkgname> must agree with this build).
//   - StrongForBuildOnly: the VarRequest only.
func InheritanceChanges(declaringPkg string, resolvedVersion types.Version, opt types.BuildOption, value string) []types.Change {
	if opt.Kind != types.BuildOptionKindVar || opt.Inheritance == types.InheritanceWeak || opt.Inheritance == "" {
		return nil
	}
	varReq := types.VarRequest{Name: declaringPkg + "." + opt.Name, Value: value}
	changes := []types.Change{{Kind: types.ChangeRequestVar, VarRequest: &varReq}}
	if opt.Inheritance == types.InheritanceStrong {
		pinned := types.PkgRequest{
			Name:                 declaringPkg,
			Range:                types.Range{Raw: "=" + VersionString(resolvedVersion), Atoms: []types.RangeAtom{{Op: types.RangeOpEq, Version: resolvedVersion}}},
			PrereleasePolicy:     types.PrereleasePolicyExcludeAll,
			InclusionPolicy:      types.InclusionPolicyAlways,
			FromBuildEnvTemplate: declaringPkg + "." + opt.Name,
			Raw:                  declaringPkg + "/=" + VersionString(resolvedVersion),
		}
		changes = append(changes, types.Change{Kind: types.ChangeRequestPackage, PkgRequest: &pinned})
	}
	return changes
}

// CanonicalString renders m's bindings sorted by key, for diagnostics
// and golden-file tests that must not depend on insertion order.
func CanonicalString(m *types.OptionMap) string {
	keys := m.Keys()
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := m.Get(k)
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}
