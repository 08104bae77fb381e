package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

// rangeOpTokens is ordered longest-token-first so "<=" is never
// mistaken for "<" followed by a stray "=" — the same tokenizing
// precaution the teacher's core.ParseConstraint applies to its own
// operator set.
var rangeOpTokens = []types.RangeOp{
	types.RangeOpGte, types.RangeOpLte, types.RangeOpNe,
	types.RangeOpApprox, types.RangeOpCaret, types.RangeOpCompatible,
	types.RangeOpEq, types.RangeOpGt, types.RangeOpLt,
}

// ParseRange reads a comma-separated conjunction of range atoms.
func ParseRange(raw string) (types.Range, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Range{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("range must not be empty")
	}
	var atoms []types.RangeAtom
	for _, part := range strings.Split(trimmed, ",") {
		atom, err := parseRangeAtom(strings.TrimSpace(part))
		if err != nil {
			return types.Range{}, err
		}
		atoms = append(atoms, atom)
	}
	return types.Range{Atoms: atoms, Raw: trimmed}, nil
}

func parseRangeAtom(part string) (types.RangeAtom, error) {
	if part == "" {
		return types.RangeAtom{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("range atom must not be empty")
	}
	for _, op := range rangeOpTokens {
		token := string(op)
		if token == "" {
			continue
		}
		if strings.HasPrefix(part, token) {
			rest := strings.TrimSpace(part[len(token):])
			if op == types.RangeOpCompatible {
				if rest == "" {
					return types.RangeAtom{}, errbuilder.New().
						WithCode(errbuilder.CodeInvalidArgument).
						WithMsg("compatibility range atom missing letter: " + part)
				}
				letter := rest[:1]
				version := strings.TrimSpace(rest[1:])
				v, err := ParseVersion(version)
				if err != nil {
					return types.RangeAtom{}, err
				}
				return types.RangeAtom{Op: op, Version: v, Letter: letter}, nil
			}
			v, err := ParseVersion(rest)
			if err != nil {
				return types.RangeAtom{}, err
			}
			return types.RangeAtom{Op: op, Version: v}, nil
		}
	}
	// No operator prefix: bare version atom.
	v, err := ParseVersion(part)
	if err != nil {
		return types.RangeAtom{}, err
	}
	return types.RangeAtom{Op: types.RangeOpBare, Version: v}, nil
}

// bound is an inclusive-or-exclusive endpoint used by boundsOf to
// detect an empty intersection between two merged Ranges without a
// full constraint solver (good enough for the conjunctions the
// shorthand grammar produces: bare/~/^/@/comparison atoms).
type bound struct {
	version   types.Version
	exclusive bool
}

// boundsOf collapses atoms into the tightest known lower and upper
// bound; returns nil for a side with no applicable atoms.
func boundsOf(atoms []types.RangeAtom) (lower, upper *bound) {
	tighten := func(cur *bound, v types.Version, exclusive bool, wantHigher bool) *bound {
		if cur == nil {
			return &bound{version: v, exclusive: exclusive}
		}
		c := CompareVersions(v, cur.version)
		if (wantHigher && c > 0) || (!wantHigher && c < 0) {
			return &bound{version: v, exclusive: exclusive}
		}
		if c == 0 && exclusive && !cur.exclusive {
			return &bound{version: v, exclusive: exclusive}
		}
		return cur
	}
	for _, atom := range atoms {
		switch atom.Op {
		case types.RangeOpGt:
			lower = tighten(lower, atom.Version, true, true)
		case types.RangeOpGte:
			lower = tighten(lower, atom.Version, false, true)
		case types.RangeOpLt:
			upper = tighten(upper, atom.Version, true, false)
		case types.RangeOpLte:
			upper = tighten(upper, atom.Version, false, false)
		case types.RangeOpEq:
			lower = tighten(lower, atom.Version, false, true)
			upper = tighten(upper, atom.Version, false, false)
		case types.RangeOpBare:
			lower = tighten(lower, atom.Version, false, true)
			upper = tighten(upper, NextMajor(atom.Version), true, false)
		case types.RangeOpApprox:
			lower = tighten(lower, atom.Version, false, true)
			upper = tighten(upper, NextMinor(atom.Version), true, false)
		case types.RangeOpCaret, types.RangeOpCompatible:
			lower = tighten(lower, atom.Version, false, true)
			upper = tighten(upper, NextMajor(atom.Version), true, false)
		}
	}
	return lower, upper
}

// Empty reports whether r's atoms are jointly unsatisfiable (its
// collapsed lower bound exceeds its upper bound).
func Empty(r types.Range) bool {
	lower, upper := boundsOf(r.Atoms)
	if lower == nil || upper == nil {
		return false
	}
	c := CompareVersions(lower.version, upper.version)
	if c > 0 {
		return true
	}
	if c == 0 && (lower.exclusive || upper.exclusive) {
		return true
	}
	return false
}

// Intersect returns the conjunction of a and b (simply their atoms
// concatenated — a conjunction of conjunctions is a conjunction).
func Intersect(a, b types.Range) types.Range {
	atoms := append(append([]types.RangeAtom(nil), a.Atoms...), b.Atoms...)
	raw := a.Raw
	if b.Raw != "" {
		if raw != "" {
			raw += ","
		}
		raw += b.Raw
	}
	return types.Range{Atoms: atoms, Raw: raw}
}

// Contains tests whether candidate satisfies every atom of r, using
// declaredCompat — the candidate's own declared spec contract, never
// the requester's (spec.md §4.A) — for the compat-sensitive atoms
// ("^", "@"). A bare atom is bounded by NextMajor and "~" by
// NextMinor, whatever the declared contract.
func Contains(r types.Range, candidate types.Version, declaredCompat types.Compat) types.Compatibility {
	for _, atom := range r.Atoms {
		if compat := containsAtom(atom, candidate, declaredCompat); !compat.Compatible {
			return compat
		}
	}
	return types.Ok()
}

func containsAtom(atom types.RangeAtom, candidate types.Version, declaredCompat types.Compat) types.Compatibility {
	switch atom.Op {
	case types.RangeOpEq:
		if !VersionsEqual(candidate, atom.Version) {
			return types.Incompatible(fmt.Sprintf("%s != %s (required =%s)", VersionString(candidate), VersionString(atom.Version), VersionString(atom.Version)))
		}
	case types.RangeOpNe:
		if VersionsEqual(candidate, atom.Version) {
			return types.Incompatible(fmt.Sprintf("%s == %s (excluded by !=%s)", VersionString(candidate), VersionString(atom.Version), VersionString(atom.Version)))
		}
	case types.RangeOpLt:
		if CompareVersions(candidate, atom.Version) >= 0 {
			return types.Incompatible(fmt.Sprintf("%s not < %s", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpLte:
		if CompareVersions(candidate, atom.Version) > 0 {
			return types.Incompatible(fmt.Sprintf("%s not <= %s", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpGt:
		if CompareVersions(candidate, atom.Version) <= 0 {
			return types.Incompatible(fmt.Sprintf("%s not > %s", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpGte:
		if CompareVersions(candidate, atom.Version) < 0 {
			return types.Incompatible(fmt.Sprintf("%s not >= %s", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpBare:
		upper := NextMajor(atom.Version)
		if CompareVersions(candidate, atom.Version) < 0 || CompareVersions(candidate, upper) >= 0 {
			return types.Incompatible(fmt.Sprintf("%s not in [%s, %s)", VersionString(candidate), VersionString(atom.Version), VersionString(upper)))
		}
	case types.RangeOpApprox:
		upper := NextMinor(atom.Version)
		if CompareVersions(candidate, atom.Version) < 0 || CompareVersions(candidate, upper) >= 0 {
			return types.Incompatible(fmt.Sprintf("%s not ~%s (minor-compatible)", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpCaret:
		if CompareVersions(candidate, atom.Version) < 0 || !CompatibleAt(declaredCompat, candidate, atom.Version, 'a') {
			return types.Incompatible(fmt.Sprintf("%s not ^%s (major-compatible)", VersionString(candidate), VersionString(atom.Version)))
		}
	case types.RangeOpCompatible:
		letter := byte('x')
		if len(atom.Letter) > 0 {
			letter = atom.Letter[0]
		}
		if CompareVersions(candidate, atom.Version) < 0 || !CompatibleAt(declaredCompat, candidate, atom.Version, letter) {
			return types.Incompatible(fmt.Sprintf("%s not @%s%s-compatible", VersionString(candidate), atom.Letter, VersionString(atom.Version)))
		}
	default:
		return types.Incompatible("unknown range operator")
	}
	return types.Ok()
}
