package core

import (
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

// ParseVersion reads a tolerant dot-separated version: arbitrary
// numeric arity, optional "-prerelease.tag" suffix, optional
// "+post.tag" suffix.
func ParseVersion(raw string) (types.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version must not be empty")
	}

	rest := trimmed
	var post []string
	if i := strings.Index(rest, "+"); i >= 0 {
		post = strings.Split(rest[i+1:], ".")
		rest = rest[:i]
	}
	var pre []string
	if i := strings.Index(rest, "-"); i >= 0 {
		pre = strings.Split(rest[i+1:], ".")
		rest = rest[:i]
	}
	if rest == "" {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version must have a numeric component: " + raw)
	}

	parts := strings.Split(rest, ".")
	components := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return types.Version{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("version component must be a non-negative integer: " + raw)
		}
		components = append(components, n)
	}

	return types.Version{Components: components, Pre: pre, Post: post, Raw: trimmed}, nil
}

// CompareVersions implements the total order of spec.md §3: compare
// the integer tuple (shorter pads with zero), then pre-release (lower
// than no pre-release at the same base), then post-release (higher
// than no post-release at the same base).
func CompareVersions(a, b types.Version) int {
	if c := compareComponents(a.Components, b.Components); c != 0 {
		return c
	}
	if c := comparePreRelease(a.Pre, b.Pre); c != 0 {
		return c
	}
	return comparePostRelease(a.Post, b.Post)
}

func compareComponents(a, b []int64) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv int64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// comparePreRelease: no pre-release sorts higher than any pre-release
// at the same base version; among two pre-releases, compare
// identifiers left to right, numeric-aware.
func comparePreRelease(a, b []string) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return 1
	}
	if len(b) == 0 {
		return -1
	}
	return compareIdentifiers(a, b)
}

// comparePostRelease: no post-release sorts lower than any
// post-release at the same base version.
func comparePostRelease(a, b []string) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return -1
	}
	if len(b) == 0 {
		return 1
	}
	return compareIdentifiers(a, b)
}

func compareIdentifiers(a, b []string) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if i >= len(a) {
			return -1
		}
		if i >= len(b) {
			return 1
		}
		ai, aErr := strconv.ParseInt(a[i], 10, 64)
		bi, bErr := strconv.ParseInt(b[i], 10, 64)
		if aErr == nil && bErr == nil {
			if ai != bi {
				if ai < bi {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// VersionString renders v canonically: the integer tuple, then a
// "-pre" suffix, then a "+post" suffix.
func VersionString(v types.Version) string {
	parts := make([]string, len(v.Components))
	for i, c := range v.Components {
		parts[i] = strconv.FormatInt(c, 10)
	}
	out := strings.Join(parts, ".")
	if len(v.Pre) > 0 {
		out += "-" + strings.Join(v.Pre, ".")
	}
	if len(v.Post) > 0 {
		out += "+" + strings.Join(v.Post, ".")
	}
	return out
}

// VersionsEqual reports whether a and b's normalized forms match.
func VersionsEqual(a, b types.Version) bool {
	return CompareVersions(a, b) == 0
}

// NextMajor returns the version with the first component incremented,
// all following components reset to zero and tags dropped; used by the bare
// range atom ("V alone means >=V,<next-major(V)").
func NextMajor(v types.Version) types.Version {
	components := append([]int64(nil), v.Components...)
	if len(components) == 0 {
		components = []int64{1}
	} else {
		components[0]++
		for i := 1; i < len(components); i++ {
			components[i] = 0
		}
	}
	return types.Version{Components: components, Raw: VersionString(types.Version{Components: components})}
}

// NextMinor returns v with the second component incremented, all
// following components reset to zero and tags dropped; used by the
// "~V" approximate atom.
func NextMinor(v types.Version) types.Version {
	components := append([]int64(nil), v.Components...)
	for len(components) < 2 {
		components = append(components, 0)
	}
	components[1]++
	for i := 2; i < len(components); i++ {
		components[i] = 0
	}
	return types.Version{Components: components, Raw: VersionString(types.Version{Components: components})}
}
