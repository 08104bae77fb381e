package core

import (
	"strings"

	"avular-packages/internal/types"
)

// ParseCompat reads a dot-separated compat contract string such as
// "x.a.b" or "x.ab.x" (a position may carry more than one capability
// letter). An empty string yields the default contract.
func ParseCompat(raw string) types.Compat {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.DefaultCompat()
	}
	return types.Compat{Positions: strings.Split(trimmed, "."), Raw: trimmed}
}

// HasLetter reports whether position i of the contract declares
// letter.
func HasLetter(contract types.Compat, i int, letter byte) bool {
	return strings.IndexByte(contract.LetterAt(i), letter) >= 0
}

// CompatibleAt tests whether candidate v is compatible with declared
// version d under contract for the given capability letter ('a' for
// API-compatible, 'b' for binary-compatible), per spec.md §3/§4.A:
// walk components, the first position where v[i] != d[i] determines
// compatibility by the contract letter at that position; the required
// letter must be present there. Equal versions are always compatible.
func CompatibleAt(contract types.Compat, v, d types.Version, letter byte) bool {
	n := len(v.Components)
	if len(d.Components) > n {
		n = len(d.Components)
	}
	for i := 0; i < n; i++ {
		var vc, dc int64
		if i < len(v.Components) {
			vc = v.Components[i]
		}
		if i < len(d.Components) {
			dc = d.Components[i]
		}
		if vc != dc {
			return HasLetter(contract, i, letter)
		}
	}
	// Integer tuples identical; pre/post-release differences never
	// break compatibility under the component-position contract.
	return true
}
