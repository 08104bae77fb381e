// Package types holds the plain data records of the spk dependency
// model: versions, identifiers, options, requests, specs, and the
// solver's state/decision/graph/solution records. Parsing, comparison,
// and other behavior live in internal/core.
package types

// Version is a dot-separated tuple of non-negative integers, optionally
// followed by a pre-release tag and/or a post-release tag.
//
// Two Versions are equal iff their normalized forms (Components padded
// to the same arity, tags compared verbatim) match.
type Version struct {
	Components []int64
	Pre        []string
	Post       []string
	Raw        string
}

// IsZero reports whether v is the zero Version (no components parsed).
func (v Version) IsZero() bool {
	return len(v.Components) == 0 && v.Pre == nil && v.Post == nil && v.Raw == ""
}
