package types

// BuildKind distinguishes the three forms an Identifier's build
// component can take.
type BuildKind string

const (
	BuildKindDigest   BuildKind = "digest"
	BuildKindSource   BuildKind = "src"
	BuildKindEmbedded BuildKind = "embedded"
)

// Build is the third element of an Identifier triple: either an opaque
// content-addressed digest, or one of the two literal markers.
type Build struct {
	Kind   BuildKind
	Digest string // populated only when Kind == BuildKindDigest
}

// String renders Build the way it appears in an identifier string.
func (b Build) String() string {
	switch b.Kind {
	case BuildKindSource:
		return "src"
	case BuildKindEmbedded:
		return "embedded"
	case BuildKindDigest:
		return b.Digest
	default:
		return ""
	}
}

// IsZero reports whether no build component was present.
func (b Build) IsZero() bool {
	return b.Kind == ""
}

// Identifier is the triple (name, version?, build?) naming a concrete
// package build.
type Identifier struct {
	Name    string
	Version *Version
	Build   *Build
}

// String renders the identifier using the <name>[/<version>[/<build>]]
// grammar from spec §6.
func (id Identifier) String() string {
	out := id.Name
	if id.Version != nil {
		out += "/" + id.Version.Raw
		if id.Build != nil {
			out += "/" + id.Build.String()
		}
	}
	return out
}
