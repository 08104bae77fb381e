package types

// ResolvedPackage is one entry of a State's resolved-packages list: a
// Spec paired with the PackageSource that satisfied it.
type ResolvedPackage struct {
	Spec    *Spec
	Source  PackageSource
	Request PkgRequest
}

// PackageSourceKind discriminates the PackageSource tagged union.
type PackageSourceKind string

const (
	// PackageSourceBinary names an existing prebuilt build: a repo
	// name plus its component->digest layer map.
	PackageSourceBinary PackageSourceKind = "binary"
	// PackageSourceBuild means the spec must be built from source; the
	// Environment field holds the resolved build-environment Solution
	// once source-build recursion (spec.md §4.G) has completed.
	PackageSourceBuild PackageSourceKind = "build"
)

// PackageSource is either a (Repository, layer-digest-map) for a
// prebuilt binary, or a pending/completed source build.
type PackageSource struct {
	Kind       PackageSourceKind
	RepoName   string
	Layers     map[string]string
	Environment *Solution
}

// State is an immutable solver node: the unresolved requests, the
// accumulated var-requests, the bound options, and the packages
// resolved so far.
type State struct {
	PkgRequests []PkgRequest
	VarRequests []VarRequest
	Options     *OptionMap
	Packages    []ResolvedPackage
	// StaticOptions tracks which Options keys were bound by a published
	// (static) build option; SetOptions changes that would rebind one
	// of these to a different value abort the decision.
	StaticOptions map[string]struct{}
}

// Default returns the empty root state (State::default() in spec.md §3).
func Default() State {
	return State{Options: NewOptionMap(), StaticOptions: map[string]struct{}{}}
}

// Clone returns a deep copy of s suitable for Decision.Apply's
// copy-on-write semantics.
func (s State) Clone() State {
	static := make(map[string]struct{}, len(s.StaticOptions))
	for k := range s.StaticOptions {
		static[k] = struct{}{}
	}
	out := State{
		PkgRequests:   append([]PkgRequest(nil), s.PkgRequests...),
		VarRequests:   append([]VarRequest(nil), s.VarRequests...),
		Options:       s.Options.Clone(),
		Packages:      append([]ResolvedPackage(nil), s.Packages...),
		StaticOptions: static,
	}
	return out
}
