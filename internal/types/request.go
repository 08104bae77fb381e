package types

// InclusionPolicy controls whether a PkgRequest must always be
// satisfied or only when the package is already present from some
// other request.
type InclusionPolicy string

const (
	InclusionPolicyAlways           InclusionPolicy = "Always"
	InclusionPolicyIfAlreadyPresent InclusionPolicy = "IfAlreadyPresent"
)

// VarRequest binds a global or namespaced option name to a required
// value. FromBuildEnv marks a binding that originated from a source
// build's environment rather than a direct user request.
type VarRequest struct {
	Name         string
	Value        string
	FromBuildEnv bool
}

// PkgRequest asks for a package satisfying a range under a given
// prerelease and inclusion policy.
type PkgRequest struct {
	Name             string
	Range            Range
	PrereleasePolicy PrereleasePolicy
	InclusionPolicy  InclusionPolicy
	// FromBuildEnvTemplate records the unresolved "<pkgname>.<optname>"
	// template this request was generated from, if it was generated by
	// option inheritance rather than typed directly by a user.
	FromBuildEnvTemplate string
	Raw                  string
}

// RequestKind discriminates the Request tagged union over both request
// variants. Change and a source build's seeded requests do not use it:
// they keep PkgRequest and VarRequest in separate fields and slices.
type RequestKind string

const (
	RequestKindPkg RequestKind = "pkg"
	RequestKindVar RequestKind = "var"
)

// Request is a tagged union over PkgRequest and VarRequest.
type Request struct {
	Kind RequestKind
	Pkg  *PkgRequest
	Var  *VarRequest
}
