package types

// SolvedRequest pairs an original request with the Spec and
// PackageSource that satisfied it.
type SolvedRequest struct {
	Request PkgRequest
	Spec    *Spec
	Source  PackageSource
}

// Solution is the solver's final output: an ordered list of
// SolvedRequests (package names appear at most once), the effective
// OptionMap, and the set of distinct repositories referenced.
type Solution struct {
	Requests      []SolvedRequest
	Options       *OptionMap
	Repositories  []string
}
