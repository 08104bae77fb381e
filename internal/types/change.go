package types

// ChangeKind discriminates the five Change variants of spec.md §3/§4.F.
type ChangeKind string

const (
	ChangeRequestPackage ChangeKind = "RequestPackage"
	ChangeRequestVar     ChangeKind = "RequestVar"
	ChangeSetOptions     ChangeKind = "SetOptions"
	ChangeResolvePackage ChangeKind = "ResolvePackage"
	ChangeStepBack       ChangeKind = "StepBack"
)

// Change is a tagged union over the five deltas a Decision may apply
// between two States.
type Change struct {
	Kind ChangeKind

	// ChangeRequestPackage
	PkgRequest *PkgRequest
	// ChangeRequestVar
	VarRequest *VarRequest
	// ChangeSetOptions
	Options *OptionMap
	// ChangeResolvePackage
	Spec    *Spec
	Source  *PackageSource
	Request *PkgRequest
	// ChangeStepBack
	Reason string
}

// NoteCategory is the closed taxonomy of human-readable Decision notes
// (DESIGN.md Open Question 1).
type NoteCategory string

const (
	NoteCandidateRejected  NoteCategory = "CandidateRejected"
	NoteBacktrack          NoteCategory = "Backtrack"
	NoteOptionDefaulted    NoteCategory = "OptionDefaulted"
	NoteSourceBuildStarted NoteCategory = "SourceBuildStarted"
	NoteSourceBuildFailed  NoteCategory = "SourceBuildFailed"
)

// Note is one human-readable annotation attached to a Decision.
type Note struct {
	Category NoteCategory
	Message  string
}

// Decision is an ordered list of Changes applied atomically between
// two States, plus zero or more Notes explaining why.
type Decision struct {
	Changes []Change
	Notes   []Note
}
