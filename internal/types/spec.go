package types

// SourceSpecKind discriminates the SourceSpec tagged union by its
// collection-method discriminator key (path/git/tar).
type SourceSpecKind string

const (
	SourceSpecKindPath SourceSpecKind = "path"
	SourceSpecKindGit  SourceSpecKind = "git"
	SourceSpecKindTar  SourceSpecKind = "tar"
)

// SourceSpec describes one way to collect a package's source tree.
// The rsync/git/tar fetchers themselves are out of scope (spec.md §1);
// this is only the declarative record a Spec carries.
type SourceSpec struct {
	Kind SourceSpecKind `yaml:"-"`
	Path string         `yaml:"path,omitempty"`
	Git  string         `yaml:"git,omitempty"`
	Ref  string         `yaml:"ref,omitempty"`
	Tar  string         `yaml:"tar,omitempty"`
}

// BuildSpec is the `build` section of a Spec: its option declarations
// and default variant matrix.
type BuildSpec struct {
	Options  []BuildOption `yaml:"options,omitempty"`
	Variants []*OptionMap  `yaml:"-"`
	Script   []string      `yaml:"script,omitempty"`
}

// TestStage names a point in the package lifecycle a TestSpec runs at.
type TestStage string

const (
	TestStageBuild   TestStage = "build"
	TestStageInstall TestStage = "install"
	TestStageSource  TestStage = "source"
)

// TestSpec is one entry of a Spec's `tests` list.
type TestSpec struct {
	Stage  TestStage `yaml:"stage"`
	Name   string    `yaml:"name,omitempty"`
	Script []string  `yaml:"script,omitempty"`
}

// InstallSpec is the `install` section of a Spec: the runtime
// requirements a resolved package of this spec carries forward.
type InstallSpec struct {
	Requirements []PkgRequest `yaml:"-"`
	RawRequirements []string  `yaml:"requirements,omitempty"`
}

// Spec is the full package specification record: `{ pkg, compat,
// deprecated, sources, build, tests, install }` per spec.md §3.
type Spec struct {
	Pkg        Identifier `yaml:"-"`
	RawPkg     string     `yaml:"pkg"`
	RawCompat  string     `yaml:"compat,omitempty"`
	Compat     Compat     `yaml:"-"`
	Deprecated bool       `yaml:"deprecated,omitempty"`

	Sources []SourceSpec `yaml:"sources,omitempty"`
	Build   BuildSpec    `yaml:"build,omitempty"`
	Tests   []TestSpec   `yaml:"tests,omitempty"`
	Install InstallSpec  `yaml:"install,omitempty"`

	// Embedded holds full child Specs declared inline whose build is
	// marked `embedded`; resolving the parent implies their presence
	// (spec.md §4.D).
	Embedded []*Spec `yaml:"embedded,omitempty"`
}

// IsSource reports whether this spec describes a source package
// (pkg.build == src).
func (s Spec) IsSource() bool {
	return s.Pkg.Build != nil && s.Pkg.Build.Kind == BuildKindSource
}

// KnownSpecKeys is the set of top-level keys §6 allows in a spec
// document; any other key is rejected by the strict decoder.
var KnownSpecKeys = map[string]struct{}{
	"pkg": {}, "compat": {}, "deprecated": {}, "sources": {},
	"build": {}, "tests": {}, "install": {}, "embedded": {},
}
