package types

// OptionMap is an ordered mapping from option key to string value.
// Keys are either global ("debug") or namespaced ("python.abi").
// Insertion order is preserved for deterministic rendering, but the
// Digest (internal/core) is always taken over lexicographically
// sorted keys so permuting insertion order never changes it.
type OptionMap struct {
	keys   []string
	values map[string]string
}

// NewOptionMap returns an empty OptionMap ready for Set.
func NewOptionMap() *OptionMap {
	return &OptionMap{values: map[string]string{}}
}

// Set assigns key=value, preserving first-insertion order for existing
// keys and appending new keys at the end.
func (m *OptionMap) Set(key, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value bound to key and whether it was present.
func (m *OptionMap) Get(key string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OptionMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of bound keys.
func (m *OptionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy of m.
func (m *OptionMap) Clone() *OptionMap {
	out := NewOptionMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Inheritance governs how a Var build option propagates into packages
// that depend on the one declaring it.
type Inheritance string

const (
	InheritanceWeak               Inheritance = "Weak"
	InheritanceStrong             Inheritance = "Strong"
	InheritanceStrongForBuildOnly Inheritance = "StrongForBuildOnly"
)

// PrereleasePolicy controls whether pre-release builds of a Pkg option
// (or a PkgRequest, see request.go) may be selected.
type PrereleasePolicy string

const (
	PrereleasePolicyExcludeAll PrereleasePolicy = "ExcludeAll"
	PrereleasePolicyIncludeAll PrereleasePolicy = "IncludeAll"
)

// BuildOptionKind discriminates the BuildOption tagged union.
type BuildOptionKind string

const (
	BuildOptionKindVar BuildOptionKind = "var"
	BuildOptionKindPkg BuildOptionKind = "pkg"
)

// BuildOption is a tagged union over the Var and Pkg option variants
// a spec's build.options list declares.
type BuildOption struct {
	Kind BuildOptionKind

	Name    string
	Default string
	Static  bool

	// Var-only fields.
	Choices     []string
	Inheritance Inheritance

	// Pkg-only fields.
	PrereleasePolicy PrereleasePolicy
}
