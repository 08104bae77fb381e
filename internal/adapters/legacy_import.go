package adapters

import (
	"os"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/shared"
)

// LegacyEcosystem names the version scheme a LegacyLockEntry was
// published under, matching the two ecosystems the teacher's own
// `avular-packages resolve` command could emit a lock for.
type LegacyEcosystem string

const (
	LegacyEcosystemAPT LegacyEcosystem = "apt"
	LegacyEcosystemPip LegacyEcosystem = "pip"
)

// LegacyLockEntry is one pinned dependency from a pre-spk APT/pip lock
// file.
type LegacyLockEntry struct {
	Ecosystem LegacyEcosystem `yaml:"ecosystem"`
	Name      string          `yaml:"name"`
	Version   string          `yaml:"version"`
}

// LegacyImportAdapter migrates a legacy APT/pip lock file into spk
// PkgRequest shorthand strings (`spk migrate-legacy-lock`). It is a
// one-time interop path: the solver itself never calls into it.
type LegacyImportAdapter struct{}

// NewLegacyImportAdapter returns a ready-to-use LegacyImportAdapter.
func NewLegacyImportAdapter() LegacyImportAdapter {
	return LegacyImportAdapter{}
}

// LoadLegacyLock reads a YAML list of LegacyLockEntry from path.
func (LegacyImportAdapter) LoadLegacyLock(path string) ([]LegacyLockEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("legacy lock file not found: " + path).
			WithCause(err)
	}
	var entries []LegacyLockEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse legacy lock yaml").
			WithCause(err)
	}
	return entries, nil
}

// MigrateToRequests validates every entry's version against its
// declared ecosystem (go-deb-version for apt, go-pep440-version for
// pip), normalizes pip names per PEP 503, sorts entries deterministically
// by (ecosystem, name), and emits spk `name/=version` request shorthand
// strings (spec.md §4.B exact-version atom) ready for `spk resolve`.
func (LegacyImportAdapter) MigrateToRequests(entries []LegacyLockEntry) ([]string, error) {
	normalized := make([]LegacyLockEntry, len(entries))
	copy(normalized, entries)
	for i, e := range normalized {
		switch e.Ecosystem {
		case LegacyEcosystemAPT:
			if _, err := debversion.NewVersion(e.Version); err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("invalid debian version for " + e.Name + ": " + e.Version).
					WithCause(err)
			}
		case LegacyEcosystemPip:
			if _, err := pep440.Parse(e.Version); err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("invalid PEP 440 version for " + e.Name + ": " + e.Version).
					WithCause(err)
			}
			normalized[i].Name = shared.NormalizePipName(e.Name)
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unknown legacy ecosystem: " + string(e.Ecosystem))
		}
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].Ecosystem != normalized[j].Ecosystem {
			return normalized[i].Ecosystem < normalized[j].Ecosystem
		}
		return normalized[i].Name < normalized[j].Name
	})

	out := make([]string, 0, len(normalized))
	for _, e := range normalized {
		out = append(out, strings.ToLower(e.Name)+"/="+translateLegacyVersion(e))
	}
	return out, nil
}

// translateLegacyVersion strips the Debian revision suffix ("-1ubuntu1")
// and any PEP 440 local-version segment ("+cpu") that have no meaning
// in spk's own dot-separated integer version grammar (spec.md §3), by
// cutting at the first '-' or '+'. Other non-numeric parts, such as a
// Debian epoch ("1:") or a PEP 440 "rc1"/".post1" segment, are kept.
func translateLegacyVersion(e LegacyLockEntry) string {
	v := e.Version
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	return v
}
