// Package app wires internal/core's solver against concrete
// internal/ports collaborators for the CLI surface: it owns no solving
// logic itself, only request construction, repository setup and result
// formatting.
package app

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/adapters"
	"avular-packages/internal/ports"
)

// Service holds the collaborators shared across the CLI's use cases.
type Service struct {
	SpecLoader ports.SpecLoaderPort
	Legacy     adapters.LegacyImportAdapter
}

// NewService returns a ready-to-use Service backed by the file-based
// spec loader and the legacy-lock migrator.
func NewService() *Service {
	return &Service{
		SpecLoader: adapters.NewSpecFileAdapter(),
		Legacy:     adapters.NewLegacyImportAdapter(),
	}
}

// RepoSource names one repository to query, as given on the command
// line: either a local directory or an HTTP base URL.
type RepoSource struct {
	Name string
	Path string
	URL  string
}

// openRepositories builds the ordered ports.Repository set a solve
// should query, in the order the caller listed them (spec.md §5
// registration-order determinism).
func openRepositories(sources []RepoSource) ([]ports.Repository, error) {
	repos := make([]ports.Repository, 0, len(sources))
	for _, s := range sources {
		switch {
		case s.Path != "":
			repos = append(repos, adapters.NewFileRepository(s.Name, s.Path))
		case s.URL != "":
			repos = append(repos, adapters.NewHTTPRepository(s.Name, s.URL))
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("repository " + s.Name + " must set a path or a url")
		}
	}
	return repos, nil
}
