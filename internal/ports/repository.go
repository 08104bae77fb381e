// Package ports declares the solver's collaborator interfaces: the
// Repository contract it queries and the SourceFetchPort it never
// calls but reserves for a future out-of-scope collaborator.
package ports

import "avular-packages/internal/types"

// Repository is the minimal contract the solver requires (spec.md
// §4.E). The solver queries repositories in registration order and
// unions their results; a build is uniquely identified by
// (name, version, build) across repos with the first-registered-repo
// winning on collision.
type Repository interface {
	// Name identifies this repository for Solution.Repositories and
	// registration-order tie-breaking.
	Name() string
	// ListPackages returns every version published for name.
	ListPackages(name string) ([]types.Version, error)
	// ListBuilds returns every build identifier published for
	// name at version.
	ListBuilds(name string, version types.Version) ([]types.Identifier, error)
	// ReadSpec returns the Spec backing identifier.
	ReadSpec(identifier types.Identifier) (*types.Spec, error)
	// GetPackagePayload returns the opaque component->digest layer
	// references for identifier.
	GetPackagePayload(identifier types.Identifier) (map[string]string, error)
	// IsDeprecated reports whether identifier has been marked
	// deprecated.
	IsDeprecated(identifier types.Identifier) (bool, error)
}

// SourceFetchPort is declared for a future collaborator (rsync/git/tar
// source fetchers) that is explicitly out of scope for this solver
// (spec.md §1). No implementation exists in this repository; nothing
// in the solver calls this port.
type SourceFetchPort interface {
	Fetch(spec types.SourceSpec, destDir string) error
}
