package ports

import "avular-packages/internal/types"

// SpecLoaderPort loads and validates a single Spec document from a
// filesystem path (spec.md §6 spec file format).
type SpecLoaderPort interface {
	Load(path string) (*types.Spec, error)
}
