package app

import "avular-packages/internal/types"

// Validate loads and validates a single Spec file, returning the
// parsed Spec on success. DecodeSpec (internal/adapters) already runs
// core.NewSpecValidator, so a nil error here means the spec is
// structurally and semantically sound per spec.md §4.E.
func (s *Service) Validate(path string) (*types.Spec, error) {
	return s.SpecLoader.Load(path)
}
