package app

import (
	"context"

	"avular-packages/internal/core"
)

// EnvRequest resolves requests exactly like Resolve and additionally
// renders the resulting Solution as shell-sourceable environment
// bindings (spec.md §4.H `to_environment`).
type EnvRequest struct {
	Resolve ResolveRequest
	Prefix  string
}

// Env resolves req.Resolve and projects the Solution into ordered
// EnvVar bindings rooted at req.Prefix ("/spfs" if empty).
func (s *Service) Env(ctx context.Context, req EnvRequest) ([]core.EnvVar, error) {
	result, err := s.Resolve(ctx, req.Resolve)
	if err != nil {
		return nil, err
	}
	return core.ToEnvironment(result.Solution, req.Prefix), nil
}
