package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"avular-packages/internal/types"
)

// SpecValidator validates Spec invariants, in the style of the
// teacher's SpecCompiler: sequential errbuilder-wrapped checks backed
// by assert-lib for must-be-set fields.
type SpecValidator struct{}

// NewSpecValidator returns a ready-to-use SpecValidator.
func NewSpecValidator() SpecValidator {
	return SpecValidator{}
}

var validTestStages = map[types.TestStage]struct{}{
	types.TestStageBuild:   {},
	types.TestStageInstall: {},
	types.TestStageSource:  {},
}

// Validate checks a Spec against the invariants of spec.md §3/§4.D:
// pkg.name non-empty; option names unique within build.options;
// install.requirements must not reference the declaring package; test
// stages must be known.
func (SpecValidator) Validate(ctx context.Context, spec types.Spec) error {
	assert.NotEmpty(ctx, spec.Pkg.Name, "pkg.name must be set")

	seen := map[string]struct{}{}
	for _, opt := range spec.Build.Options {
		if _, dup := seen[opt.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate option name: %s", opt.Name))
		}
		seen[opt.Name] = struct{}{}
	}

	for _, req := range spec.Install.Requirements {
		if req.Name == spec.Pkg.Name {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("install requirement %s references the declaring package %s", req.Name, spec.Pkg.Name))
		}
	}

	for _, test := range spec.Tests {
		if _, ok := validTestStages[test.Stage]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("test spec has unknown stage: %s", test.Stage))
		}
	}

	for _, embedded := range spec.Embedded {
		if embedded.Pkg.Build == nil || embedded.Pkg.Build.Kind != types.BuildKindEmbedded {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("embedded spec %s must declare build: embedded", embedded.Pkg.Name))
		}
	}

	log.Ctx(ctx).Debug().Str("pkg", spec.Pkg.Name).Msg("spec validated")
	return nil
}
