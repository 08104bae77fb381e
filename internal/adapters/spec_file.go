// Package adapters implements the solver's external collaborators: spec
// file loading, a file-backed Repository, and a one-shot legacy lock
// importer. None of it is called by internal/core; the solver only ever
// sees the internal/ports.Repository interface.
package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/core"
	"avular-packages/internal/types"
)

// SpecFileAdapter loads Spec documents from YAML files (spec.md §6).
type SpecFileAdapter struct{}

// NewSpecFileAdapter returns a ready-to-use SpecFileAdapter.
func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

// Load reads and validates a Spec document at path.
func (a SpecFileAdapter) Load(path string) (*types.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("spec file not found: " + path).
			WithCause(err)
	}
	return DecodeSpec(data)
}

// sourceDoc is the YAML shape of one sources[] entry: exactly one of
// path/git/tar must be set (the discriminator key of spec.md §6).
type sourceDoc struct {
	Path string `yaml:"path,omitempty"`
	Git  string `yaml:"git,omitempty"`
	Ref  string `yaml:"ref,omitempty"`
	Tar  string `yaml:"tar,omitempty"`
}

// optionDoc is the YAML shape of one build.options[] entry: exactly
// one of var/pkg must be set.
type optionDoc struct {
	Var              string   `yaml:"var,omitempty"`
	Pkg              string   `yaml:"pkg,omitempty"`
	Default          string   `yaml:"default,omitempty"`
	Choices          []string `yaml:"choices,omitempty"`
	Inheritance      string   `yaml:"inheritance,omitempty"`
	Static           bool     `yaml:"static,omitempty"`
	PrereleasePolicy string   `yaml:"prereleasePolicy,omitempty"`
}

type buildDoc struct {
	Options  []optionDoc `yaml:"options,omitempty"`
	Variants []yaml.Node `yaml:"variants,omitempty"`
	Script   []string    `yaml:"script,omitempty"`
}

type installDoc struct {
	Requirements []string `yaml:"requirements,omitempty"`
}

type testDoc struct {
	Stage  string   `yaml:"stage"`
	Name   string   `yaml:"name,omitempty"`
	Script []string `yaml:"script,omitempty"`
}

type specDoc struct {
	Pkg        string      `yaml:"pkg"`
	Compat     string      `yaml:"compat,omitempty"`
	Deprecated bool        `yaml:"deprecated,omitempty"`
	Sources    []sourceDoc `yaml:"sources,omitempty"`
	Build      buildDoc    `yaml:"build,omitempty"`
	Tests      []testDoc   `yaml:"tests,omitempty"`
	Install    installDoc  `yaml:"install,omitempty"`
	Embedded   []yaml.Node `yaml:"embedded,omitempty"`
}

// DecodeSpec parses and validates a single Spec document from data,
// rejecting unknown top-level or nested keys (spec.md §6) via
// yaml.v3's KnownFields decoder mode.
func DecodeSpec(data []byte) (*types.Spec, error) {
	var doc specDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse spec yaml").
			WithCause(err)
	}
	spec, err := convertSpecDoc(doc)
	if err != nil {
		return nil, err
	}
	if err := core.NewSpecValidator().Validate(context.Background(), *spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func convertSpecDoc(doc specDoc) (*types.Spec, error) {
	id, err := core.ParseIdentifier(doc.Pkg)
	if err != nil {
		return nil, err
	}
	spec := &types.Spec{
		Pkg:        id,
		RawPkg:     doc.Pkg,
		RawCompat:  doc.Compat,
		Compat:     core.ParseCompat(doc.Compat),
		Deprecated: doc.Deprecated,
	}

	for _, s := range doc.Sources {
		src, err := convertSourceDoc(s)
		if err != nil {
			return nil, err
		}
		spec.Sources = append(spec.Sources, src)
	}

	for _, o := range doc.Build.Options {
		opt, err := convertOptionDoc(o)
		if err != nil {
			return nil, err
		}
		spec.Build.Options = append(spec.Build.Options, opt)
	}
	for _, v := range doc.Build.Variants {
		spec.Build.Variants = append(spec.Build.Variants, nodeToOptionMap(v))
	}
	spec.Build.Script = doc.Build.Script

	for _, t := range doc.Tests {
		spec.Tests = append(spec.Tests, types.TestSpec{
			Stage:  types.TestStage(t.Stage),
			Name:   t.Name,
			Script: t.Script,
		})
	}

	spec.Install.RawRequirements = doc.Install.Requirements
	for _, raw := range doc.Install.Requirements {
		req, err := core.ParsePkgRequest(raw)
		if err != nil {
			return nil, err
		}
		spec.Install.Requirements = append(spec.Install.Requirements, req)
	}

	for _, e := range doc.Embedded {
		var childDoc specDoc
		raw, err := yaml.Marshal(&e)
		if err == nil {
			childDec := yaml.NewDecoder(bytes.NewReader(raw))
			childDec.KnownFields(true)
			err = childDec.Decode(&childDoc)
		}
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse embedded spec").
				WithCause(err)
		}
		child, err := convertSpecDoc(childDoc)
		if err != nil {
			return nil, err
		}
		spec.Embedded = append(spec.Embedded, child)
	}

	return spec, nil
}

func convertSourceDoc(s sourceDoc) (types.SourceSpec, error) {
	set := 0
	var out types.SourceSpec
	if s.Path != "" {
		set++
		out = types.SourceSpec{Kind: types.SourceSpecKindPath, Path: s.Path}
	}
	if s.Git != "" {
		set++
		out = types.SourceSpec{Kind: types.SourceSpecKindGit, Git: s.Git, Ref: s.Ref}
	}
	if s.Tar != "" {
		set++
		out = types.SourceSpec{Kind: types.SourceSpecKindTar, Tar: s.Tar}
	}
	if set != 1 {
		return types.SourceSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source entry must set exactly one of path/git/tar")
	}
	return out, nil
}

func convertOptionDoc(o optionDoc) (types.BuildOption, error) {
	set := 0
	var opt types.BuildOption
	if o.Var != "" {
		set++
		opt = types.BuildOption{
			Kind:        types.BuildOptionKindVar,
			Name:        o.Var,
			Default:     o.Default,
			Static:      o.Static,
			Choices:     o.Choices,
			Inheritance: types.Inheritance(defaultString(o.Inheritance, string(types.InheritanceWeak))),
		}
	}
	if o.Pkg != "" {
		set++
		opt = types.BuildOption{
			Kind:             types.BuildOptionKindPkg,
			Name:             o.Pkg,
			Default:          o.Default,
			Static:           o.Static,
			PrereleasePolicy: types.PrereleasePolicy(defaultString(o.PrereleasePolicy, string(types.PrereleasePolicyExcludeAll))),
		}
	}
	if set != 1 {
		return types.BuildOption{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("build option entry must set exactly one of var/pkg (got var=%q pkg=%q)", o.Var, o.Pkg))
	}
	return opt, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// nodeToOptionMap walks a mapping node's Content pairs directly so the
// resulting OptionMap preserves the document's key order, rather than
// going through an intermediate Go map (which yaml.v3 would otherwise
// force onto us and which has no stable iteration order).
func nodeToOptionMap(node yaml.Node) *types.OptionMap {
	out := types.NewOptionMap()
	if node.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		out.Set(node.Content[i].Value, node.Content[i+1].Value)
	}
	return out
}
