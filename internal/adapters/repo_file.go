package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/core"
	"avular-packages/internal/ports"
	"avular-packages/internal/types"
)

// FileRepository implements ports.Repository over a directory tree:
//
//	<root>/<name>/<version>/<build>.yaml          — a build's Spec
//	<root>/<name>/<version>/<build>.payload.yaml   — optional component->digest map
//
// <build> is the digest string, or the literal "src" for a source
// spec. A build's Spec.Deprecated field is this repository's sole
// deprecation marker (spec.md §4.E IsDeprecated).
type FileRepository struct {
	name string
	root string
}

// NewFileRepository returns a FileRepository rooted at dir, identified
// as name for Solution.Repositories and registration-order tie-breaks.
func NewFileRepository(name, dir string) FileRepository {
	return FileRepository{name: name, root: dir}
}

var _ ports.Repository = FileRepository{}

func (r FileRepository) Name() string { return r.name }

func (r FileRepository) ListPackages(name string) ([]types.Version, error) {
	dir := filepath.Join(r.root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapFileError(err)
	}
	var versions []types.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := core.ParseVersion(e.Name())
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return core.CompareVersions(versions[i], versions[j]) < 0 })
	return versions, nil
}

func (r FileRepository) ListBuilds(name string, version types.Version) ([]types.Identifier, error) {
	dir := filepath.Join(r.root, name, core.VersionString(version))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapFileError(err)
	}
	var ids []types.Identifier
	for _, e := range entries {
		base := e.Name()
		if e.IsDir() || !strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".payload.yaml") {
			continue
		}
		build := strings.TrimSuffix(base, ".yaml")
		v := version
		ids = append(ids, types.Identifier{Name: name, Version: &v, Build: buildFromFilename(build)})
	}
	return ids, nil
}

func (r FileRepository) ReadSpec(id types.Identifier) (*types.Spec, error) {
	path := r.specPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no spec at " + path).
			WithCause(err)
	}
	return DecodeSpec(data)
}

func (r FileRepository) GetPackagePayload(id types.Identifier) (map[string]string, error) {
	path := strings.TrimSuffix(r.specPath(id), ".yaml") + ".payload.yaml"
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, wrapFileError(err)
	}
	var layers map[string]string
	if err := yaml.Unmarshal(data, &layers); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse payload yaml: " + path).
			WithCause(err)
	}
	return layers, nil
}

func (r FileRepository) IsDeprecated(id types.Identifier) (bool, error) {
	spec, err := r.ReadSpec(id)
	if err != nil {
		return false, err
	}
	return spec.Deprecated, nil
}

func (r FileRepository) specPath(id types.Identifier) string {
	build := "src"
	if id.Build != nil {
		build = id.Build.String()
	}
	version := ""
	if id.Version != nil {
		version = core.VersionString(*id.Version)
	}
	return filepath.Join(r.root, id.Name, version, build+".yaml")
}

func buildFromFilename(name string) *types.Build {
	switch name {
	case "src":
		return &types.Build{Kind: types.BuildKindSource}
	case "embedded":
		return &types.Build{Kind: types.BuildKindEmbedded}
	default:
		return &types.Build{Kind: types.BuildKindDigest, Digest: name}
	}
}

func wrapFileError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("repository filesystem error").
		WithCause(err)
}
