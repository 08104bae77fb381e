package adapters

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"avular-packages/internal/core"
	"avular-packages/internal/ports"
	"avular-packages/internal/shared"
	"avular-packages/internal/types"
)

// packageIndexDoc is the "<name>/index.yaml" listing document an
// HTTPRepository's static backend must publish, since plain HTTP
// servers expose no directory listing.
type packageIndexDoc struct {
	Versions []string `yaml:"versions"`
}

// buildIndexDoc is the "<name>/<version>/index.yaml" listing document.
type buildIndexDoc struct {
	Builds []string `yaml:"builds"`
}

// HTTPRepository implements ports.Repository over a static HTTP file
// server serving the same tree layout as FileRepository, plus
// "index.yaml" listing documents at the package and version levels
// (no directory-listing capability is assumed of the server).
type HTTPRepository struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewHTTPRepository returns an HTTPRepository fetching from baseURL.
func NewHTTPRepository(name, baseURL string) HTTPRepository {
	return HTTPRepository{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

var _ ports.Repository = HTTPRepository{}

func (r HTTPRepository) Name() string { return r.name }

func (r HTTPRepository) ListPackages(name string) ([]types.Version, error) {
	data, err := r.get(name + "/index.yaml")
	if err != nil {
		if isNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc packageIndexDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, wrapDecodeError(err, "package index")
	}
	versions := make([]types.Version, 0, len(doc.Versions))
	for _, raw := range doc.Versions {
		v, err := core.ParseVersion(raw)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func (r HTTPRepository) ListBuilds(name string, version types.Version) ([]types.Identifier, error) {
	versionStr := core.VersionString(version)
	data, err := r.get(name + "/" + versionStr + "/index.yaml")
	if err != nil {
		if isNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc buildIndexDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, wrapDecodeError(err, "build index")
	}
	ids := make([]types.Identifier, 0, len(doc.Builds))
	for _, b := range doc.Builds {
		v := version
		ids = append(ids, types.Identifier{Name: name, Version: &v, Build: buildFromFilename(b)})
	}
	return ids, nil
}

func (r HTTPRepository) ReadSpec(id types.Identifier) (*types.Spec, error) {
	data, err := r.get(r.identifierPath(id) + ".yaml")
	if err != nil {
		return nil, err
	}
	return DecodeSpec(data)
}

func (r HTTPRepository) GetPackagePayload(id types.Identifier) (map[string]string, error) {
	data, err := r.get(r.identifierPath(id) + ".payload.yaml")
	if err != nil {
		if isNotFoundErr(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	var layers map[string]string
	if err := yaml.Unmarshal(data, &layers); err != nil {
		return nil, wrapDecodeError(err, "payload")
	}
	return layers, nil
}

func (r HTTPRepository) IsDeprecated(id types.Identifier) (bool, error) {
	spec, err := r.ReadSpec(id)
	if err != nil {
		return false, err
	}
	return spec.Deprecated, nil
}

func (r HTTPRepository) identifierPath(id types.Identifier) string {
	build := "src"
	if id.Build != nil {
		build = id.Build.String()
	}
	version := ""
	if id.Version != nil {
		version = core.VersionString(*id.Version)
	}
	return id.Name + "/" + version + "/" + build
}

func (r HTTPRepository) get(path string) ([]byte, error) {
	url := r.baseURL + "/" + path
	resp, err := r.client.Get(url)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("repository request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(shared.HTTPStatusErrorWithBody(resp.StatusCode, url, string(body)).Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(shared.HTTPStatusErrorWithBody(resp.StatusCode, url, string(body)).Error())
	}
	return body, nil
}

func isNotFoundErr(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeNotFound
}

func wrapDecodeError(err error, what string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("failed to parse " + what + " yaml").
		WithCause(err)
}
