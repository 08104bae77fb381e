package cli

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/app"
)

// parseRepoSources turns repeated "--repo name=path" and
// "--repo-url name=url" flag values into the ordered RepoSource list a
// resolve, env, or inspect-graph command will query, in the order they
// were given (spec.md §5 registration-order determinism).
func parseRepoSources(dirs, urls []string) ([]app.RepoSource, error) {
	var out []app.RepoSource
	for _, raw := range dirs {
		name, path, err := splitRepoFlag(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, app.RepoSource{Name: name, Path: path})
	}
	for _, raw := range urls {
		name, url, err := splitRepoFlag(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, app.RepoSource{Name: name, URL: url})
	}
	return out, nil
}

func splitRepoFlag(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" || value == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository flag must be name=value, got: " + raw)
	}
	return name, value, nil
}
