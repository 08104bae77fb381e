package core

import (
	"strconv"
	"strings"

	"avular-packages/internal/types"
)

// EnvVar is one ordered KEY=VALUE environment-variable binding.
type EnvVar struct {
	Key   string
	Value string
}

// ToEnvironment implements spec.md §4.H: project a Solution's resolved
// packages into SPK_PKG_<NAME>, SPK_PKG_<NAME>_VERSION_MAJOR/MINOR/PATCH
// bindings plus SPK_ACTIVE_PREFIX, in resolution order so that a later
// package's variables shadow an earlier one's when rendered as a flat
// map (e.g. by a shell `source`). base defaults to "/spfs" when empty.
func ToEnvironment(sol types.Solution, base string) []EnvVar {
	if base == "" {
		base = "/spfs"
	}
	vars := []EnvVar{{Key: "SPK_ACTIVE_PREFIX", Value: base}}
	for _, req := range sol.Requests {
		if req.Spec == nil {
			continue
		}
		name := envName(req.Spec.Pkg.Name)
		version := req.Spec.Pkg.Version
		if version == nil {
			continue
		}
		vars = append(vars, EnvVar{Key: "SPK_PKG_" + name, Value: VersionString(*version)})
		vars = append(vars, EnvVar{Key: "SPK_PKG_" + name + "_VERSION_MAJOR", Value: versionComponent(*version, 0)})
		vars = append(vars, EnvVar{Key: "SPK_PKG_" + name + "_VERSION_MINOR", Value: versionComponent(*version, 1)})
		vars = append(vars, EnvVar{Key: "SPK_PKG_" + name + "_VERSION_PATCH", Value: versionComponent(*version, 2)})
	}
	return vars
}

func envName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func versionComponent(v types.Version, i int) string {
	if i >= len(v.Components) {
		return "0"
	}
	return strconv.FormatInt(v.Components[i], 10)
}

// RenderEnvironment renders vars as "KEY=VALUE" lines, later entries
// last so a `source`d or sequentially-applied reader sees the
// resolution-order shadowing spec.md §4.H specifies.
func RenderEnvironment(vars []EnvVar) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v.Key)
		b.WriteByte('=')
		b.WriteString(v.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
