package core

import (
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"avular-packages/internal/types"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidName reports whether name matches the identifier name grammar.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ParseIdentifier reads the <name>[/<version>[/<build>]] grammar of
// spec.md §6.
func ParseIdentifier(raw string) (types.Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, "/")
	name := parts[0]
	if !ValidName(name) {
		return types.Identifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid identifier name: " + name)
	}
	id := types.Identifier{Name: name}
	if len(parts) >= 2 && parts[1] != "" {
		v, err := ParseVersion(parts[1])
		if err != nil {
			return types.Identifier{}, err
		}
		id.Version = &v
	}
	if len(parts) >= 3 && parts[2] != "" {
		id.Build = parseBuild(parts[2])
	}
	if len(parts) > 3 {
		return types.Identifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("identifier has too many components: " + raw)
	}
	return id, nil
}

func parseBuild(raw string) *types.Build {
	switch raw {
	case "src":
		return &types.Build{Kind: types.BuildKindSource}
	case "embedded":
		return &types.Build{Kind: types.BuildKindEmbedded}
	default:
		return &types.Build{Kind: types.BuildKindDigest, Digest: raw}
	}
}
