package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"avular-packages/internal/types"
)

// Fingerprint computes a stable hash over a state's contents
// (unresolved-request multiset, resolved-package ordered list,
// options, var-requests), per spec.md §4.F. Identical contents always
// fingerprint identically regardless of insertion order within the
// "multiset" parts (pkg_requests, var_requests).
func Fingerprint(s types.State) string {
	h := sha256.New()

	pkgLines := make([]string, len(s.PkgRequests))
	for i, r := range s.PkgRequests {
		pkgLines[i] = fmt.Sprintf("%s|%s|%s|%s", r.Name, r.Range.Raw, r.PrereleasePolicy, r.InclusionPolicy)
	}
	sort.Strings(pkgLines)
	fmt.Fprintf(h, "pkg_requests:%s\n", strings.Join(pkgLines, ";"))

	varLines := make([]string, len(s.VarRequests))
	for i, v := range s.VarRequests {
		varLines[i] = fmt.Sprintf("%s=%s", v.Name, v.Value)
	}
	sort.Strings(varLines)
	fmt.Fprintf(h, "var_requests:%s\n", strings.Join(varLines, ";"))

	fmt.Fprintf(h, "options:%s\n", CanonicalString(s.Options))

	resolvedLines := make([]string, len(s.Packages))
	for i, p := range s.Packages {
		resolvedLines[i] = fmt.Sprintf("%s/%s/%s", p.Spec.Pkg.Name, versionOf(p.Spec), sourceDigest(p.Source))
	}
	fmt.Fprintf(h, "resolved:%s\n", strings.Join(resolvedLines, ";"))

	return hex.EncodeToString(h.Sum(nil))[:20]
}

func versionOf(s *types.Spec) string {
	if s == nil || s.Pkg.Version == nil {
		return ""
	}
	return VersionString(*s.Pkg.Version)
}

func sourceDigest(src types.PackageSource) string {
	switch src.Kind {
	case types.PackageSourceBinary:
		keys := make([]string, 0, len(src.Layers))
		for k := range src.Layers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + src.Layers[k]
		}
		return src.RepoName + ":" + strings.Join(parts, ",")
	case types.PackageSourceBuild:
		return "src-build"
	default:
		return ""
	}
}
