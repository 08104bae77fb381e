// Package shared holds the handful of formatting helpers the legacy
// migration path and HTTP repository adapter both need, too small to
// justify their own packages.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var pipSeparatorRuns = regexp.MustCompile(`[-_.]+`)

// NormalizePipName lowercases a Python package name and replaces
// each run of hyphens, underscores and dots with a single hyphen,
// following PEP 503 normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return pipSeparatorRuns.ReplaceAllString(lower, "-")
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
