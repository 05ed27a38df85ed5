package converter

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	camelBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpper  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// camelToSnake converts a camelCase file stem to snake_case, e.g.
// "s3Versioning" becomes "s3_versioning".
func camelToSnake(s string) string {
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = lowerToUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// OutputPath derives the output file path from the input path when no
// explicit output was given. The cloud prefix is chosen by substring
// match against the whole input path, not its path segments, with
// "aws" taking priority over "gcp" over "azure".
func OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	outputFile := camelToSnake(stem) + ".hcl"

	switch {
	case strings.Contains(inputPath, "aws"):
		return "rules/aws/" + outputFile
	case strings.Contains(inputPath, "gcp"):
		return "rules/gcp/" + outputFile
	case strings.Contains(inputPath, "azure"):
		return "rules/azure/" + outputFile
	default:
		return "rules/" + outputFile
	}
}
