// Package naming derives filesystem and DNS safe identifiers from model keys.
package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var invalidRun = regexp.MustCompile(`[^a-z0-9-]+`)

// Sanitize lowercases name, replaces every run of characters outside
// [a-z0-9-] with a single "-" and trims leading and trailing "-".
//
// Sanitize is total: empty or all-invalid input yields "". Callers must
// treat an empty result as an error.
func Sanitize(name string) string {
	lowered := cases.Lower(language.Und).String(name)
	return strings.Trim(invalidRun.ReplaceAllString(lowered, "-"), "-")
}

// EnvVarName returns the CI variable holding the image name suffix of a
// model, e.g. "llama-3b" becomes "APP_IMAGE_LLAMA_3B_NAME_SUFFIX".
func EnvVarName(safeName string) string {
	return "APP_IMAGE_" + strings.ToUpper(strings.ReplaceAll(safeName, "-", "_")) + "_NAME_SUFFIX"
}

// ImageName is the application image name of a model, without registry or tag.
func ImageName(safeName string) string {
	return safeName + "-ramalama"
}
