package compositor

import (
	"regexp"
	"strings"
)

const (
	DefaultFilename = "Interior_Estimate.pdf"
	FilenameSuffix  = "_Estimate.pdf"
)

var nonAlnumRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SanitizeClientName collapses every run of non-alphanumeric characters to
// a single underscore and drops underscores at either end.
func SanitizeClientName(name string) string {
	safe := nonAlnumRun.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.Trim(safe, "_")
}

// Filename derives the export filename from the client name. A blank name
// yields the default filename.
func Filename(clientName, fallback string) string {
	safe := SanitizeClientName(clientName)
	if safe == "" {
		if fallback == "" {
			return DefaultFilename
		}
		return fallback
	}
	return safe + FilenameSuffix
}
