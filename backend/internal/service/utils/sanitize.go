package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	titlePolicy = bluemonday.StrictPolicy()
	bodyPolicy  = bluemonday.UGCPolicy()
)

// SanitizeTitle strips all markup from a post title.
func SanitizeTitle(title string) string {
	return strings.TrimSpace(titlePolicy.Sanitize(title))
}

// SanitizeBody keeps user-generated-content safe html and drops the rest.
func SanitizeBody(body string) string {
	return bodyPolicy.Sanitize(body)
}
