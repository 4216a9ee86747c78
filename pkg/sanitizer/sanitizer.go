package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Content strips unsafe markup from user supplied text and trims surrounding
// whitespace. bluemonday policies are safe for concurrent use.
func Content(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
