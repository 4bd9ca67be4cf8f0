package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy  = bluemonday.StrictPolicy()
	userIDRegex = regexp.MustCompile(`^[0-9]{1,20}$`)
)

// Free-text fields (descriptions, display names) are stored verbatim in the
// audit trail, so they get clamped and stripped before they reach the store.
const maxTextLength = 500

// SanitizeText trims, strips markup and null bytes, and clamps length.
func SanitizeText(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = htmlPolicy.Sanitize(input)

	if len(input) > maxTextLength {
		input = input[:maxTextLength]
	}

	return input
}

// ValidateUserID checks the shape of an externally issued user id
// (numeric snowflake, up to 20 digits).
func ValidateUserID(userID string) bool {
	return userIDRegex.MatchString(userID)
}
