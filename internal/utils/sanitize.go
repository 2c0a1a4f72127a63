package utils

import "github.com/microcosm-cc/bluemonday"

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips all HTML from user-submitted free text before it is stored.
// Applied to product descriptions, inquiry messages/replies, and moderation reasons.
func Sanitize(s string) string {
	return strictPolicy.Sanitize(s)
}
