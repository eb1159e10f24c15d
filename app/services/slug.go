package services

import (
	"regexp"
	"strings"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a title to its URL-safe base slug: lowercase, special
// characters stripped, word runs joined by single hyphens. Collision
// suffixing is handled by the post service against the store's unique slug
// constraint.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
