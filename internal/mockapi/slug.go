package mockapi

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify lowercases input and joins its alphanumeric runs with dashes.
func Slugify(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug returns Slugify(name), suffixed when taken reports a clash.
func uniqueSlug(name string, taken func(string) bool) string {
	base := Slugify(name)
	if base == "" {
		base = "item"
	}
	slug := base
	for taken(slug) {
		slug = base + "-" + strings.Split(uuid.NewString(), "-")[0]
	}
	return slug
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
