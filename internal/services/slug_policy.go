package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DeriveSlug lowercases the name, keeps letters and digits, and joins the
// rest with single dashes.
func DeriveSlug(name string) string {
	var builder strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			lastDash = false
		case !lastDash:
			builder.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(builder.String(), "-")
	if slug == "" {
		slug = "workspace"
	}
	return slug
}

// uniqueSlugSuffix disambiguates a colliding slug. A timestamp suffix is a
// heuristic, not a guarantee under arbitrary concurrency; the unique index
// still backstops it.
func uniqueSlugSuffix(slug string, now time.Time) string {
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}
