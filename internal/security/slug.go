// Package security provides URL-slug derivation and validation for site
// pages. Slugs become path segments on the public site, so they are held to
// a strict alphabet and checked against routes the server reserves.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidSlugRegex matches slugs the public router will serve: lowercase
// letters, digits and single hyphens, never leading or trailing.
var ValidSlugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var multiSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a page title: lowercase, with every
// run of non-alphanumeric characters collapsed to a single hyphen. An empty
// result (a title of pure punctuation) yields "page".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = multiSeparator.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "page"
	}
	return s
}

// ValidateSlug checks a slug against the allowed alphabet and the reserved
// route list. The empty slug is valid: it is reserved for the home page.
func ValidateSlug(slug string) error {
	if slug == "" {
		return nil
	}
	if len(slug) > 100 {
		return fmt.Errorf("slug too long (max 100 characters)")
	}
	if !ValidSlugRegex.MatchString(slug) {
		return fmt.Errorf("invalid slug: must contain only lowercase letters, numbers, and hyphens")
	}
	if isReservedSlug(slug) {
		return fmt.Errorf("'%s' is a reserved route", slug)
	}
	return nil
}

// Routes the server mounts itself; a page slug may not shadow them.
var reservedSlugs = map[string]bool{
	"api":    true,
	"auth":   true,
	"admin":  true,
	"app":    true,
	"assets": true,
	"login":  true,
	"portal": true,
	"s":      true,
	"setup":  true,
	"static": true,
}

func isReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}
