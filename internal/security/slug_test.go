package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Our Team", "our-team"},
		{"  Admissions 2026  ", "admissions-2026"},
		{"FAQ & Pricing!", "faq-pricing"},
		{"Événements", "v-nements"},
		{"---", "page"},
		{"", "page"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.title), "title %q", c.title)
	}
}

func TestSlugifyOutputIsAlwaysValid(t *testing.T) {
	for _, title := range []string{"Hello World", "!!!", "A  B   C", "MiXeD CaSe 42"} {
		slug := Slugify(title)
		assert.NoError(t, ValidateSlug(slug), "title %q produced %q", title, slug)
	}
}

func TestValidateSlug(t *testing.T) {
	// Empty is the home page.
	assert.NoError(t, ValidateSlug(""))
	assert.NoError(t, ValidateSlug("about-us"))
	assert.NoError(t, ValidateSlug("page2"))

	assert.Error(t, ValidateSlug("About"))
	assert.Error(t, ValidateSlug("-leading"))
	assert.Error(t, ValidateSlug("trailing-"))
	assert.Error(t, ValidateSlug("double--hyphen"))
	assert.Error(t, ValidateSlug("spaces here"))
	assert.Error(t, ValidateSlug(strings.Repeat("a", 101)))
}

func TestValidateSlugRejectsReservedRoutes(t *testing.T) {
	for _, reserved := range []string{"api", "auth", "admin", "login", "portal", "s", "static"} {
		assert.Error(t, ValidateSlug(reserved), "%q should be reserved", reserved)
	}
	assert.NoError(t, ValidateSlug("apiary"))
}
