package builder

// Template is a named, complete, pre-authored page composition. Applying one
// replaces the target page's draft blocks wholesale (with confirmation when
// the page already has content).
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Blocks      []Block `json:"blocks"`
}

// Clone deep-copies the template so applications never share block state
// with the catalog.
func (t Template) Clone() Template {
	t.Blocks = CloneBlocks(t.Blocks)
	return t
}

// TemplateCatalog returns the built-in templates. Blocks are instantiated
// from the registry so every application gets fresh IDs and defaults; types
// missing from the registry are skipped the same way the renderer skips
// them.
func TemplateCatalog(r *Registry) []Template {
	compose := func(types ...string) []Block {
		var blocks []Block
		for _, t := range types {
			if b, ok := r.NewBlock(t); ok {
				blocks = append(blocks, b)
			}
		}
		return blocks
	}

	return []Template{
		{
			ID:          "landing",
			Name:        "School Landing",
			Description: "A full marketing page: hero, features, pricing, testimonials and a closing call to action.",
			Thumbnail:   "/assets/templates/landing.png",
			Blocks: compose(
				"navigation", "hero", "features", "stats", "pricing",
				"testimonials", "faq", "cta", "footer",
			),
		},
		{
			ID:          "portal",
			Name:        "Parent Portal",
			Description: "A minimal login portal for parents and staff.",
			Thumbnail:   "/assets/templates/portal.png",
			Blocks:      compose("navigation", "login_portal", "footer"),
		},
		{
			ID:          "admissions",
			Name:        "Admissions",
			Description: "Admissions overview with process steps, staff and a contact form.",
			Thumbnail:   "/assets/templates/admissions.png",
			Blocks: compose(
				"navigation", "hero", "admissions", "team", "faq",
				"contact", "footer",
			),
		},
	}
}

// FindTemplate looks a catalog entry up by ID.
func FindTemplate(catalog []Template, id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return Template{}, false
}
