package builder

// The built-in block catalog. Each entry pairs defaults, an edit schema and
// a renderer; adding a new block type means adding one entry here — no
// caller changes. DefaultProps must cover every schema field so a fresh
// block renders complete content.

func fptr(f float64) *float64 { return &f }

// backgroundFields is the shared "Background" panel section for section-like
// blocks. All four value fields feed the backgroundType discriminator via
// the central normalization pass.
func backgroundFields() []PropSchema {
	return []PropSchema{
		{Name: "backgroundType", Label: "Background Type", Type: FieldSelect, Group: "Background",
			Default: "color",
			Options: []SelectOption{
				{Value: "color", Label: "Color"},
				{Value: "gradient", Label: "Gradient"},
				{Value: "image", Label: "Image"},
				{Value: "video", Label: "Video"},
			}},
		{Name: "backgroundColor", Label: "Background Color", Type: FieldColor, Group: "Background", Default: "transparent"},
		{Name: "backgroundGradient", Label: "Background Gradient", Type: FieldGradient, Group: "Background", Default: ""},
		{Name: "backgroundImage", Label: "Background Image", Type: FieldImage, Group: "Background", Default: ""},
		{Name: "backgroundVideo", Label: "Background Video URL", Type: FieldText, Group: "Background", Default: ""},
		{Name: "textColor", Label: "Text Color", Type: FieldColor, Group: "Background", Default: ""},
	}
}

func backgroundDefaults() Props {
	return Props{
		"backgroundType":     "color",
		"backgroundColor":    "transparent",
		"backgroundGradient": "",
		"backgroundImage":    "",
		"backgroundVideo":    "",
		"textColor":          "",
	}
}

func withBackground(p Props) Props {
	out := backgroundDefaults()
	for k, v := range p {
		out[k] = v
	}
	return out
}

// DefaultRegistry builds a registry populated with the full block catalog.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range catalog() {
		r.Register(def)
	}
	return r
}

func catalog() []BlockDefinition {
	return []BlockDefinition{
		{
			Type: "navigation", Label: "Navigation", Icon: "menu", Category: "layout",
			DefaultProps: withBackground(Props{
				"logoText":  "Montessa",
				"logoImage": "",
				"links": []any{
					map[string]any{"label": "Home", "url": "/", "isMegaMenu": false, "subItems": []any{}},
					map[string]any{"label": "About", "url": "/about", "isMegaMenu": false, "subItems": []any{}},
					map[string]any{"label": "Admissions", "url": "/admissions", "isMegaMenu": false, "subItems": []any{}},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "logoText", Label: "Logo Text", Type: FieldText, Default: "Montessa"},
				{Name: "logoImage", Label: "Logo Image", Type: FieldImage, Default: ""},
				{Name: "links", Label: "Links", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "label", Label: "Label", Type: FieldText, Default: "New Link"},
					{Name: "url", Label: "URL", Type: FieldText, Default: "#"},
					{Name: "isMegaMenu", Label: "Mega Menu", Type: FieldBoolean, Default: false},
					{Name: "subItems", Label: "Sub Items", Type: FieldArray, Default: []any{}, ArrayItemSchema: []PropSchema{
						{Name: "label", Label: "Label", Type: FieldText, Default: "Sub Link"},
						{Name: "url", Label: "URL", Type: FieldText, Default: "#"},
					}},
				}},
			}, backgroundFields()...),
			Render: renderNavigation,
		},
		{
			Type: "legacy_header", Label: "Header (Legacy)", Icon: "heading", Category: "layout",
			DefaultProps: withBackground(Props{"title": "Our School", "tagline": "Learning for life"}),
			Schema: append([]PropSchema{
				{Name: "title", Label: "Title", Type: FieldText, Default: "Our School"},
				{Name: "tagline", Label: "Tagline", Type: FieldText, Default: ""},
			}, backgroundFields()...),
			Render: renderLegacyHeader,
		},
		{
			Type: "hero", Label: "Hero", Icon: "sparkles", Category: "sections",
			DefaultProps: withBackground(Props{
				"title":      "Welcome to Our School",
				"subtitle":   "A nurturing place for curious minds.",
				"buttonText": "Book a Tour",
				"buttonLink": "#contact",
				"alignment":  "center",
				"minHeight":  float64(420),
			}),
			Schema: append([]PropSchema{
				{Name: "title", Label: "Title", Type: FieldText, Default: "Welcome to Our School"},
				{Name: "subtitle", Label: "Subtitle", Type: FieldTextarea, Default: ""},
				{Name: "buttonText", Label: "Button Text", Type: FieldText, Default: "Book a Tour"},
				{Name: "buttonLink", Label: "Button Link", Type: FieldText, Default: "#"},
				{Name: "alignment", Label: "Alignment", Type: FieldSelect, Group: "Layout", Default: "center",
					Options: []SelectOption{
						{Value: "left", Label: "Left"},
						{Value: "center", Label: "Center"},
						{Value: "right", Label: "Right"},
					}},
				{Name: "minHeight", Label: "Min Height", Type: FieldNumber, Group: "Layout",
					Default: float64(420), Min: fptr(120), Max: fptr(1200), Step: 10},
			}, backgroundFields()...),
			Render: renderHero,
		},
		{
			Type: "features", Label: "Features", Icon: "grid", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading":    "Why Choose Us",
				"subheading": "",
				"columns":    float64(3),
				"items": []any{
					map[string]any{"icon": "book", "title": "Individual Learning", "description": "Every child follows their own pace."},
					map[string]any{"icon": "users", "title": "Small Classes", "description": "More attention for every student."},
					map[string]any{"icon": "leaf", "title": "Outdoor Time", "description": "Nature is part of the classroom."},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Why Choose Us"},
				{Name: "subheading", Label: "Subheading", Type: FieldTextarea, Default: ""},
				{Name: "columns", Label: "Columns", Type: FieldNumber, Group: "Layout",
					Default: float64(3), Min: fptr(2), Max: fptr(4), Step: 1},
				{Name: "items", Label: "Features", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "icon", Label: "Icon", Type: FieldText, Default: "star"},
					{Name: "title", Label: "Title", Type: FieldText, Default: "Feature"},
					{Name: "description", Label: "Description", Type: FieldTextarea, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderFeatures,
		},
		{
			Type: "stats", Label: "Stats", Icon: "chart", Category: "sections",
			DefaultProps: withBackground(Props{
				"items": []any{
					map[string]any{"value": "250+", "label": "Students"},
					map[string]any{"value": "20", "label": "Teachers"},
					map[string]any{"value": "15", "label": "Years"},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "items", Label: "Stats", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "value", Label: "Value", Type: FieldText, Default: "0"},
					{Name: "label", Label: "Label", Type: FieldText, Default: "Label"},
				}},
			}, backgroundFields()...),
			Render: renderStats,
		},
		{
			Type: "pricing", Label: "Pricing", Icon: "tag", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading": "Tuition Plans",
				"plans": []any{
					map[string]any{"name": "Half Day", "price": "$450", "period": "month",
						"description": "Mornings, five days a week.", "ctaText": "Enroll", "highlighted": false},
					map[string]any{"name": "Full Day", "price": "$700", "period": "month",
						"description": "Full program with lunch.", "ctaText": "Enroll", "highlighted": true},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Tuition Plans"},
				{Name: "plans", Label: "Plans", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "name", Label: "Name", Type: FieldText, Default: "Plan"},
					{Name: "price", Label: "Price", Type: FieldText, Default: "$0"},
					{Name: "period", Label: "Period", Type: FieldSelect, Default: "month",
						Options: []SelectOption{
							{Value: "month", Label: "Monthly"},
							{Value: "term", Label: "Per Term"},
							{Value: "year", Label: "Yearly"},
						}},
					{Name: "description", Label: "Description", Type: FieldTextarea, Default: ""},
					{Name: "ctaText", Label: "Button Text", Type: FieldText, Default: "Enroll"},
					{Name: "highlighted", Label: "Highlighted", Type: FieldBoolean, Default: false},
				}},
			}, backgroundFields()...),
			Render: renderPricing,
		},
		{
			Type: "testimonials", Label: "Testimonials", Icon: "quote", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading": "What Parents Say",
				"items": []any{
					map[string]any{"quote": "Our daughter loves going to school every morning.",
						"author": "Amaka O.", "role": "Parent", "avatar": ""},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "What Parents Say"},
				{Name: "items", Label: "Testimonials", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "quote", Label: "Quote", Type: FieldTextarea, Default: ""},
					{Name: "author", Label: "Author", Type: FieldText, Default: ""},
					{Name: "role", Label: "Role", Type: FieldText, Default: "Parent"},
					{Name: "avatar", Label: "Avatar", Type: FieldImage, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderTestimonials,
		},
		{
			Type: "faq", Label: "FAQ", Icon: "question", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading": "Frequently Asked Questions",
				"items": []any{
					map[string]any{"question": "What ages do you accept?", "answer": "We welcome children from 18 months to 12 years."},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Frequently Asked Questions"},
				{Name: "items", Label: "Questions", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "question", Label: "Question", Type: FieldText, Default: "New question"},
					{Name: "answer", Label: "Answer", Type: FieldTextarea, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderFAQ,
		},
		{
			Type: "gallery", Label: "Gallery", Icon: "photo", Category: "media",
			DefaultProps: withBackground(Props{"heading": "Gallery", "images": []any{}}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Gallery"},
				{Name: "images", Label: "Images", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "url", Label: "Image", Type: FieldImage, Default: ""},
					{Name: "caption", Label: "Caption", Type: FieldText, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderGallery,
		},
		{
			Type: "cta", Label: "Call to Action", Icon: "megaphone", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading":    "Ready to Join Us?",
				"subheading": "Spots for next term are limited.",
				"buttonText": "Apply Now",
				"buttonLink": "#",
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Ready to Join Us?"},
				{Name: "subheading", Label: "Subheading", Type: FieldTextarea, Default: ""},
				{Name: "buttonText", Label: "Button Text", Type: FieldText, Default: "Apply Now"},
				{Name: "buttonLink", Label: "Button Link", Type: FieldText, Default: "#"},
			}, backgroundFields()...),
			Render: renderCTA,
		},
		{
			Type: "team", Label: "Team", Icon: "users", Category: "sections",
			DefaultProps: withBackground(Props{"heading": "Our Team", "members": []any{}}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Our Team"},
				{Name: "members", Label: "Members", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "name", Label: "Name", Type: FieldText, Default: "Name"},
					{Name: "role", Label: "Role", Type: FieldText, Default: "Teacher"},
					{Name: "photo", Label: "Photo", Type: FieldImage, Default: ""},
					{Name: "bio", Label: "Bio", Type: FieldTextarea, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderTeam,
		},
		{
			Type: "contact", Label: "Contact", Icon: "mail", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading": "Contact Us", "email": "hello@school.example",
				"phone": "", "address": "", "showForm": true,
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Contact Us"},
				{Name: "email", Label: "Email", Type: FieldText, Default: ""},
				{Name: "phone", Label: "Phone", Type: FieldText, Default: ""},
				{Name: "address", Label: "Address", Type: FieldTextarea, Default: ""},
				{Name: "showForm", Label: "Show Form", Type: FieldBoolean, Default: true},
			}, backgroundFields()...),
			Render: renderContact,
		},
		{
			Type: "footer", Label: "Footer", Icon: "layout-bottom", Category: "layout",
			DefaultProps: withBackground(Props{
				"text":  "© Montessa School. All rights reserved.",
				"links": []any{},
			}),
			Schema: append([]PropSchema{
				{Name: "text", Label: "Text", Type: FieldText, Default: "© Montessa School"},
				{Name: "links", Label: "Links", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "label", Label: "Label", Type: FieldText, Default: "Link"},
					{Name: "url", Label: "URL", Type: FieldText, Default: "#"},
				}},
			}, backgroundFields()...),
			Render: renderFooter,
		},
		{
			Type: "text", Label: "Text", Icon: "text", Category: "basic",
			DefaultProps: withBackground(Props{"content": "Write something...", "align": "left"}),
			Schema: append([]PropSchema{
				{Name: "content", Label: "Content", Type: FieldTextarea, Default: "Write something..."},
				{Name: "align", Label: "Align", Type: FieldSelect, Group: "Layout", Default: "left",
					Options: []SelectOption{
						{Value: "left", Label: "Left"},
						{Value: "center", Label: "Center"},
						{Value: "right", Label: "Right"},
					}},
			}, backgroundFields()...),
			Render: renderText,
		},
		{
			Type: "heading", Label: "Heading", Icon: "heading", Category: "basic",
			DefaultProps: withBackground(Props{"text": "Heading", "level": "h2"}),
			Schema: append([]PropSchema{
				{Name: "text", Label: "Text", Type: FieldText, Default: "Heading"},
				{Name: "level", Label: "Level", Type: FieldSelect, Default: "h2",
					Options: []SelectOption{
						{Value: "h1", Label: "H1"},
						{Value: "h2", Label: "H2"},
						{Value: "h3", Label: "H3"},
						{Value: "h4", Label: "H4"},
					}},
			}, backgroundFields()...),
			Render: renderHeading,
		},
		{
			Type: "image", Label: "Image", Icon: "photo", Category: "media",
			DefaultProps: withBackground(Props{"url": "", "alt": "", "caption": "", "rounded": false}),
			Schema: append([]PropSchema{
				{Name: "url", Label: "Image", Type: FieldImage, Default: ""},
				{Name: "alt", Label: "Alt Text", Type: FieldText, Default: ""},
				{Name: "caption", Label: "Caption", Type: FieldText, Default: ""},
				{Name: "rounded", Label: "Rounded Corners", Type: FieldBoolean, Group: "Layout", Default: false},
			}, backgroundFields()...),
			Render: renderImage,
		},
		{
			Type: "video", Label: "Video", Icon: "film", Category: "media",
			DefaultProps: withBackground(Props{"url": "", "autoplay": false}),
			Schema: append([]PropSchema{
				{Name: "url", Label: "Video URL", Type: FieldText, Default: ""},
				{Name: "autoplay", Label: "Autoplay", Type: FieldBoolean, Default: false},
			}, backgroundFields()...),
			Render: renderVideo,
		},
		{
			Type: "spacer", Label: "Spacer", Icon: "arrows-vertical", Category: "basic",
			DefaultProps: Props{"height": float64(48)},
			Schema: []PropSchema{
				{Name: "height", Label: "Height", Type: FieldNumber, Group: "Layout",
					Default: float64(48), Min: fptr(8), Max: fptr(400), Step: 4},
			},
			Render: renderSpacer,
		},
		{
			Type: "divider", Label: "Divider", Icon: "minus", Category: "basic",
			DefaultProps: Props{"color": "#e5e7eb", "thickness": float64(1)},
			Schema: []PropSchema{
				{Name: "color", Label: "Color", Type: FieldColor, Default: "#e5e7eb"},
				{Name: "thickness", Label: "Thickness", Type: FieldNumber, Group: "Layout",
					Default: float64(1), Min: fptr(1), Max: fptr(12), Step: 1},
			},
			Render: renderDivider,
		},
		{
			Type: "button", Label: "Button", Icon: "cursor", Category: "basic",
			DefaultProps: withBackground(Props{"text": "Click Here", "link": "#", "variant": "primary"}),
			Schema: append([]PropSchema{
				{Name: "text", Label: "Text", Type: FieldText, Default: "Click Here"},
				{Name: "link", Label: "Link", Type: FieldText, Default: "#"},
				{Name: "variant", Label: "Variant", Type: FieldSelect, Default: "primary",
					Options: []SelectOption{
						{Value: "primary", Label: "Primary"},
						{Value: "secondary", Label: "Secondary"},
						{Value: "outline", Label: "Outline"},
					}},
			}, backgroundFields()...),
			Render: renderButton,
		},
		{
			Type: "login_portal", Label: "Login Portal", Icon: "lock", Category: "school",
			DefaultProps: withBackground(Props{
				"heading":      "Parent Portal",
				"subheading":   "Sign in to follow your child's progress.",
				"portalType":   "parent",
				"showRegister": false,
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Parent Portal"},
				{Name: "subheading", Label: "Subheading", Type: FieldTextarea, Default: ""},
				{Name: "portalType", Label: "Portal Type", Type: FieldSelect, Default: "parent",
					Options: []SelectOption{
						{Value: "parent", Label: "Parents"},
						{Value: "staff", Label: "Staff"},
						{Value: "student", Label: "Students"},
					}},
				{Name: "showRegister", Label: "Show Register Link", Type: FieldBoolean, Default: false},
			}, backgroundFields()...),
			Render: renderLoginPortal,
		},
		{
			Type: "schedule", Label: "Schedule", Icon: "calendar", Category: "school",
			DefaultProps: withBackground(Props{"heading": "Weekly Schedule", "items": []any{}}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Weekly Schedule"},
				{Name: "items", Label: "Entries", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "day", Label: "Day", Type: FieldText, Default: "Monday"},
					{Name: "time", Label: "Time", Type: FieldText, Default: "9:00"},
					{Name: "activity", Label: "Activity", Type: FieldText, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderSchedule,
		},
		{
			Type: "admissions", Label: "Admissions Steps", Icon: "clipboard", Category: "school",
			DefaultProps: withBackground(Props{
				"heading": "Admissions Process",
				"steps": []any{
					map[string]any{"title": "Visit", "description": "Book a tour and meet our teachers."},
					map[string]any{"title": "Apply", "description": "Fill in the application form."},
					map[string]any{"title": "Enroll", "description": "Confirm your spot for the term."},
				},
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Admissions Process"},
				{Name: "steps", Label: "Steps", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "title", Label: "Title", Type: FieldText, Default: "Step"},
					{Name: "description", Label: "Description", Type: FieldTextarea, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderAdmissions,
		},
		{
			Type: "events", Label: "Events", Icon: "calendar-days", Category: "school",
			DefaultProps: withBackground(Props{"heading": "Upcoming Events", "items": []any{}}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Upcoming Events"},
				{Name: "items", Label: "Events", Type: FieldArray, ArrayItemSchema: []PropSchema{
					{Name: "title", Label: "Title", Type: FieldText, Default: "Event"},
					{Name: "date", Label: "Date", Type: FieldText, Default: ""},
					{Name: "location", Label: "Location", Type: FieldText, Default: ""},
					{Name: "description", Label: "Description", Type: FieldTextarea, Default: ""},
				}},
			}, backgroundFields()...),
			Render: renderEvents,
		},
		{
			Type: "newsletter", Label: "Newsletter", Icon: "envelope", Category: "sections",
			DefaultProps: withBackground(Props{
				"heading": "Stay in Touch", "placeholder": "Your email", "buttonText": "Subscribe",
			}),
			Schema: append([]PropSchema{
				{Name: "heading", Label: "Heading", Type: FieldText, Default: "Stay in Touch"},
				{Name: "placeholder", Label: "Placeholder", Type: FieldText, Default: "Your email"},
				{Name: "buttonText", Label: "Button Text", Type: FieldText, Default: "Subscribe"},
			}, backgroundFields()...),
			Render: renderNewsletter,
		},
		{
			Type: "map", Label: "Map", Icon: "map-pin", Category: "sections",
			DefaultProps: withBackground(Props{"address": "", "zoom": float64(15)}),
			Schema: append([]PropSchema{
				{Name: "address", Label: "Address", Type: FieldText, Default: ""},
				{Name: "zoom", Label: "Zoom", Type: FieldNumber, Default: float64(15),
					Min: fptr(1), Max: fptr(20), Step: 1},
			}, backgroundFields()...),
			Render: renderMap,
		},
		{
			Type: "html", Label: "Custom HTML", Icon: "code", Category: "advanced",
			DefaultProps: withBackground(Props{"code": ""}),
			Schema: append([]PropSchema{
				{Name: "code", Label: "HTML", Type: FieldTextarea, Default: ""},
			}, backgroundFields()...),
			Render: renderHTMLEmbed,
		},
	}
}
