package builder

// FieldType identifies the edit affordance for one prop and, implicitly, the
// runtime type stored under the prop's name.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldColor    FieldType = "color"
	FieldImage    FieldType = "image"
	FieldBoolean  FieldType = "boolean"
	FieldSelect   FieldType = "select"
	FieldNumber   FieldType = "number"
	FieldArray    FieldType = "array"
	FieldGradient FieldType = "gradient"
)

// SelectOption is one entry of a closed select field.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PropSchema declaratively describes one editable field of a block. It is
// static metadata (never persisted with page data) and drives both the
// property-panel form generator and the defaulting of absent props.
type PropSchema struct {
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Type    FieldType      `json:"type"`
	Options []SelectOption `json:"options,omitempty"`
	// ArrayItemSchema recursively describes each element when Type is
	// FieldArray. Elements may themselves contain array fields
	// (navigation mega-menu sub-items).
	ArrayItemSchema []PropSchema `json:"arrayItemSchema,omitempty"`
	Min             *float64     `json:"min,omitempty"`
	Max             *float64     `json:"max,omitempty"`
	Step            float64      `json:"step,omitempty"`
	Default         any          `json:"default,omitempty"`
	// Group names the property-panel section; empty means "Content".
	Group string `json:"group,omitempty"`
}

// RenderMode selects which of the three renderer variants is consuming a
// block list.
type RenderMode int

const (
	// ModeCanvas is the editable canvas: selection chrome, drag handles,
	// inline-edit affordances.
	ModeCanvas RenderMode = iota
	// ModeLive is the published site: props frozen, no editing markup.
	ModeLive
	// ModePreview is the scaled device mockup used for template and
	// portal previews.
	ModePreview
)

// GlobalStyles is the tenant-wide theme token set. It flows into every
// rendered block as CSS custom properties and is never stored in block props.
type GlobalStyles struct {
	FontFamily      string `json:"fontFamily"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// DefaultStyles returns the token set used when a tenant has not customized
// its theme.
func DefaultStyles() GlobalStyles {
	return GlobalStyles{
		FontFamily:      "'Inter', system-ui, sans-serif",
		PrimaryColor:    "#4f46e5",
		SecondaryColor:  "#0ea5e9",
		AccentColor:     "#f59e0b",
		BackgroundColor: "#ffffff",
	}
}

// RenderContext carries everything a block renderer may consult besides the
// block itself.
type RenderContext struct {
	Mode     RenderMode
	Selected bool
	Styles   GlobalStyles
	// Siblings is the full block list being rendered. Blocks never read
	// each other's props; this exists so the page-level renderer can
	// resolve cross-block concerns before mapping.
	Siblings []Block
}

// RenderFunc produces the HTML body for one block. Implementations must
// tolerate any missing or malformed prop by falling back to the schema
// default; absence never aborts rendering.
type RenderFunc func(b Block, ctx RenderContext) string

// BlockDefinition is the static registry entry for one block type.
// DefaultProps seeds every new instance and must satisfy the schema: each
// schema entry has a default so a block never renders an undefined value as
// visible text.
type BlockDefinition struct {
	Type         string       `json:"type"`
	Label        string       `json:"label"`
	Icon         string       `json:"icon"`
	Category     string       `json:"category"`
	DefaultProps Props        `json:"defaultProps"`
	Schema       []PropSchema `json:"schema"`
	Render       RenderFunc   `json:"-"`
}
