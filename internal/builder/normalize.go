package builder

import "strings"

// Background-type auto-switching. Several blocks carry a backgroundType
// discriminator alongside backgroundColor / backgroundGradient /
// backgroundImage / backgroundVideo props. Writing one of the value props
// implies the matching discriminator, and that invariant is enforced here as
// a single post-write normalization pass instead of being duplicated inside
// every field handler.
const (
	propBackgroundColor    = "backgroundColor"
	propBackgroundGradient = "backgroundGradient"
	propBackgroundImage    = "backgroundImage"
	propBackgroundVideo    = "backgroundVideo"
	propBackgroundType     = "backgroundType"
)

// NormalizeAfterWrite applies cross-field invariants to props after the
// named field was written. The props map is mutated in place and returned.
func NormalizeAfterWrite(props Props, changed string) Props {
	if props == nil {
		return props
	}
	switch changed {
	case propBackgroundColor:
		if v := props.String(propBackgroundColor, ""); v != "" && !strings.EqualFold(v, "transparent") {
			props[propBackgroundType] = "color"
		}
	case propBackgroundGradient:
		if props.String(propBackgroundGradient, "") != "" {
			props[propBackgroundType] = "gradient"
		}
	case propBackgroundImage:
		if props.String(propBackgroundImage, "") != "" {
			props[propBackgroundType] = "image"
		}
	case propBackgroundVideo:
		if props.String(propBackgroundVideo, "") != "" {
			props[propBackgroundType] = "video"
		}
	}
	return props
}

// ApplyDefaults returns props with every absent schema field filled from its
// declared default. Present values, even zero values, are kept; this runs at
// the read boundary so persisted data that predates a schema change still
// renders something sensible.
func ApplyDefaults(schema []PropSchema, props Props) Props {
	out := props.Clone()
	for _, field := range schema {
		if _, ok := out[field.Name]; ok {
			continue
		}
		if field.Default != nil {
			out[field.Name] = cloneValue(field.Default)
		}
	}
	return out
}

// DefaultItem builds one fresh element for an array field from the per-field
// defaults of its item schema. Used by the "Add Item" affordance.
func DefaultItem(itemSchema []PropSchema) map[string]any {
	item := make(map[string]any, len(itemSchema))
	for _, field := range itemSchema {
		if field.Default != nil {
			item[field.Name] = cloneValue(field.Default)
		} else {
			switch field.Type {
			case FieldBoolean:
				item[field.Name] = false
			case FieldNumber:
				item[field.Name] = float64(0)
			case FieldArray:
				item[field.Name] = []any{}
			default:
				item[field.Name] = ""
			}
		}
	}
	return item
}
