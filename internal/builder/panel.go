package builder

import (
	"fmt"
	"strconv"
)

// The property panel is a schema-driven form generator: given one block's
// schema and current props it produces grouped field descriptors, and every
// write goes back through ApplyField, which returns a full replacement props
// map. The panel is not a privileged writer; it uses the same
// onChange(blockID, newProps) contract the blocks themselves use.

// DefaultGroup is the panel section for fields that declare no group.
const DefaultGroup = "Content"

// FormField pairs a schema entry with the current value to edit.
type FormField struct {
	Schema PropSchema `json:"schema"`
	Value  any        `json:"value"`
}

// FormGroup is one collapsible section of the panel.
type FormGroup struct {
	Name   string      `json:"name"`
	Fields []FormField `json:"fields"`
}

// BuildForm groups a block's schema fields for display. Groups appear in
// order of first appearance in the schema; ungrouped fields land in
// DefaultGroup. Values come from props with schema defaults filling gaps, so
// the form never shows an undefined value.
func BuildForm(schema []PropSchema, props Props) []FormGroup {
	filled := ApplyDefaults(schema, props)
	var groups []FormGroup
	index := make(map[string]int)
	for _, field := range schema {
		name := field.Group
		if name == "" {
			name = DefaultGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, FormGroup{Name: name})
		}
		groups[i].Fields = append(groups[i].Fields, FormField{
			Schema: field,
			Value:  filled[field.Name],
		})
	}
	return groups
}

// ApplyField writes one field value and returns the complete new props map.
// The input props are never mutated. Numbers are coerced and clamped to the
// schema's min/max; the cross-field background invariant runs after every
// write.
func ApplyField(schema []PropSchema, props Props, name string, value any) (Props, error) {
	field, ok := findField(schema, name)
	if !ok {
		return nil, fmt.Errorf("unknown field %q", name)
	}
	out := props.Clone()
	switch field.Type {
	case FieldNumber:
		n, err := coerceNumber(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if field.Min != nil && n < *field.Min {
			n = *field.Min
		}
		if field.Max != nil && n > *field.Max {
			n = *field.Max
		}
		out[name] = n
	case FieldBoolean:
		out[name] = coerceBool(value)
	case FieldSelect:
		s := fmt.Sprintf("%v", value)
		if len(field.Options) > 0 && !optionValid(field.Options, s) {
			return nil, fmt.Errorf("field %q: %q is not an option", name, s)
		}
		out[name] = s
	case FieldArray:
		arr, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("field %q: expected array", name)
		}
		out[name] = cloneValue(arr)
	default:
		if value == nil {
			out[name] = ""
		} else {
			out[name] = value
		}
	}
	return NormalizeAfterWrite(out, name), nil
}

// AppendArrayItem adds one element, seeded from the item schema's defaults,
// to an array field and returns the new props. Array edits are always a
// whole-array read-modify-write so two racing edits can never alias by
// index.
func AppendArrayItem(schema []PropSchema, props Props, name string) (Props, error) {
	field, ok := findField(schema, name)
	if !ok || field.Type != FieldArray {
		return nil, fmt.Errorf("field %q is not an array field", name)
	}
	items := append(cloneValue(props.Array(name)).([]any), DefaultItem(field.ArrayItemSchema))
	return ApplyField(schema, props, name, items)
}

// RemoveArrayItem deletes the element at index from an array field.
// Out-of-range indexes leave the props unchanged.
func RemoveArrayItem(schema []PropSchema, props Props, name string, index int) (Props, error) {
	field, ok := findField(schema, name)
	if !ok || field.Type != FieldArray {
		return nil, fmt.Errorf("field %q is not an array field", name)
	}
	items := props.Array(name)
	if index < 0 || index >= len(items) {
		return props.Clone(), nil
	}
	next := cloneValue(items).([]any)
	next = append(next[:index], next[index+1:]...)
	return ApplyField(schema, props, name, next)
}

// UpdateArrayItem replaces the element at index wholesale.
func UpdateArrayItem(schema []PropSchema, props Props, name string, index int, item map[string]any) (Props, error) {
	field, ok := findField(schema, name)
	if !ok || field.Type != FieldArray {
		return nil, fmt.Errorf("field %q is not an array field", name)
	}
	items := props.Array(name)
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("field %q: index %d out of range", name, index)
	}
	next := cloneValue(items).([]any)
	next[index] = cloneValue(item)
	return ApplyField(schema, props, name, next)
}

// ComposeGradient builds the two-stop gradient string written by the
// gradient builder's start/end color pickers. The curated-swatch grid and
// the raw CSS textbox write the same prop directly.
func ComposeGradient(start, end string) string {
	return fmt.Sprintf("linear-gradient(to right, %s, %s)", start, end)
}

func findField(schema []PropSchema, name string) (PropSchema, bool) {
	for _, f := range schema {
		if f.Name == name {
			return f, true
		}
	}
	return PropSchema{}, false
}

func optionValid(options []SelectOption, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func coerceNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}

func coerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1" || v == "on"
	default:
		return false
	}
}
