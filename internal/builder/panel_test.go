package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelSchema() []PropSchema {
	return []PropSchema{
		{Name: "title", Label: "Title", Type: FieldText, Default: "Welcome"},
		{Name: "subtitle", Label: "Subtitle", Type: FieldTextarea, Group: "Content"},
		{Name: "columns", Label: "Columns", Type: FieldNumber, Group: "Layout",
			Min: fptr(1), Max: fptr(4), Default: float64(3)},
		{Name: "visible", Label: "Visible", Type: FieldBoolean, Group: "Layout", Default: true},
		{Name: "align", Label: "Align", Type: FieldSelect, Group: "Layout", Default: "left",
			Options: []SelectOption{{Value: "left", Label: "Left"}, {Value: "right", Label: "Right"}}},
		{Name: "items", Label: "Items", Type: FieldArray, ArrayItemSchema: []PropSchema{
			{Name: "label", Label: "Label", Type: FieldText, Default: "Item"},
			{Name: "count", Label: "Count", Type: FieldNumber},
		}},
		{Name: "backgroundColor", Label: "Background Color", Type: FieldColor, Group: "Background"},
		{Name: "backgroundGradient", Label: "Gradient", Type: FieldGradient, Group: "Background"},
	}
}

func TestBuildFormGroupsByFirstAppearance(t *testing.T) {
	groups := BuildForm(panelSchema(), Props{"title": "Hello"})

	require.Len(t, groups, 3)
	assert.Equal(t, "Content", groups[0].Name)
	assert.Equal(t, "Layout", groups[1].Name)
	assert.Equal(t, "Background", groups[2].Name)

	// Ungrouped "title" and grouped "subtitle" both land in Content.
	require.Len(t, groups[0].Fields, 3)
	assert.Equal(t, "Hello", groups[0].Fields[0].Value)

	// Absent values show their schema defaults.
	assert.Equal(t, float64(3), groups[1].Fields[0].Value)
}

func TestApplyFieldReturnsFullReplacement(t *testing.T) {
	props := Props{"title": "Old", "visible": true}

	next, err := ApplyField(panelSchema(), props, "title", "New")
	require.NoError(t, err)

	assert.Equal(t, "New", next["title"])
	assert.Equal(t, true, next["visible"])
	// Input untouched.
	assert.Equal(t, "Old", props["title"])
}

func TestApplyFieldUnknownField(t *testing.T) {
	_, err := ApplyField(panelSchema(), Props{}, "nope", "x")
	assert.Error(t, err)
}

func TestApplyFieldClampsNumbers(t *testing.T) {
	schema := panelSchema()

	next, err := ApplyField(schema, Props{}, "columns", 99)
	require.NoError(t, err)
	assert.Equal(t, float64(4), next["columns"])

	next, err = ApplyField(schema, Props{}, "columns", "0")
	require.NoError(t, err)
	assert.Equal(t, float64(1), next["columns"])

	_, err = ApplyField(schema, Props{}, "columns", "not-a-number")
	assert.Error(t, err)
}

func TestApplyFieldValidatesSelect(t *testing.T) {
	next, err := ApplyField(panelSchema(), Props{}, "align", "right")
	require.NoError(t, err)
	assert.Equal(t, "right", next["align"])

	_, err = ApplyField(panelSchema(), Props{}, "align", "diagonal")
	assert.Error(t, err)
}

func TestApplyFieldBackgroundColorSwitchesType(t *testing.T) {
	next, err := ApplyField(panelSchema(), Props{}, "backgroundColor", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "color", next["backgroundType"])

	// Transparent does not flip the discriminator.
	next, err = ApplyField(panelSchema(), Props{"backgroundType": "image"}, "backgroundColor", "transparent")
	require.NoError(t, err)
	assert.Equal(t, "image", next["backgroundType"])
}

func TestGradientSelectionScenario(t *testing.T) {
	gradient := ComposeGradient("#ff0000", "#0000ff")
	assert.Equal(t, "linear-gradient(to right, #ff0000, #0000ff)", gradient)

	next, err := ApplyField(panelSchema(), Props{}, "backgroundGradient", gradient)
	require.NoError(t, err)

	assert.Equal(t, gradient, next["backgroundGradient"])
	assert.Equal(t, "gradient", next["backgroundType"])
}

func TestAppendArrayItemSeedsDefaults(t *testing.T) {
	next, err := AppendArrayItem(panelSchema(), Props{}, "items")
	require.NoError(t, err)

	items := next.Array("items")
	require.Len(t, items, 1)

	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Item", item["label"])
	assert.Equal(t, float64(0), item["count"])
}

func TestRemoveArrayItem(t *testing.T) {
	props := Props{"items": []any{
		map[string]any{"label": "one"},
		map[string]any{"label": "two"},
	}}

	next, err := RemoveArrayItem(panelSchema(), props, "items", 0)
	require.NoError(t, err)

	items := next.Array("items")
	require.Len(t, items, 1)
	assert.Equal(t, "two", items[0].(map[string]any)["label"])

	// Out of range leaves the list alone.
	next, err = RemoveArrayItem(panelSchema(), props, "items", 5)
	require.NoError(t, err)
	assert.Len(t, next.Array("items"), 2)
}

func TestUpdateArrayItemReplacesWholesale(t *testing.T) {
	props := Props{"items": []any{map[string]any{"label": "one", "count": float64(1)}}}

	next, err := UpdateArrayItem(panelSchema(), props, "items", 0, map[string]any{"label": "renamed"})
	require.NoError(t, err)

	item := next.Array("items")[0].(map[string]any)
	assert.Equal(t, "renamed", item["label"])
	_, ok := item["count"]
	assert.False(t, ok)

	_, err = UpdateArrayItem(panelSchema(), props, "items", 3, map[string]any{})
	assert.Error(t, err)
}

func TestArrayOpsOnNonArrayField(t *testing.T) {
	_, err := AppendArrayItem(panelSchema(), Props{}, "title")
	assert.Error(t, err)
}

func TestNormalizeAfterWriteImageAndVideo(t *testing.T) {
	p := NormalizeAfterWrite(Props{"backgroundImage": "/img/banner.jpg"}, "backgroundImage")
	assert.Equal(t, "image", p["backgroundType"])

	p = NormalizeAfterWrite(Props{"backgroundVideo": "/video/tour.mp4"}, "backgroundVideo")
	assert.Equal(t, "video", p["backgroundType"])

	// Clearing the value leaves the discriminator alone.
	p = NormalizeAfterWrite(Props{"backgroundImage": "", "backgroundType": "color"}, "backgroundImage")
	assert.Equal(t, "color", p["backgroundType"])
}

func TestApplyDefaultsKeepsZeroValues(t *testing.T) {
	filled := ApplyDefaults(panelSchema(), Props{"visible": false})

	assert.Equal(t, false, filled["visible"])
	assert.Equal(t, "Welcome", filled["title"])
}
