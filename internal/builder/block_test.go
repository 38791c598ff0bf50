package builder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewBlockID()
		assert.Len(t, id, 9)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestBlockIDFormatIsFixedWidth(t *testing.T) {
	for _, n := range []uint64{0, 1, 35, 36, 1<<32 - 1, 1 << 48, math.MaxUint64} {
		assert.Len(t, formatBlockID(n), 9, "n=%d", n)
	}
	assert.Equal(t, "000000000", formatBlockID(0))
	assert.Equal(t, "000000001", formatBlockID(1))
	assert.Equal(t, "00000000z", formatBlockID(35))
}

func TestPropsAccessorsFallBack(t *testing.T) {
	p := Props{
		"title":   "Hello",
		"count":   float64(3),
		"enabled": true,
		"items":   []any{"a"},
		"wrong":   42,
	}

	assert.Equal(t, "Hello", p.String("title", "x"))
	assert.Equal(t, "x", p.String("missing", "x"))
	assert.Equal(t, "x", p.String("count", "x"))

	assert.Equal(t, float64(3), p.Number("count", 0))
	assert.Equal(t, float64(7), p.Number("missing", 7))

	assert.True(t, p.Bool("enabled", false))
	assert.False(t, p.Bool("missing", false))
	assert.False(t, p.Bool("title", false))

	assert.Len(t, p.Array("items"), 1)
	assert.Nil(t, p.Array("title"))
}

func TestPropsCloneIsDeep(t *testing.T) {
	p := Props{
		"nested": map[string]any{"k": "v"},
		"list":   []any{map[string]any{"n": float64(1)}},
	}

	c := p.Clone()
	c["nested"].(map[string]any)["k"] = "changed"
	c["list"].([]any)[0].(map[string]any)["n"] = float64(2)

	assert.Equal(t, "v", p["nested"].(map[string]any)["k"])
	assert.Equal(t, float64(1), p["list"].([]any)[0].(map[string]any)["n"])
}

func TestUnmarshalBlocksEmptyInput(t *testing.T) {
	blocks, err := UnmarshalBlocks(nil)
	require.NoError(t, err)
	assert.NotNil(t, blocks)
	assert.Len(t, blocks, 0)

	blocks, err = UnmarshalBlocks([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, blocks)

	_, err = UnmarshalBlocks([]byte("{broken"))
	assert.Error(t, err)
}

func TestMarshalRoundTripPreservesOrder(t *testing.T) {
	in := []Block{
		{ID: "a", Type: "hero", Props: Props{"title": "One"}},
		{ID: "b", Type: "text", Props: Props{"content": "Two"}},
	}

	data, err := MarshalBlocks(in)
	require.NoError(t, err)

	out, err := UnmarshalBlocks(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "Two", out[1].Props.String("content", ""))
}
