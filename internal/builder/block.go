// Package builder contains the site-builder composition engine: the block
// data model, the block-type registry, the schema-driven property panel,
// the ordered-list canvas editor and its undo/redo history, and the
// orchestrator that ties them together for one site.
package builder

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"strconv"
	"strings"
)

// Props is the free-form property bag of a block. Values are JSON-shaped:
// strings, bools, float64 numbers, []any and map[string]any. The shape of a
// block's props is described by its BlockDefinition schema, but persisted
// data may predate schema changes, so readers always fall back to defaults.
type Props map[string]any

// Block is one configurable content unit on a page.
type Block struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Props Props  `json:"props"`
	Label string `json:"label,omitempty"`
}

// NewBlockID returns a random base-36 token. IDs are unique within a page
// and are never reused; they key selection, reordering and rendering.
func NewBlockID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; keep the
		// signature simple and degrade to a counter-free fallback.
		return "blk000000"
	}
	return formatBlockID(binary.BigEndian.Uint64(buf[:]))
}

// formatBlockID renders n as exactly nine base-36 digits. Draws below
// 36^8 produce fewer digits and are left-padded with zeros.
func formatBlockID(n uint64) string {
	s := strconv.FormatUint(n, 36)
	if len(s) >= 9 {
		return s[:9]
	}
	return strings.Repeat("0", 9-len(s)) + s
}

// Clone returns a deep copy of the props so edits never alias the original.
func (p Props) Clone() Props {
	if p == nil {
		return Props{}
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case Props:
		return map[string]any(t.Clone())
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return t
	}
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	b.Props = b.Props.Clone()
	return b
}

// CloneBlocks deep-copies a block list. History snapshots and published
// copies go through here so no two owners ever share a props map.
func CloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// String reads a string prop, falling back when the key is absent, null or
// of the wrong type.
func (p Props) String(key, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

// Bool reads a bool prop with a fallback.
func (p Props) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

// Number reads a numeric prop with a fallback. JSON decoding produces
// float64; ints written programmatically are accepted too.
func (p Props) Number(key string, fallback float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

// Array reads an array prop; absent or malformed values yield nil.
func (p Props) Array(key string) []any {
	if v, ok := p[key].([]any); ok {
		return v
	}
	return nil
}

// MarshalBlocks serializes a block list for storage.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(blocks)
}

// UnmarshalBlocks deserializes a stored block list. Empty input yields an
// empty page rather than an error.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return []Block{}, nil
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []Block{}
	}
	return blocks, nil
}
