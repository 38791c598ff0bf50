package builder

import "sort"

// Registry maps block-type identifiers to their definitions. It is the
// plugin table of the builder: canvas, property panel, renderer and template
// catalog all look up behavior here instead of switching on type. A registry
// is an explicit value (not an ambient global) so isolated instances can be
// built for tests and multiple builders can coexist.
type Registry struct {
	defs  map[string]*BlockDefinition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*BlockDefinition)}
}

// Register adds or replaces a definition. Registration order is preserved
// for palette listing.
func (r *Registry) Register(def BlockDefinition) {
	if _, exists := r.defs[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	d := def
	r.defs[def.Type] = &d
}

// Lookup returns the definition for a block type, or nil when the type is
// unknown. Callers treat a miss as "render nothing": stale persisted data
// referencing a removed block type must never break a page.
func (r *Registry) Lookup(blockType string) *BlockDefinition {
	return r.defs[blockType]
}

// Has reports whether a block type is registered.
func (r *Registry) Has(blockType string) bool {
	_, ok := r.defs[blockType]
	return ok
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []BlockDefinition {
	out := make([]BlockDefinition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, *r.defs[t])
	}
	return out
}

// Categories returns the distinct palette categories in sorted order.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, t := range r.order {
		c := r.defs[t].Category
		if c != "" && !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// NewBlock instantiates a block of the given type with a fresh ID and a deep
// copy of the definition's default props. Returns false for unknown types.
func (r *Registry) NewBlock(blockType string) (Block, bool) {
	def := r.Lookup(blockType)
	if def == nil {
		return Block{}, false
	}
	return Block{
		ID:    NewBlockID(),
		Type:  def.Type,
		Props: def.DefaultProps.Clone(),
		Label: def.Label,
	}, true
}
