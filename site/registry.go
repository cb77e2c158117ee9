package site

import (
	"github.com/a-h/templ"

	"github.com/imobkit/sitengine/catalog"
)

// DefaultVariant is the variant name every section type must register.
const DefaultVariant = "default"

// SectionContext is everything a section renderer may read: the merged
// tenant config (ContactLink already derived), the resolved theme, the
// section-local config, and the full listing slice. Filtering and limiting
// listings is each renderer's own responsibility.
type SectionContext struct {
	Config   Config
	Theme    Resolved
	Section  catalog.Section
	Listings []Listing
}

// SectionRenderer turns a SectionContext into a templ component.
type SectionRenderer func(sc SectionContext) templ.Component

// Registry maps (section type, variant) to a renderer. Resolution never
// fails for a valid type: an unknown variant falls back to the type's
// default entry.
type Registry struct {
	renderers map[catalog.SectionType]map[string]SectionRenderer
}

// NewRegistry returns an empty registry. Use DefaultRegistry for one
// preloaded with the built-in section renderers.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[catalog.SectionType]map[string]SectionRenderer)}
}

// Register adds a renderer for (typ, variant). An empty variant registers
// the type's default. Registering a variant is additive and never touches
// the default entry.
func (r *Registry) Register(typ catalog.SectionType, variant string, fn SectionRenderer) {
	if variant == "" {
		variant = DefaultVariant
	}
	byVariant, ok := r.renderers[typ]
	if !ok {
		byVariant = make(map[string]SectionRenderer)
		r.renderers[typ] = byVariant
	}
	byVariant[variant] = fn
}

// Resolve returns the renderer for (typ, variant), falling back to the
// type's default when the variant is unknown. It returns nil only for a
// type with no default registered, which is a wiring error, not a template
// authoring error.
func (r *Registry) Resolve(typ catalog.SectionType, variant string) SectionRenderer {
	byVariant, ok := r.renderers[typ]
	if !ok {
		return nil
	}
	if variant == "" {
		variant = DefaultVariant
	}
	if fn, ok := byVariant[variant]; ok {
		return fn
	}
	return byVariant[DefaultVariant]
}

// DefaultRegistry returns a registry with the built-in renderer set: a
// default for every section type plus the shipped variants.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(catalog.SectionHeader, DefaultVariant, Header)
	r.Register(catalog.SectionHero, DefaultVariant, Hero)
	r.Register(catalog.SectionHero, "overlay", HeroOverlay)
	r.Register(catalog.SectionFeatures, DefaultVariant, Features)
	r.Register(catalog.SectionListings, DefaultVariant, ListingsGrid)
	r.Register(catalog.SectionCTA, DefaultVariant, CallToAction)
	r.Register(catalog.SectionFooter, DefaultVariant, Footer)
	r.Register(catalog.SectionFooter, "luxo", FooterLuxo)
	return r
}
