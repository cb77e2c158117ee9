package site

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/a-h/templ"

	"github.com/imobkit/sitengine/catalog"
)

// Renderer composes a tenant page from a template manifest, the tenant
// config, and the listing slice. It owns no state between render passes; a
// pass is a pure function of its three inputs plus the registry.
type Renderer struct {
	registry *Registry
}

// NewRenderer creates a Renderer over the given registry. A nil registry
// uses the built-in DefaultRegistry.
func NewRenderer(registry *Registry) *Renderer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Renderer{registry: registry}
}

// RenderedSection pairs one manifest section with its rendered component.
type RenderedSection struct {
	Section   catalog.Section
	Component templ.Component
}

// Page is the result of one render pass: the resolved theme, the theme
// variables as published to the sink, and one rendered node per manifest
// section in manifest order.
type Page struct {
	Theme    Resolved
	Sink     *CSSVarSink
	Sections []RenderedSection
}

// Render resolves the theme (tenant overrides win), publishes it to a fresh
// sink, derives the contact link into the config, and dispatches every
// manifest section through the registry. Writing theme variables to the
// sink is the only mutation a pass performs.
func (r *Renderer) Render(def *catalog.Definition, cfg Config, listings []Listing) Page {
	resolved := ResolveTheme(def.Theme, cfg)
	sink := NewCSSVarSink()
	resolved.Publish(sink)

	cfg.ContactLink = ContactLink(cfg.ContactNumber)

	sections := make([]RenderedSection, 0, len(def.Sections))
	for _, sec := range def.Sections {
		fn := r.registry.Resolve(sec.Type, sec.Variant)
		var cmp templ.Component
		if fn == nil {
			log.Printf("site: no renderer registered for section type %q, emitting empty node", sec.Type)
			cmp = emptySection(sec.Type)
		} else {
			cmp = fn(SectionContext{
				Config:   cfg,
				Theme:    resolved,
				Section:  sec,
				Listings: listings,
			})
		}
		sections = append(sections, RenderedSection{Section: sec, Component: cmp})
	}
	return Page{Theme: resolved, Sink: sink, Sections: sections}
}

// Component assembles the full page document: HTML shell, the :root theme
// variable block, optional template base CSS, then every section in order.
// headExtra fragments are written into <head> verbatim; callers own their
// escaping.
func (p Page) Component(title, baseCSS string, headExtra ...string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style>`, esc(title), p.Sink.CSS())
		if baseCSS != "" {
			fmt.Fprintf(w, `<style>%s</style>`, baseCSS)
		}
		for _, extra := range headExtra {
			fmt.Fprint(w, extra)
		}
		fmt.Fprint(w, `</head><body>`)
		for _, sec := range p.Sections {
			if err := sec.Component.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, `</body></html>`)
		return err
	})
}

func emptySection(typ catalog.SectionType) templ.Component {
	return component(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!-- section %s -->`, esc(string(typ)))
		return err
	})
}
