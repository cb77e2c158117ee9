package site

import (
	"context"
	"strings"
	"testing"

	"github.com/imobkit/sitengine/catalog"
)

func renderToString(t *testing.T, sec RenderedSection) string {
	t.Helper()
	var b strings.Builder
	if err := sec.Component.Render(context.Background(), &b); err != nil {
		t.Fatalf("render section %s: %v", sec.Section.Type, err)
	}
	return b.String()
}

func testDefinition() *catalog.Definition {
	return &catalog.Definition{
		ID:   "classic",
		Name: "Clássico",
		Theme: catalog.Theme{
			Primary:   "#1f3a5f",
			FontTitle: "Georgia, serif",
			FontBody:  "Arial, sans-serif",
		},
		Sections: []catalog.Section{
			{Type: catalog.SectionHeader},
			{Type: catalog.SectionHero},
			{Type: catalog.SectionListings},
			{Type: catalog.SectionFooter},
		},
	}
}

func TestRenderOneNodePerSectionInOrder(t *testing.T) {
	r := NewRenderer(nil)
	def := testDefinition()
	page := r.Render(def, Config{CompanyName: "Imob Teste"}, nil)

	if len(page.Sections) != len(def.Sections) {
		t.Fatalf("got %d rendered sections, want %d", len(page.Sections), len(def.Sections))
	}
	for i, sec := range page.Sections {
		if sec.Section.Type != def.Sections[i].Type {
			t.Errorf("position %d: got %s, want %s (manifest order)", i, sec.Section.Type, def.Sections[i].Type)
		}
		if sec.Component == nil {
			t.Errorf("position %d: nil component", i)
		}
	}
}

func TestRenderPublishesThemeOncePerPass(t *testing.T) {
	r := NewRenderer(nil)
	page := r.Render(testDefinition(), Config{PrimaryColor: "#ff0000"}, nil)

	if page.Sink.Var(VarPrimary) != "#ff0000" {
		t.Errorf("sink primary = %q, want tenant override", page.Sink.Var(VarPrimary))
	}
	if page.Theme.Primary != "#ff0000" {
		t.Errorf("resolved primary = %q, want tenant override", page.Theme.Primary)
	}
}

func TestRenderDerivesContactLink(t *testing.T) {
	r := NewRenderer(nil)
	page := r.Render(testDefinition(), Config{ContactNumber: "11987654321"}, nil)

	out := renderToString(t, page.Sections[0]) // header carries the contact link
	if !strings.Contains(out, "https://wa.me/5511987654321") {
		t.Errorf("header missing derived contact link: %q", out)
	}
}

func TestRenderEmptyContactUsesPlaceholder(t *testing.T) {
	r := NewRenderer(nil)
	page := r.Render(testDefinition(), Config{}, nil)

	out := renderToString(t, page.Sections[0])
	if !strings.Contains(out, `href="#"`) {
		t.Errorf("header should carry the disabled placeholder link: %q", out)
	}
}

// Manifest [header(default), hero(full-bleed), footer(luxo)]: hero has no
// full-bleed variant so it renders with its default, while footer resolves
// its registered luxo variant.
func TestRenderVariantResolution(t *testing.T) {
	def := &catalog.Definition{
		ID:    "t",
		Theme: catalog.Theme{Primary: "#000"},
		Sections: []catalog.Section{
			{Type: catalog.SectionHeader},
			{Type: catalog.SectionHero, Variant: "full-bleed"},
			{Type: catalog.SectionFooter, Variant: "luxo"},
		},
	}
	page := NewRenderer(nil).Render(def, Config{}, nil)
	if len(page.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(page.Sections))
	}

	hero := renderToString(t, page.Sections[1])
	if !strings.Contains(hero, `class="hero"`) {
		t.Errorf("hero should fall back to the default renderer: %q", hero)
	}
	if strings.Contains(hero, "hero-overlay") {
		t.Errorf("hero must not pick an unrelated variant: %q", hero)
	}

	footer := renderToString(t, page.Sections[2])
	if !strings.Contains(footer, "footer-luxo") {
		t.Errorf("footer should use the luxo variant: %q", footer)
	}
}

func TestRenderUnknownTypeEmitsEmptyNode(t *testing.T) {
	def := &catalog.Definition{
		ID:       "t",
		Theme:    catalog.Theme{Primary: "#000"},
		Sections: []catalog.Section{{Type: catalog.SectionType("sidebar")}},
	}
	page := NewRenderer(nil).Render(def, Config{}, nil)
	if len(page.Sections) != 1 {
		t.Fatalf("got %d sections, want 1 even for an unknown type", len(page.Sections))
	}
	out := renderToString(t, page.Sections[0])
	if !strings.Contains(out, "<!--") {
		t.Errorf("unknown type should render an empty comment node: %q", out)
	}
}

func TestPageComponentFullDocument(t *testing.T) {
	r := NewRenderer(nil)
	page := r.Render(testDefinition(), Config{CompanyName: "Imob Teste", PrimaryColor: "#abcdef"}, []Listing{
		{ID: "1", Title: "Casa Azul", Price: 500000},
	})

	var b strings.Builder
	if err := page.Component("Imob Teste", ".x{}", `<meta name="robots" content="index">`).Render(context.Background(), &b); err != nil {
		t.Fatalf("render page: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "--primary:#abcdef;") {
		t.Errorf("page missing theme variable block: %q", out)
	}
	if !strings.Contains(out, ".x{}") {
		t.Error("page missing template base CSS")
	}
	if strings.Index(out, `<meta name="robots"`) > strings.Index(out, "</head>") {
		t.Error("head extras must land inside <head>")
	}
	if !strings.Contains(out, "Casa Azul") {
		t.Error("page missing listing card")
	}
	if strings.Index(out, `class="site-header"`) > strings.Index(out, `class="hero"`) {
		t.Error("sections out of manifest order")
	}
}
