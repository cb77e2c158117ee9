package site

import (
	"reflect"
	"testing"

	"github.com/a-h/templ"

	"github.com/imobkit/sitengine/catalog"
)

func rendererPtr(fn SectionRenderer) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func TestResolveKnownVariant(t *testing.T) {
	r := DefaultRegistry()
	got := r.Resolve(catalog.SectionFooter, "luxo")
	if rendererPtr(got) != rendererPtr(FooterLuxo) {
		t.Error("expected footer luxo variant renderer")
	}
}

func TestResolveUnknownVariantFallsBackToDefault(t *testing.T) {
	r := DefaultRegistry()
	for _, typ := range []catalog.SectionType{
		catalog.SectionHeader, catalog.SectionHero, catalog.SectionFeatures,
		catalog.SectionListings, catalog.SectionCTA, catalog.SectionFooter,
	} {
		unknown := r.Resolve(typ, "no-such-variant")
		def := r.Resolve(typ, DefaultVariant)
		if unknown == nil || def == nil {
			t.Fatalf("type %s missing default renderer", typ)
		}
		if rendererPtr(unknown) != rendererPtr(def) {
			t.Errorf("type %s: unknown variant did not resolve to default", typ)
		}
	}
}

func TestResolveEmptyVariantIsDefault(t *testing.T) {
	r := DefaultRegistry()
	if rendererPtr(r.Resolve(catalog.SectionHero, "")) != rendererPtr(r.Resolve(catalog.SectionHero, DefaultVariant)) {
		t.Error("empty variant should resolve to default")
	}
}

func TestRegisterVariantIsAdditive(t *testing.T) {
	r := DefaultRegistry()
	custom := func(sc SectionContext) templ.Component { return Header(sc) }
	r.Register(catalog.SectionHeader, "minimal", custom)

	if rendererPtr(r.Resolve(catalog.SectionHeader, "minimal")) != rendererPtr(custom) {
		t.Error("custom variant not resolvable")
	}
	if rendererPtr(r.Resolve(catalog.SectionHeader, DefaultVariant)) != rendererPtr(Header) {
		t.Error("registering a variant must not touch the default")
	}
}

func TestResolveUnknownTypeIsNil(t *testing.T) {
	r := DefaultRegistry()
	if got := r.Resolve(catalog.SectionType("sidebar"), "default"); got != nil {
		t.Error("unknown type should resolve to nil")
	}
}
