package catalog

// Theme holds the visual identity a template ships with. Tenant site
// configuration overrides these values field by field at render time.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	FontTitle  string `json:"fontTitle"`
	FontBody   string `json:"fontBody"`
}

// SectionType enumerates the section kinds a template may declare.
type SectionType string

const (
	SectionHeader   SectionType = "header"
	SectionHero     SectionType = "hero"
	SectionFeatures SectionType = "features"
	SectionListings SectionType = "listings"
	SectionCTA      SectionType = "cta"
	SectionFooter   SectionType = "footer"
)

// ValidType reports whether t is one of the known section types.
func ValidType(t SectionType) bool {
	switch t {
	case SectionHeader, SectionHero, SectionFeatures, SectionListings, SectionCTA, SectionFooter:
		return true
	}
	return false
}

// Section is one visual block in a template manifest. Variant selects an
// alternative rendering style; an unknown variant falls back to the type's
// default renderer. Config carries section-local overrides.
type Section struct {
	Type    SectionType    `json:"type"`
	Variant string         `json:"variant,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// Definition is a full template manifest: theme plus an ordered section
// list. Render order is array order. Definitions are read-only after load.
type Definition struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Preview  string    `json:"preview"`
	Theme    Theme     `json:"theme"`
	Sections []Section `json:"sections"`
}

// Entry is one row of the template index, enough to show a picker.
type Entry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Preview string `json:"preview"`
}

// AssetKind names the optional static files a template may ship.
type AssetKind string

const (
	AssetHTML AssetKind = "base.html"
	AssetCSS  AssetKind = "base.css"
)
