// Package site renders tenant public sites: it resolves a template theme
// against tenant overrides, dispatches manifest sections to registered
// renderers, and exposes the live-preview hub used by the editor surface.
package site

// Config is the tenant-owned site configuration. Fields override the
// template theme where both define the same visual property. ContactLink is
// always derived from ContactNumber, never authored directly.
type Config struct {
	Tenant      string
	CompanyName string
	Logo        string

	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	BackgroundColor string

	ContactNumber string
	ContactLink   string

	HeroTitle   string
	HeroText    string
	AboutText   string
	ContactText string

	FooterText  string
	FooterLegal string

	Instagram string
	Facebook  string

	TemplateID string
}

// Listing is one real-estate unit rendered by the listings sections.
type Listing struct {
	ID           string
	Tenant       string
	Title        string
	Street       string
	Neighborhood string
	City         string

	Price float64

	Bedrooms  int
	Bathrooms int
	Parking   int

	// Synonymous area fields from different intake paths; DisplayArea
	// reconciles them.
	TotalArea  float64
	UsefulArea float64
	BuiltArea  float64

	Photos []string

	Sold     bool
	Featured bool
	Status   string

	CreatedAt string
}

// DisplayArea reconciles the synonymous area fields to a single value:
// the first nonzero of total, useful, built area.
func (l Listing) DisplayArea() float64 {
	for _, a := range []float64{l.TotalArea, l.UsefulArea, l.BuiltArea} {
		if a > 0 {
			return a
		}
	}
	return 0
}

// Cover returns the first photo, or empty when the listing has none.
func (l Listing) Cover() string {
	if len(l.Photos) == 0 {
		return ""
	}
	return l.Photos[0]
}
