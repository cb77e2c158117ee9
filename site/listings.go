package site

import (
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const defaultGridLimit = 6

// PricePlaceholder is shown when a listing has no usable price.
const PricePlaceholder = "Consulte"

// Card is the derived view data for one listing in the grid.
type Card struct {
	Listing Listing
	Price   string
	Area    string
	Link    string
}

// FilterListings applies the grid business rule: sold listings are dropped
// unconditionally; when featuredOnly is set and at least one featured
// listing survives, the set narrows to featured listings, otherwise it
// silently keeps the full unsold set so an over-eager filter never empties
// the grid. Insertion order is preserved, then the result is truncated to
// limit.
func FilterListings(listings []Listing, featuredOnly bool, limit int) []Listing {
	if limit <= 0 {
		limit = defaultGridLimit
	}
	var unsold []Listing
	for _, l := range listings {
		if !l.Sold {
			unsold = append(unsold, l)
		}
	}
	picked := unsold
	if featuredOnly {
		var featured []Listing
		for _, l := range unsold {
			if l.Featured {
				featured = append(featured, l)
			}
		}
		if len(featured) > 0 {
			picked = featured
		}
	}
	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

// BuildCards derives display cards for the filtered listings.
func BuildCards(listings []Listing) []Card {
	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		area := ""
		if a := l.DisplayArea(); a > 0 {
			area = strconv.FormatFloat(a, 'f', -1, 64) + " m²"
		}
		cards = append(cards, Card{
			Listing: l,
			Price:   FormatPrice(l.Price),
			Area:    area,
			Link:    "/imovel/" + l.ID + "/",
		})
	}
	return cards
}

// FormatPrice renders a price in BRL convention (R$ with dot thousand
// separators) or the inquire placeholder for absent/zero prices.
func FormatPrice(price float64) string {
	if price <= 0 {
		return PricePlaceholder
	}
	whole := int64(price)
	digits := strconv.FormatInt(whole, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return "R$ " + string(out)
}

// ListingsGrid is the default listings section renderer.
func ListingsGrid(sc SectionContext) templ.Component {
	title := cfgString(sc.Section.Config, "title", "Imóveis")
	featuredOnly := cfgBool(sc.Section.Config, "showFeatured", false)
	limit := cfgInt(sc.Section.Config, "limit", defaultGridLimit)
	cards := BuildCards(FilterListings(sc.Listings, featuredOnly, limit))
	return component(func(w io.Writer) error {
		fmt.Fprintf(w, `<section class="listings"><h2>%s</h2><div class="listing-grid">`, esc(title))
		if len(cards) == 0 {
			writePlaceholderCards(w)
		}
		for _, card := range cards {
			writeCard(w, card)
		}
		_, err := fmt.Fprint(w, `</div></section>`)
		return err
	})
}

func writeCard(w io.Writer, card Card) {
	l := card.Listing
	fmt.Fprintf(w, `<article class="listing-card"><a href="%s">`, esc(card.Link))
	if cover := l.Cover(); cover != "" {
		fmt.Fprintf(w, `<img src="%s" alt="%s">`, esc(cover), esc(l.Title))
	}
	fmt.Fprintf(w, `<h3>%s</h3>`, esc(l.Title))
	if l.Neighborhood != "" || l.City != "" {
		fmt.Fprintf(w, `<p class="card-location">%s</p>`, esc(joinLocation(l.Neighborhood, l.City)))
	}
	fmt.Fprintf(w, `<ul class="card-facts">`)
	if l.Bedrooms > 0 {
		fmt.Fprintf(w, `<li>%d quartos</li>`, l.Bedrooms)
	}
	if l.Bathrooms > 0 {
		fmt.Fprintf(w, `<li>%d banheiros</li>`, l.Bathrooms)
	}
	if card.Area != "" {
		fmt.Fprintf(w, `<li>%s</li>`, esc(card.Area))
	}
	fmt.Fprintf(w, `</ul><p class="card-price">%s</p></a></article>`, esc(card.Price))
}

// writePlaceholderCards keeps the grid visually coherent when the listing
// source is down or the tenant has no listings yet.
func writePlaceholderCards(w io.Writer) {
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, `<article class="listing-card placeholder"><h3>Em breve</h3><p class="card-price">%s</p></article>`, PricePlaceholder)
	}
}

func joinLocation(neighborhood, city string) string {
	switch {
	case neighborhood == "":
		return city
	case city == "":
		return neighborhood
	default:
		return neighborhood + ", " + city
	}
}
