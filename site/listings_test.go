package site

import (
	"context"
	"strings"
	"testing"

	"github.com/imobkit/sitengine/catalog"
)

func mixedListings() []Listing {
	return []Listing{
		{ID: "1", Title: "Casa A", Sold: false, Featured: true},
		{ID: "2", Title: "Casa B", Sold: true, Featured: true},
		{ID: "3", Title: "Casa C", Sold: false, Featured: false},
		{ID: "4", Title: "Casa D", Sold: false, Featured: true},
		{ID: "5", Title: "Casa E", Sold: true, Featured: false},
		{ID: "6", Title: "Casa F", Sold: false, Featured: false},
	}
}

func TestFilterListingsExcludesSold(t *testing.T) {
	got := FilterListings(mixedListings(), false, 10)
	if len(got) != 4 {
		t.Fatalf("got %d listings, want 4 unsold", len(got))
	}
	for _, l := range got {
		if l.Sold {
			t.Errorf("sold listing %s leaked into the grid", l.ID)
		}
	}
}

func TestFilterListingsFeaturedOnly(t *testing.T) {
	got := FilterListings(mixedListings(), true, 10)
	if len(got) != 2 {
		t.Fatalf("got %d listings, want 2 featured unsold", len(got))
	}
	for _, l := range got {
		if !l.Featured || l.Sold {
			t.Errorf("listing %s should be featured and unsold", l.ID)
		}
	}
}

func TestFilterListingsFeaturedFallback(t *testing.T) {
	listings := []Listing{
		{ID: "1", Sold: false},
		{ID: "2", Sold: false},
		{ID: "3", Sold: true, Featured: true}, // featured but sold: never shown
	}
	got := FilterListings(listings, true, 10)
	if len(got) != 2 {
		t.Fatalf("got %d listings, want fallback to 2 unsold", len(got))
	}
}

func TestFilterListingsLimitAndOrder(t *testing.T) {
	var listings []Listing
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		listings = append(listings, Listing{ID: id})
	}
	got := FilterListings(listings, false, 0) // zero limit uses the default
	if len(got) != defaultGridLimit {
		t.Fatalf("got %d listings, want default limit %d", len(got), defaultGridLimit)
	}
	for i, l := range got {
		if l.ID != listings[i].ID {
			t.Errorf("position %d: got %s, want insertion order preserved", i, l.ID)
		}
	}
}

// Eight unsold listings, three featured, limit five: the grid narrows to
// exactly the three featured listings, it does not top up to the limit.
func TestGridFeaturedBelowLimitNoTopUp(t *testing.T) {
	var listings []Listing
	for i := 0; i < 8; i++ {
		listings = append(listings, Listing{ID: string(rune('a' + i)), Featured: i < 3})
	}
	got := FilterListings(listings, true, 5)
	if len(got) != 3 {
		t.Fatalf("got %d listings, want exactly the 3 featured", len(got))
	}
	for _, l := range got {
		if !l.Featured {
			t.Errorf("listing %s is not featured", l.ID)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0, "Consulte"},
		{-1, "Consulte"},
		{950, "R$ 950"},
		{1500, "R$ 1.500"},
		{450000, "R$ 450.000"},
		{1234567, "R$ 1.234.567"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.price); got != c.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", c.price, got, c.want)
		}
	}
}

func TestBuildCards(t *testing.T) {
	cards := BuildCards([]Listing{
		{ID: "x1", Title: "Apto", Price: 300000, TotalArea: 0, UsefulArea: 72},
	})
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	card := cards[0]
	if card.Price != "R$ 300.000" {
		t.Errorf("Price = %q", card.Price)
	}
	if card.Area != "72 m²" {
		t.Errorf("Area = %q, want reconciled useful area", card.Area)
	}
	if card.Link != "/imovel/x1/" {
		t.Errorf("Link = %q", card.Link)
	}
}

func TestDisplayAreaReconciliation(t *testing.T) {
	l := Listing{TotalArea: 0, UsefulArea: 0, BuiltArea: 90}
	if got := l.DisplayArea(); got != 90 {
		t.Errorf("DisplayArea = %v, want built area fallback", got)
	}
	l = Listing{TotalArea: 120, UsefulArea: 90}
	if got := l.DisplayArea(); got != 120 {
		t.Errorf("DisplayArea = %v, want total area first", got)
	}
}

func TestListingsGridRendersPlaceholdersWhenEmpty(t *testing.T) {
	cmp := ListingsGrid(SectionContext{Section: catalog.Section{Type: catalog.SectionListings}})
	var b strings.Builder
	if err := cmp.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "placeholder") {
		t.Errorf("empty grid should render placeholder cards, got %q", out)
	}
	if !strings.Contains(out, PricePlaceholder) {
		t.Errorf("placeholder cards should carry the inquire price, got %q", out)
	}
}

func TestListingsGridSoldNeverRendered(t *testing.T) {
	cmp := ListingsGrid(SectionContext{
		Section:  catalog.Section{Type: catalog.SectionListings},
		Listings: []Listing{{ID: "s1", Title: "Vendida", Sold: true}, {ID: "u1", Title: "Disponível"}},
	})
	var b strings.Builder
	if err := cmp.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "Vendida") {
		t.Error("sold listing rendered in grid")
	}
	if !strings.Contains(out, "Disponível") {
		t.Error("unsold listing missing from grid")
	}
}
