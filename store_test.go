package sitengine

import (
	"path/filepath"
	"testing"

	"github.com/imobkit/sitengine/site"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetListing(t *testing.T) {
	s := setupTestStore(t)

	saved, err := s.SaveListing(site.Listing{
		Tenant:       "acme",
		Title:        "Casa no Centro",
		Street:       "Rua das Flores, 100",
		Neighborhood: "Centro",
		City:         "Curitiba",
		Price:        450000,
		Bedrooms:     3,
		Bathrooms:    2,
		TotalArea:    120,
		Photos:       []string{"/public/uploads/a.jpg", "/public/uploads/b.jpg"},
		Featured:     true,
		Status:       "active",
		CreatedAt:    "2024-03-01",
	})
	if err != nil {
		t.Fatalf("SaveListing failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveListing should assign an ID")
	}

	got, err := s.GetListing("acme", saved.ID)
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if got.Title != "Casa no Centro" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Price != 450000 {
		t.Errorf("Price = %v", got.Price)
	}
	if len(got.Photos) != 2 || got.Photos[0] != "/public/uploads/a.jpg" {
		t.Errorf("Photos = %v", got.Photos)
	}
	if !got.Featured || got.Sold {
		t.Errorf("flags: featured=%v sold=%v", got.Featured, got.Sold)
	}
}

func TestListListingsTenantScoped(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.SaveListing(site.Listing{Tenant: "acme", Title: "A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveListing(site.Listing{Tenant: "acme", Title: "B"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveListing(site.Listing{Tenant: "other", Title: "C"}); err != nil {
		t.Fatal(err)
	}

	listings, err := s.ListListings("acme")
	if err != nil {
		t.Fatalf("ListListings failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2 for tenant acme", len(listings))
	}
	for _, l := range listings {
		if l.Tenant != "acme" {
			t.Errorf("listing %s leaked from tenant %s", l.ID, l.Tenant)
		}
	}
}

func TestGetListingWrongTenant(t *testing.T) {
	s := setupTestStore(t)
	saved, err := s.SaveListing(site.Listing{Tenant: "acme", Title: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetListing("other", saved.ID); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound for cross-tenant access", err)
	}
}

func TestDeleteListing(t *testing.T) {
	s := setupTestStore(t)
	saved, err := s.SaveListing(site.Listing{Tenant: "acme", Title: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteListing("acme", saved.ID); err != nil {
		t.Fatalf("DeleteListing failed: %v", err)
	}
	if _, err := s.GetListing("acme", saved.ID); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestSiteConfigRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	cfg := site.Config{
		Tenant:        "acme",
		CompanyName:   "Acme Imóveis",
		PrimaryColor:  "#1f3a5f",
		ContactNumber: "(11) 98765-4321",
		HeroTitle:     "Bem-vindo",
		TemplateID:    "classic",
	}
	if err := s.SaveSiteConfig(cfg); err != nil {
		t.Fatalf("SaveSiteConfig failed: %v", err)
	}

	got, err := s.GetSiteConfig("acme")
	if err != nil {
		t.Fatalf("GetSiteConfig failed: %v", err)
	}
	if got.CompanyName != cfg.CompanyName || got.PrimaryColor != cfg.PrimaryColor || got.TemplateID != cfg.TemplateID {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.ContactLink != "" {
		t.Error("ContactLink must never be persisted; it is derived at render time")
	}

	// Upsert overwrites.
	cfg.CompanyName = "Acme Imóveis Ltda"
	if err := s.SaveSiteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetSiteConfig("acme")
	if err != nil {
		t.Fatal(err)
	}
	if got.CompanyName != "Acme Imóveis Ltda" {
		t.Errorf("CompanyName = %q after upsert", got.CompanyName)
	}
}

func TestGetSiteConfigMissing(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.GetSiteConfig("nobody"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestJoinSplitList(t *testing.T) {
	joined := JoinList([]string{"a", " b ", "", "c"})
	if joined != ",a,b,c," {
		t.Errorf("JoinList = %q", joined)
	}
	parts := SplitList(joined)
	if len(parts) != 3 || parts[0] != "a" || parts[1] != "b" || parts[2] != "c" {
		t.Errorf("SplitList = %v", parts)
	}
	if JoinList(nil) != "" {
		t.Error("JoinList(nil) should be empty")
	}
	if SplitList("") != nil {
		t.Error("SplitList(\"\") should be nil")
	}
}
