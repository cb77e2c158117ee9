package analytics

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSummary(t *testing.T) {
	s := setupTestStore(t)

	views := []struct{ tenant, path, ip string }{
		{"acme", "/", "10.0.0.1"},
		{"acme", "/", "10.0.0.2"},
		{"acme", "/imovel/1/", "10.0.0.1"},
		{"other", "/", "10.0.0.3"},
	}
	for _, v := range views {
		if err := s.Record(v.tenant, v.path, v.ip); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	sum, err := s.TenantSummary("acme", 30)
	if err != nil {
		t.Fatalf("TenantSummary failed: %v", err)
	}
	if sum.Views != 3 {
		t.Errorf("Views = %d, want 3", sum.Views)
	}
	if sum.Visitors != 2 {
		t.Errorf("Visitors = %d, want 2", sum.Visitors)
	}
	if len(sum.TopPaths) != 2 || sum.TopPaths[0].Path != "/" || sum.TopPaths[0].Views != 2 {
		t.Errorf("TopPaths = %+v", sum.TopPaths)
	}
}

func TestSummaryEmptyTenant(t *testing.T) {
	s := setupTestStore(t)
	sum, err := s.TenantSummary("nobody", 30)
	if err != nil {
		t.Fatalf("TenantSummary failed: %v", err)
	}
	if sum.Views != 0 || sum.Visitors != 0 || len(sum.TopPaths) != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	v, err := s.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if v != "" {
		t.Errorf("unset key should return empty, got %q", v)
	}

	if err := s.SetSetting("hash_salt", "abc123"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatal(err)
	}
	if v != "abc123" {
		t.Errorf("GetSetting = %q", v)
	}
}

func TestHashVisitorStableAndDistinct(t *testing.T) {
	a := HashVisitor("10.0.0.1")
	b := HashVisitor("10.0.0.1")
	c := HashVisitor("10.0.0.2")
	if a != b {
		t.Error("same IP must hash to the same value")
	}
	if a == c {
		t.Error("different IPs must hash to different values")
	}
	if a == "10.0.0.1" || len(a) != 64 {
		t.Errorf("hash should be a sha256 hex digest, got %q", a)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Record("acme", "/", "10.0.0.1"); err != nil {
		t.Fatal(err)
	}
	n, err := s.DeleteOlderThan(1)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh view deleted by retention: n = %d", n)
	}
	sum, err := s.TenantSummary("acme", 30)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Views != 1 {
		t.Errorf("Views = %d after no-op cleanup, want 1", sum.Views)
	}
}
