package sitengine

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/imobkit/sitengine/site"
)

// Store wraps a SQLite database and provides tenant-scoped CRUD for
// listings and site configurations.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS listings (
    id TEXT PRIMARY KEY,
    tenant TEXT NOT NULL,
    title TEXT NOT NULL,
    street TEXT NOT NULL DEFAULT '',
    neighborhood TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    price REAL NOT NULL DEFAULT 0,
    bedrooms INTEGER NOT NULL DEFAULT 0,
    bathrooms INTEGER NOT NULL DEFAULT 0,
    parking INTEGER NOT NULL DEFAULT 0,
    total_area REAL NOT NULL DEFAULT 0,
    useful_area REAL NOT NULL DEFAULT 0,
    built_area REAL NOT NULL DEFAULT 0,
    photos TEXT NOT NULL DEFAULT '',
    sold INTEGER NOT NULL DEFAULT 0,
    featured INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_listings_tenant ON listings(tenant);

CREATE TABLE IF NOT EXISTS site_configs (
    tenant TEXT PRIMARY KEY,
    company_name TEXT NOT NULL DEFAULT '',
    logo TEXT NOT NULL DEFAULT '',
    primary_color TEXT NOT NULL DEFAULT '',
    secondary_color TEXT NOT NULL DEFAULT '',
    accent_color TEXT NOT NULL DEFAULT '',
    background_color TEXT NOT NULL DEFAULT '',
    contact_number TEXT NOT NULL DEFAULT '',
    hero_title TEXT NOT NULL DEFAULT '',
    hero_text TEXT NOT NULL DEFAULT '',
    about_text TEXT NOT NULL DEFAULT '',
    contact_text TEXT NOT NULL DEFAULT '',
    footer_text TEXT NOT NULL DEFAULT '',
    footer_legal TEXT NOT NULL DEFAULT '',
    instagram TEXT NOT NULL DEFAULT '',
    facebook TEXT NOT NULL DEFAULT '',
    template_id TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

const listingColumns = `id, tenant, title, street, neighborhood, city, price,
	bedrooms, bathrooms, parking, total_area, useful_area, built_area,
	photos, sold, featured, status, created_at`

func scanListing(row interface{ Scan(...any) error }) (site.Listing, error) {
	var l site.Listing
	var photos string
	var sold, featured int
	err := row.Scan(&l.ID, &l.Tenant, &l.Title, &l.Street, &l.Neighborhood,
		&l.City, &l.Price, &l.Bedrooms, &l.Bathrooms, &l.Parking,
		&l.TotalArea, &l.UsefulArea, &l.BuiltArea, &photos, &sold,
		&featured, &l.Status, &l.CreatedAt)
	if err != nil {
		return site.Listing{}, err
	}
	l.Photos = SplitList(photos)
	l.Sold = sold == 1
	l.Featured = featured == 1
	return l, nil
}

// ListListings returns all listings for a tenant, newest first.
func (s *Store) ListListings(tenant string) ([]site.Listing, error) {
	rows, err := s.db.Query(`SELECT `+listingColumns+` FROM listings WHERE tenant = ? ORDER BY created_at DESC, id`, tenant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []site.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetListing returns one listing by id, scoped to the tenant.
func (s *Store) GetListing(tenant, id string) (site.Listing, error) {
	row := s.db.QueryRow(`SELECT `+listingColumns+` FROM listings WHERE tenant = ? AND id = ?`, tenant, id)
	return scanListing(row)
}

// SaveListing upserts a listing. An empty ID gets a fresh UUID assigned;
// the stored listing is returned.
func (s *Store) SaveListing(l site.Listing) (site.Listing, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	sold, featured := 0, 0
	if l.Sold {
		sold = 1
	}
	if l.Featured {
		featured = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO listings (`+listingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Tenant, l.Title, l.Street, l.Neighborhood, l.City, l.Price,
		l.Bedrooms, l.Bathrooms, l.Parking, l.TotalArea, l.UsefulArea,
		l.BuiltArea, JoinList(l.Photos), sold, featured, l.Status, l.CreatedAt)
	return l, err
}

// DeleteListing removes a listing by id, scoped to the tenant.
func (s *Store) DeleteListing(tenant, id string) error {
	_, err := s.db.Exec(`DELETE FROM listings WHERE tenant = ? AND id = ?`, tenant, id)
	return err
}

// GetSiteConfig returns the persisted site configuration for a tenant.
func (s *Store) GetSiteConfig(tenant string) (site.Config, error) {
	var c site.Config
	c.Tenant = tenant
	err := s.db.QueryRow(`SELECT company_name, logo, primary_color,
		secondary_color, accent_color, background_color, contact_number,
		hero_title, hero_text, about_text, contact_text, footer_text,
		footer_legal, instagram, facebook, template_id
		FROM site_configs WHERE tenant = ?`, tenant).
		Scan(&c.CompanyName, &c.Logo, &c.PrimaryColor, &c.SecondaryColor,
			&c.AccentColor, &c.BackgroundColor, &c.ContactNumber,
			&c.HeroTitle, &c.HeroText, &c.AboutText, &c.ContactText,
			&c.FooterText, &c.FooterLegal, &c.Instagram, &c.Facebook,
			&c.TemplateID)
	if err != nil {
		return site.Config{}, err
	}
	return c, nil
}

// SaveSiteConfig upserts a tenant's site configuration. The derived
// ContactLink field is never persisted; it is recomputed at render time.
func (s *Store) SaveSiteConfig(c site.Config) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO site_configs (tenant,
		company_name, logo, primary_color, secondary_color, accent_color,
		background_color, contact_number, hero_title, hero_text, about_text,
		contact_text, footer_text, footer_legal, instagram, facebook,
		template_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Tenant, c.CompanyName, c.Logo, c.PrimaryColor, c.SecondaryColor,
		c.AccentColor, c.BackgroundColor, c.ContactNumber, c.HeroTitle,
		c.HeroText, c.AboutText, c.ContactText, c.FooterText, c.FooterLegal,
		c.Instagram, c.Facebook, c.TemplateID)
	return err
}

// JoinList stores a string slice as a comma-delimited value with sentinel
// commas (e.g. ",a,b,"). Empty entries are dropped.
func JoinList(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	trimmed := FilterEmpty(vals)
	if len(trimmed) == 0 {
		return ""
	}
	return "," + strings.Join(trimmed, ",") + ","
}

// SplitList parses a comma-delimited value (e.g. ",a,b,") into a slice.
func SplitList(v string) []string {
	v = strings.Trim(v, ",")
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
