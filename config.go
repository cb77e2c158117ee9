package sitengine

import (
	"io/fs"
	"time"

	"github.com/imobkit/sitengine/catalog"
	"github.com/imobkit/sitengine/site"
)

// Config holds all configuration for a sitengine deployment.
type Config struct {
	Name string // Deployment name used in log lines (default "sitengine")
	URL  string // Canonical base URL (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/sitengine.db")

	// Template catalog source. TemplateFS wins when set; otherwise
	// TemplateBaseURL is fetched over HTTP with CatalogTimeout.
	TemplateBaseURL string
	TemplateFS      fs.FS
	CatalogTimeout  time.Duration // Asset host request timeout (default 10s)

	// DefaultTenant serves requests whose Host carries no tenant subdomain.
	DefaultTenant string // (default "demo")

	EditorToken   string // Required: shared token for the editor surface
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	AnalyticsEnabled      bool   // Enable per-tenant page-view analytics
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	ListingCacheTTL time.Duration // Listing cache TTL (default 5min)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "sitengine"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/sitengine.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.DefaultTenant == "" {
		c.DefaultTenant = "demo"
	}
	if c.CatalogTimeout == 0 {
		c.CatalogTimeout = 10 * time.Second
	}
	if c.ListingCacheTTL == 0 {
		c.ListingCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for tenant static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCatalog injects a preconstructed template catalog, bypassing the
// TemplateFS/TemplateBaseURL configuration.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}

// WithRegistry replaces the built-in section renderer registry, letting a
// deployment register custom section variants before the server starts.
func WithRegistry(fn func(r *site.Registry)) Option {
	return func(a *App) {
		fn(a.Registry)
	}
}
