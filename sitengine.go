// Package sitengine is a multi-tenant public-site engine for real-estate
// agencies, built with Go, Echo, and templ. It loads visual template
// manifests from a catalog, merges tenant site configuration over the
// template theme, and renders listing-backed section pages, with a live
// preview channel for the site editor.
//
// Deployments embed the engine via New and Start; section renderers are
// replaceable through the site.Registry, which is the inversion-of-control
// point for custom visual variants.
package sitengine

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imobkit/sitengine/analytics"
	"github.com/imobkit/sitengine/catalog"
	"github.com/imobkit/sitengine/site"
)

// App is the central sitengine application. It wires together the store,
// caches, catalog, preview hub, section registry, and HTTP surface.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Store    *Store
	Cache    *ListingCache
	Catalog  *catalog.Catalog
	Registry *site.Registry
	Renderer *site.Renderer
	Preview  *site.PreviewHub

	tokenLimiter   *AttemptLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a sitengine App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Registry:  site.DefaultRegistry(),
		Preview:   site.NewPreviewHub(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Renderer = site.NewRenderer(a.Registry)
	return a
}

// Start initializes the database, caches, catalog, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if a.Config.EditorToken == "" {
		return fmt.Errorf("sitengine: EditorToken is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("sitengine: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("sitengine: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewListingCache(a.Store, a.Config.ListingCacheTTL)
	a.tokenLimiter = NewAttemptLimiter(5, time.Minute)

	if a.Catalog == nil {
		switch {
		case a.Config.TemplateFS != nil:
			a.Catalog = catalog.NewFS(a.Config.TemplateFS)
		case a.Config.TemplateBaseURL != "":
			a.Catalog = catalog.NewHTTP(a.Config.TemplateBaseURL, a.Config.CatalogTimeout)
		default:
			return fmt.Errorf("sitengine: a template source is required (TemplateFS or TemplateBaseURL)")
		}
	}

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("sitengine: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("sitengine: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets (preview.js) served under /public/, falling
	// through to the deployment's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/preview.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public tenant site.
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleSite)
	e.GET("/imovel/:id/", a.handleListing)

	// Editor surface.
	e.GET("/editor/", a.handleEditor)
	e.POST("/editor/login/", a.handleEditorLogin)
	e.POST("/editor/logout/", handleEditorLogout)
	e.GET("/editor/templates/", a.handleEditorTemplates)
	e.POST("/editor/template/", a.handleEditorTemplate)
	e.POST("/editor/config/", a.handleEditorConfig)
	e.POST("/editor/logo/", a.handleLogoUpload)
	e.GET("/editor/preview/", a.handleEditorPreview)
	e.GET("/editor/preview/state/", a.handlePreviewState)

	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		e.GET("/editor/analytics/", a.handleAnalyticsSummary)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in scaffolded main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("sitengine: required environment variable %s is not set", key)
	}
	return v
}
