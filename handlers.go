package sitengine

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/imobkit/sitengine/catalog"
	"github.com/imobkit/sitengine/site"
)

// tenantFromHost maps the request Host to a tenant slug: the first
// subdomain label wins ("acme.example.com" → "acme"), a bare or unknown
// host falls back to the configured default tenant. A ?tenant= query
// parameter overrides, which keeps local development workable.
func (a *App) tenantFromHost(c echo.Context) string {
	if t := c.QueryParam("tenant"); t != "" {
		return t
	}
	host := c.Request().Host
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")
	if len(labels) >= 3 && labels[0] != "www" {
		return labels[0]
	}
	return a.Config.DefaultTenant
}

// sitePage loads everything one public page render needs. A missing site
// config is a 404 (tenant has no published site); a manifest failure
// propagates because there is no meaningful render without it; a listing
// source failure degrades to an empty set so the page still renders.
func (a *App) sitePage(ctx context.Context, tenant string) (site.Page, site.Config, []site.Listing, error) {
	cfg, err := a.Store.GetSiteConfig(tenant)
	if err != nil {
		if err == ErrNotFound {
			return site.Page{}, site.Config{}, nil, echo.NewHTTPError(http.StatusNotFound, "no site for tenant")
		}
		return site.Page{}, site.Config{}, nil, err
	}
	if cfg.TemplateID == "" {
		cfg.TemplateID = "classic"
	}
	def, err := a.Catalog.Load(ctx, cfg.TemplateID)
	if err != nil {
		return site.Page{}, site.Config{}, nil, err
	}
	listings, err := a.Cache.ListListings(tenant)
	if err != nil {
		log.Printf("sitengine: listings for %s unavailable: %v", tenant, err)
		listings = nil
	}
	return a.Renderer.Render(def, cfg, listings), cfg, listings, nil
}

func (a *App) handleSite(c echo.Context) error {
	tenant := a.tenantFromHost(c)
	page, cfg, _, err := a.sitePage(c.Request().Context(), tenant)
	if err != nil {
		return err
	}
	baseCSS := a.templateCSS(c, cfg.TemplateID)
	a.recordView(tenant, c)
	title := cfg.CompanyName
	if title == "" {
		title = tenant
	}
	jsonLD := `<script type="application/ld+json">` + AgencyJsonLD(a.Config.URL, cfg) + `</script>`
	return Render(c, page.Component(title, baseCSS, jsonLD))
}

func (a *App) handleListing(c echo.Context) error {
	tenant := a.tenantFromHost(c)
	id := c.Param("id")
	listing, err := a.Cache.GetListing(tenant, id)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "listing not found")
		}
		return err
	}
	cfg, err := a.Store.GetSiteConfig(tenant)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "no site for tenant")
		}
		return err
	}
	if cfg.TemplateID == "" {
		cfg.TemplateID = "classic"
	}
	def, err := a.Catalog.Load(c.Request().Context(), cfg.TemplateID)
	if err != nil {
		return err
	}
	a.recordView(tenant, c)
	page := a.Renderer.Render(def, cfg, []site.Listing{listing})
	return Render(c, site.ListingDetail(page.Theme, cfg, listing))
}

// templateCSS fetches the template's optional base stylesheet. Assets are
// optional by contract, so a failure degrades to no extra CSS.
func (a *App) templateCSS(c echo.Context, id string) string {
	css, err := a.Catalog.Asset(c.Request().Context(), id, catalog.AssetCSS)
	if err != nil {
		log.Printf("sitengine: template %s base.css unavailable: %v", id, err)
		return ""
	}
	return css
}

func (a *App) recordView(tenant string, c echo.Context) {
	if a.analyticsStore == nil {
		return
	}
	if err := a.analyticsStore.Record(tenant, c.Request().URL.Path, c.RealIP()); err != nil {
		log.Printf("sitengine: record view: %v", err)
	}
}

// handleRobots generates robots.txt dynamically from the canonical URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /editor/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, site.ErrorPage(http.StatusNotFound, "Página não encontrada"))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, site.ErrorPage(code, "Algo deu errado"))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
