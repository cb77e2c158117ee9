package sitengine

import (
	"encoding/xml"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap emits the tenant sitemap: the home page plus one entry per
// unsold listing detail page.
func (a *App) handleSitemap(c echo.Context) error {
	tenant := a.tenantFromHost(c)
	listings, err := a.Cache.ListListings(tenant)
	if err != nil {
		return err
	}
	base := a.Config.URL
	urls := []sitemapURL{{Loc: BuildURL(base)}}
	for _, l := range listings {
		if l.Sold {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "imovel", l.ID),
			LastMod: l.CreatedAt,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return RenderXML(c, "application/xml; charset=utf-8", sitemap)
}
