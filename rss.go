package sitengine

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imobkit/sitengine/site"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// handleFeed emits an RSS feed of the tenant's newest unsold listings so
// portals and saved searches can follow new inventory.
func (a *App) handleFeed(c echo.Context) error {
	tenant := a.tenantFromHost(c)
	listings, err := a.Cache.ListListings(tenant)
	if err != nil {
		return err
	}
	cfg, err := a.Store.GetSiteConfig(tenant)
	if err != nil && err != ErrNotFound {
		return err
	}

	base := a.Config.URL
	items := make([]rssItem, 0, len(listings))
	for _, l := range listings {
		if l.Sold {
			continue
		}
		pubDate := ""
		if t, err := time.Parse("2006-01-02", l.CreatedAt); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		listingURL := BuildURL(base, "imovel", l.ID)
		items = append(items, rssItem{
			Title:       l.Title,
			Link:        listingURL,
			Description: site.FormatPrice(l.Price),
			PubDate:     pubDate,
			GUID:        listingURL,
		})
	}
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.CompanyName,
			Link:        base,
			Description: "Novos imóveis",
			Items:       items,
		},
	}
	return RenderXML(c, "application/rss+xml; charset=utf-8", feed)
}
