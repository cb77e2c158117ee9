package site

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ListingDetail renders a full listing page using the resolved theme. The
// detail page shares the theme pipeline with section renders: colors and
// fonts arrive through the same variable names.
func ListingDetail(theme Resolved, cfg Config, l Listing) templ.Component {
	sink := NewCSSVarSink()
	theme.Publish(sink)
	contact := ContactLink(cfg.ContactNumber)
	return component(func(w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style></head><body>`, esc(l.Title), sink.CSS())
		fmt.Fprintf(w, `<article class="listing-detail"><h1>%s</h1>`, esc(l.Title))
		if loc := joinLocation(l.Neighborhood, l.City); loc != "" {
			fmt.Fprintf(w, `<p class="detail-location">%s</p>`, esc(loc))
		}
		for _, photo := range l.Photos {
			fmt.Fprintf(w, `<img src="%s" alt="%s">`, esc(photo), esc(l.Title))
		}
		fmt.Fprint(w, `<ul class="detail-facts">`)
		if l.Bedrooms > 0 {
			fmt.Fprintf(w, `<li>%d quartos</li>`, l.Bedrooms)
		}
		if l.Bathrooms > 0 {
			fmt.Fprintf(w, `<li>%d banheiros</li>`, l.Bathrooms)
		}
		if l.Parking > 0 {
			fmt.Fprintf(w, `<li>%d vagas</li>`, l.Parking)
		}
		if a := l.DisplayArea(); a > 0 {
			fmt.Fprintf(w, `<li>%.0f m²</li>`, a)
		}
		fmt.Fprintf(w, `</ul><p class="detail-price">%s</p>`, esc(FormatPrice(l.Price)))
		fmt.Fprintf(w, `<a class="cta-button" href="%s">Tenho interesse</a>`, esc(contact))
		_, err := fmt.Fprint(w, `</article></body></html>`)
		return err
	})
}

// ErrorPage renders a minimal themed error page.
func ErrorPage(code int, message string) templ.Component {
	return component(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>%d</title></head><body><main class="error-page"><h1>%d</h1><p>%s</p><a href="/">Voltar ao início</a></main></body></html>`, code, code, esc(message))
		return err
	})
}
