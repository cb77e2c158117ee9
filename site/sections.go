package site

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/imobkit/sitengine/markdown"
)

// Section-local config keys are open maps in the manifest; these helpers
// read them with literal defaults so a missing field is never an error.

func cfgString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func cfgInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		// JSON numbers decode as float64.
		return int(v)
	}
	return def
}

func cfgBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return fn(w)
	})
}

func esc(s string) string { return html.EscapeString(s) }

// Header renders the top bar: logo or company name plus the contact link.
func Header(sc SectionContext) templ.Component {
	name := cfgString(sc.Section.Config, "title", sc.Config.CompanyName)
	if name == "" {
		name = "Imobiliária"
	}
	return component(func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="site-header">`); err != nil {
			return err
		}
		if sc.Config.Logo != "" {
			fmt.Fprintf(w, `<img src="%s" alt="%s" class="site-logo">`, esc(sc.Config.Logo), esc(name))
		} else {
			fmt.Fprintf(w, `<span class="site-name">%s</span>`, esc(name))
		}
		fmt.Fprintf(w, `<a class="contact-link" href="%s">%s</a>`, esc(sc.Config.ContactLink), esc(sc.Config.ContactNumber))
		_, err := fmt.Fprint(w, `</header>`)
		return err
	})
}

// Hero renders the lead banner. Section-local title and subtitle win over
// the tenant-wide hero fields.
func Hero(sc SectionContext) templ.Component {
	title := cfgString(sc.Section.Config, "title", sc.Config.HeroTitle)
	if title == "" {
		title = "Encontre seu próximo imóvel"
	}
	subtitle := cfgString(sc.Section.Config, "subtitle", sc.Config.HeroText)
	image := cfgString(sc.Section.Config, "image", "")
	return component(func(w io.Writer) error {
		style := ""
		if image != "" {
			style = fmt.Sprintf(` style="background-image:url('%s')"`, esc(image))
		}
		fmt.Fprintf(w, `<section class="hero"%s><h1>%s</h1>`, style, esc(title))
		if subtitle != "" {
			fmt.Fprintf(w, `<p>%s</p>`, esc(subtitle))
		}
		fmt.Fprintf(w, `<a class="hero-cta" href="%s">%s</a>`, esc(sc.Config.ContactLink), esc(cfgString(sc.Section.Config, "buttonLabel", "Fale conosco")))
		_, err := fmt.Fprint(w, `</section>`)
		return err
	})
}

// HeroOverlay is the darkened full-image hero variant.
func HeroOverlay(sc SectionContext) templ.Component {
	inner := Hero(sc)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprint(w, `<div class="hero-overlay">`); err != nil {
			return err
		}
		if err := inner.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, `</div>`)
		return err
	})
}

// Features renders the about block plus a compact stats strip derived from
// the listing slice. The about body accepts the constrained Markdown subset.
func Features(sc SectionContext) templ.Component {
	title := cfgString(sc.Section.Config, "title", "Sobre nós")
	body := cfgString(sc.Section.Config, "text", sc.Config.AboutText)
	available := 0
	for _, l := range sc.Listings {
		if !l.Sold {
			available++
		}
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<section class="features"><h2>%s</h2>`, esc(title))
		if body != "" {
			fmt.Fprint(w, `<div class="features-body">`)
			if err := markdown.Markdown(body).Render(ctx, w); err != nil {
				return err
			}
			fmt.Fprint(w, `</div>`)
		}
		fmt.Fprintf(w, `<p class="features-count">%d imóveis disponíveis</p>`, available)
		_, err := fmt.Fprint(w, `</section>`)
		return err
	})
}

// CallToAction renders the contact banner.
func CallToAction(sc SectionContext) templ.Component {
	title := cfgString(sc.Section.Config, "title", "Vamos conversar?")
	text := cfgString(sc.Section.Config, "text", sc.Config.ContactText)
	label := cfgString(sc.Section.Config, "buttonLabel", "Chamar no WhatsApp")
	return component(func(w io.Writer) error {
		fmt.Fprintf(w, `<section class="cta"><h2>%s</h2>`, esc(title))
		if text != "" {
			fmt.Fprintf(w, `<p>%s</p>`, esc(text))
		}
		fmt.Fprintf(w, `<a class="cta-button" href="%s">%s</a></section>`, esc(sc.Config.ContactLink), esc(label))
		return nil
	})
}

// Footer renders company info and social links.
func Footer(sc SectionContext) templ.Component {
	text := cfgString(sc.Section.Config, "text", sc.Config.FooterText)
	if text == "" {
		text = sc.Config.CompanyName
	}
	return component(func(w io.Writer) error {
		fmt.Fprintf(w, `<footer class="site-footer"><p>%s</p>`, esc(text))
		writeSocial(w, sc.Config)
		if sc.Config.FooterLegal != "" {
			fmt.Fprintf(w, `<small>%s</small>`, esc(sc.Config.FooterLegal))
		}
		_, err := fmt.Fprint(w, `</footer>`)
		return err
	})
}

// FooterLuxo is the dark serif footer variant used by the luxury templates.
func FooterLuxo(sc SectionContext) templ.Component {
	inner := Footer(sc)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprint(w, `<div class="footer-luxo">`); err != nil {
			return err
		}
		if err := inner.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, `</div>`)
		return err
	})
}

func writeSocial(w io.Writer, cfg Config) {
	if cfg.Instagram == "" && cfg.Facebook == "" {
		return
	}
	fmt.Fprint(w, `<nav class="social">`)
	if cfg.Instagram != "" {
		fmt.Fprintf(w, `<a href="%s">Instagram</a>`, esc(cfg.Instagram))
	}
	if cfg.Facebook != "" {
		fmt.Fprintf(w, `<a href="%s">Facebook</a>`, esc(cfg.Facebook))
	}
	fmt.Fprint(w, `</nav>`)
}
