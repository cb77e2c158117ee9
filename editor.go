package sitengine

import (
	"context"
	"crypto/subtle"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/imobkit/sitengine/catalog"
	"github.com/imobkit/sitengine/site"
)

// The editor surface is a thin gate: real authentication lives with the
// external identity provider, the engine only exchanges a deployment-wide
// editor token for a tenant-bound session cookie.

func (a *App) handleEditor(c echo.Context) error {
	tenant, ok := IsEditor(c)
	if !ok {
		return Render(c, editorLogin(false, CsrfToken(c)))
	}
	cfg, err := a.Store.GetSiteConfig(tenant)
	if err != nil && err != ErrNotFound {
		return err
	}
	cfg.Tenant = tenant
	entries := a.Catalog.List(c.Request().Context())
	return Render(c, editorDashboard(cfg, entries, CsrfToken(c)))
}

func (a *App) handleEditorLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.tokenLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	tenant := strings.TrimSpace(c.FormValue("tenant"))
	token := c.FormValue("token")
	if tenant == "" || subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.EditorToken)) != 1 {
		a.tokenLimiter.Record(ip)
		return Render(c, editorLogin(true, CsrfToken(c)))
	}
	if err := setEditorSession(c, tenant); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/editor/")
}

func handleEditorLogout(c echo.Context) error {
	if err := clearEditorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/editor/")
}

// handleEditorTemplates returns the template index as JSON for the picker.
func (a *App) handleEditorTemplates(c echo.Context) error {
	if _, ok := IsEditor(c); !ok {
		return c.Redirect(http.StatusSeeOther, "/editor/")
	}
	return c.JSON(http.StatusOK, a.Catalog.List(c.Request().Context()))
}

// handleEditorTemplate switches the tenant's template. The load is guarded
// by a preview-hub generation so a slow manifest fetch that completes after
// a newer switch is discarded instead of overwriting newer state.
func (a *App) handleEditorTemplate(c echo.Context) error {
	tenant, ok := IsEditor(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/editor/")
	}
	id := strings.TrimSpace(c.FormValue("template_id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "template_id is required")
	}
	gen := a.Preview.BeginTemplateLoad()
	def, err := a.Catalog.Load(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("load template: %v", err))
	}
	if !a.Preview.CompleteTemplateLoad(gen, def) {
		// A newer switch won; nothing to persist for this one.
		return c.Redirect(http.StatusSeeOther, "/editor/")
	}
	cfg, err := a.Store.GetSiteConfig(tenant)
	if err != nil && err != ErrNotFound {
		return err
	}
	cfg.Tenant = tenant
	cfg.TemplateID = id
	if err := a.Store.SaveSiteConfig(cfg); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/editor/")
}

// handleEditorConfig persists the tenant site configuration and pushes it
// into the preview hub. The hub itself stays memory-only; the store here is
// the "external caller" that owns persistence.
func (a *App) handleEditorConfig(c echo.Context) error {
	tenant, ok := IsEditor(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/editor/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	existing, err := a.Store.GetSiteConfig(tenant)
	if err != nil && err != ErrNotFound {
		return err
	}
	cfg := site.Config{
		Tenant:          tenant,
		CompanyName:     strings.TrimSpace(c.FormValue("company_name")),
		Logo:            existing.Logo,
		PrimaryColor:    strings.TrimSpace(c.FormValue("primary_color")),
		SecondaryColor:  strings.TrimSpace(c.FormValue("secondary_color")),
		AccentColor:     strings.TrimSpace(c.FormValue("accent_color")),
		BackgroundColor: strings.TrimSpace(c.FormValue("background_color")),
		ContactNumber:   strings.TrimSpace(c.FormValue("contact_number")),
		HeroTitle:       strings.TrimSpace(c.FormValue("hero_title")),
		HeroText:        c.FormValue("hero_text"),
		AboutText:       c.FormValue("about_text"),
		ContactText:     c.FormValue("contact_text"),
		FooterText:      c.FormValue("footer_text"),
		FooterLegal:     c.FormValue("footer_legal"),
		Instagram:       strings.TrimSpace(c.FormValue("instagram")),
		Facebook:        strings.TrimSpace(c.FormValue("facebook")),
		TemplateID:      existing.TemplateID,
	}
	if err := a.Store.SaveSiteConfig(cfg); err != nil {
		return err
	}
	a.Preview.SetConfig(&cfg)
	return c.Redirect(http.StatusSeeOther, "/editor/")
}

// handleEditorPreview renders the live preview from the hub's combined
// state, falling back to persisted values for whichever side has not been
// pushed yet. Either side may be absent during startup by contract.
func (a *App) handleEditorPreview(c echo.Context) error {
	tenant, ok := IsEditor(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/editor/")
	}
	state := a.Preview.State()

	cfg := site.Config{Tenant: tenant}
	if state.Config != nil {
		cfg = *state.Config
	} else if stored, err := a.Store.GetSiteConfig(tenant); err == nil {
		cfg = stored
	}

	def := state.Template
	if def == nil {
		id := cfg.TemplateID
		if id == "" {
			id = "classic"
		}
		loaded, err := a.Catalog.Load(c.Request().Context(), id)
		if err != nil {
			return err
		}
		def = loaded
	}

	listings, err := a.Cache.ListListings(tenant)
	if err != nil {
		log.Printf("sitengine: preview listings for %s unavailable: %v", tenant, err)
		listings = nil
	}
	page := a.Renderer.Render(def, cfg, listings)
	title := cfg.CompanyName
	if title == "" {
		title = tenant
	}
	return Render(c, page.Component(title, a.templateCSS(c, def.ID)))
}

// handlePreviewState reports the hub revision so the editor's preview frame
// can poll for changes without re-rendering the page server-side each tick.
func (a *App) handlePreviewState(c echo.Context) error {
	if _, ok := IsEditor(c); !ok {
		return echo.NewHTTPError(http.StatusForbidden, "editor session required")
	}
	return c.JSON(http.StatusOK, map[string]uint64{"revision": a.Preview.State().Revision})
}

// handleAnalyticsSummary returns the tenant's traffic summary as JSON for
// the editor dashboard.
func (a *App) handleAnalyticsSummary(c echo.Context) error {
	tenant, ok := IsEditor(c)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "editor session required")
	}
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	summary, err := a.analyticsStore.TenantSummary(tenant, days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// --- Editor views ---

func editorLogin(showError bool, csrf string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		fmt.Fprint(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>Editor</title></head><body><main class="editor-login"><h1>Editor do site</h1>`)
		if showError {
			fmt.Fprint(w, `<p class="error">Token inválido.</p>`)
		}
		fmt.Fprintf(w, `<form method="post" action="/editor/login/"><input type="hidden" name="_csrf" value="%s"><label>Imobiliária <input name="tenant" required></label><label>Token <input type="password" name="token" required></label><button type="submit">Entrar</button></form>`, html.EscapeString(csrf))
		_, err := fmt.Fprint(w, `</main></body></html>`)
		return err
	})
}

func editorDashboard(cfg site.Config, templates []catalog.Entry, csrf string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		e := html.EscapeString
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>Editor · %s</title><script src="/public/preview.js" defer></script></head><body><main class="editor">`, e(cfg.Tenant))
		fmt.Fprintf(w, `<h1>%s</h1>`, e(cfg.Tenant))

		fmt.Fprintf(w, `<form method="post" action="/editor/template/"><input type="hidden" name="_csrf" value="%s"><label>Template <select name="template_id">`, e(csrf))
		for _, t := range templates {
			selected := ""
			if t.ID == cfg.TemplateID {
				selected = " selected"
			}
			fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, e(t.ID), selected, e(t.Name))
		}
		fmt.Fprint(w, `</select></label><button type="submit">Aplicar</button></form>`)

		fmt.Fprintf(w, `<form method="post" action="/editor/config/"><input type="hidden" name="_csrf" value="%s">`, e(csrf))
		text := func(name, label, value string) {
			fmt.Fprintf(w, `<label>%s <input name="%s" value="%s"></label>`, e(label), name, e(value))
		}
		area := func(name, label, value string) {
			fmt.Fprintf(w, `<label>%s <textarea name="%s">%s</textarea></label>`, e(label), name, e(value))
		}
		text("company_name", "Nome", cfg.CompanyName)
		text("primary_color", "Cor primária", cfg.PrimaryColor)
		text("secondary_color", "Cor secundária", cfg.SecondaryColor)
		text("accent_color", "Cor de destaque", cfg.AccentColor)
		text("background_color", "Cor de fundo", cfg.BackgroundColor)
		text("contact_number", "WhatsApp", cfg.ContactNumber)
		text("hero_title", "Título do banner", cfg.HeroTitle)
		area("hero_text", "Texto do banner", cfg.HeroText)
		area("about_text", "Sobre", cfg.AboutText)
		area("contact_text", "Contato", cfg.ContactText)
		text("footer_text", "Rodapé", cfg.FooterText)
		text("footer_legal", "Rodapé legal", cfg.FooterLegal)
		text("instagram", "Instagram", cfg.Instagram)
		text("facebook", "Facebook", cfg.Facebook)
		fmt.Fprint(w, `<button type="submit">Salvar</button></form>`)

		fmt.Fprintf(w, `<form method="post" action="/editor/logo/" enctype="multipart/form-data"><input type="hidden" name="_csrf" value="%s"><label>Logo <input type="file" name="logo" accept="image/*"></label><button type="submit">Enviar</button></form>`, e(csrf))

		fmt.Fprint(w, `<iframe id="preview" src="/editor/preview/" title="Pré-visualização"></iframe>`)
		_, err := fmt.Fprint(w, `</main></body></html>`)
		return err
	})
}
