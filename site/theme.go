package site

import (
	"fmt"
	"strings"

	"github.com/imobkit/sitengine/catalog"
)

// Theme variable names written by a render pass. Section renderers read
// colors and fonts exclusively through these variables.
const (
	VarPrimary    = "--primary"
	VarSecondary  = "--secondary"
	VarAccent     = "--accent"
	VarBackground = "--background"
	VarFontTitle  = "--font-title"
	VarFontBody   = "--font-body"
)

const defaultBackground = "#ffffff"

// ThemeSink receives the resolved theme variables, once per render pass.
// The rendering environment decides what the named-variable surface is;
// the built-in CSSVarSink emits a :root custom-property block.
type ThemeSink interface {
	SetVar(name, value string)
}

// Resolved is the effective theme after tenant overrides are applied.
type Resolved struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
	FontTitle  string
	FontBody   string
}

// ResolveTheme merges tenant config colors over the template theme. Tenant
// values win; absent values fall back to the template, then down the
// secondary→primary chain so every field always resolves to something.
func ResolveTheme(theme catalog.Theme, cfg Config) Resolved {
	primary := pick(cfg.PrimaryColor, theme.Primary)
	secondary := pick(cfg.SecondaryColor, theme.Secondary, primary)
	accent := pick(cfg.AccentColor, theme.Accent, secondary)
	background := pick(cfg.BackgroundColor, theme.Background, defaultBackground)
	return Resolved{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Background: background,
		FontTitle:  pick(theme.FontTitle, "Georgia, serif"),
		FontBody:   pick(theme.FontBody, "Helvetica, Arial, sans-serif"),
	}
}

// Publish writes every resolved variable to the sink.
func (r Resolved) Publish(sink ThemeSink) {
	sink.SetVar(VarPrimary, r.Primary)
	sink.SetVar(VarSecondary, r.Secondary)
	sink.SetVar(VarAccent, r.Accent)
	sink.SetVar(VarBackground, r.Background)
	sink.SetVar(VarFontTitle, r.FontTitle)
	sink.SetVar(VarFontBody, r.FontBody)
}

func pick(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// CSSVarSink collects theme variables and renders them as a :root CSS
// custom-property block, the conventional sink for HTML output.
type CSSVarSink struct {
	names  []string
	values map[string]string
}

// NewCSSVarSink returns an empty sink.
func NewCSSVarSink() *CSSVarSink {
	return &CSSVarSink{values: make(map[string]string)}
}

// SetVar records a variable, preserving first-set order and overwriting a
// repeated name in place.
func (s *CSSVarSink) SetVar(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Var returns the current value for name, or empty if unset.
func (s *CSSVarSink) Var(name string) string {
	return s.values[name]
}

// CSS renders the collected variables as a :root block.
func (s *CSSVarSink) CSS() string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, n := range s.names {
		fmt.Fprintf(&b, "%s:%s;", n, s.values[n])
	}
	b.WriteString("}")
	return b.String()
}
