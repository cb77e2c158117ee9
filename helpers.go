package sitengine

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/imobkit/sitengine/site"
)

// Slugify converts a name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AgencyJsonLD returns a Schema.org RealEstateAgent JSON-LD block for a
// tenant site.
func AgencyJsonLD(baseURL string, cfg site.Config) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "RealEstateAgent",
		"name":     cfg.CompanyName,
		"url":      BuildURL(baseURL),
	}
	if cfg.ContactNumber != "" {
		data["telephone"] = site.NormalizeContact(cfg.ContactNumber)
	}
	var sameAs []string
	if cfg.Instagram != "" {
		sameAs = append(sameAs, cfg.Instagram)
	}
	if cfg.Facebook != "" {
		sameAs = append(sameAs, cfg.Facebook)
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
