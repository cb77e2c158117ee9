// Package catalog loads site template manifests and static assets from a
// template asset host (HTTP) or a local fs.FS.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// ManifestError reports a template manifest that could not be fetched or
// decoded. Rendering cannot proceed without a manifest, so callers must
// treat this as fatal for the requested template.
type ManifestError struct {
	ID  string
	Err error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("catalog: template %q: %v", e.ID, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// AssetError reports a static template asset that could not be fetched.
// Assets are optional; the caller decides whether to degrade.
type AssetError struct {
	ID   string
	Kind AssetKind
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("catalog: asset %s/%s: %v", e.ID, e.Kind, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Source fetches raw catalog files by relative path, e.g. "index.json" or
// "modern/template.json".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Catalog resolves template definitions and assets from a Source.
type Catalog struct {
	src Source
}

// New creates a Catalog over the given source.
func New(src Source) *Catalog {
	return &Catalog{src: src}
}

// NewHTTP creates a Catalog that fetches from base under the conventional
// /assets/site-templates/ path scheme. A request timeout is always set so a
// hung asset host cannot hang a render.
func NewHTTP(base string, timeout time.Duration) *Catalog {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return New(&httpSource{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: timeout},
	})
}

// NewFS creates a Catalog over a local or embedded filesystem rooted at the
// template directory (the directory containing index.json).
func NewFS(fsys fs.FS) *Catalog {
	return New(fsSource{fsys: fsys})
}

// List returns the template index. Template indexing is purely additive, so
// any failure is logged and an empty slice returned; List never errors.
func (c *Catalog) List(ctx context.Context) []Entry {
	raw, err := c.src.Fetch(ctx, "index.json")
	if err != nil {
		log.Printf("catalog: list templates: %v", err)
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("catalog: decode template index: %v", err)
		return nil
	}
	return entries
}

// Load fetches and decodes the manifest for one template.
func (c *Catalog) Load(ctx context.Context, id string) (*Definition, error) {
	raw, err := c.src.Fetch(ctx, path.Join(id, "template.json"))
	if err != nil {
		return nil, &ManifestError{ID: id, Err: err}
	}
	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, &ManifestError{ID: id, Err: fmt.Errorf("decode manifest: %w", err)}
	}
	if def.ID == "" {
		def.ID = id
	}
	return &def, nil
}

// Asset fetches a static template asset (base.html or base.css) as text.
func (c *Catalog) Asset(ctx context.Context, id string, kind AssetKind) (string, error) {
	raw, err := c.src.Fetch(ctx, path.Join(id, string(kind)))
	if err != nil {
		return "", &AssetError{ID: id, Kind: kind, Err: err}
	}
	return string(raw), nil
}

type httpSource struct {
	base   string
	client *http.Client
}

func (s *httpSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.base + "/assets/site-templates/" + url.PathEscape(name)
	// PathEscape would mangle the slash between id and file.
	u = strings.ReplaceAll(u, "%2F", "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

type fsSource struct {
	fsys fs.FS
}

func (s fsSource) Fetch(_ context.Context, name string) ([]byte, error) {
	return fs.ReadFile(s.fsys, name)
}
