package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	RenderMarkdown(&buf, md)
	return buf.String()
}

func TestParagraphs(t *testing.T) {
	got := render(t, "first line\ncontinued\n\nsecond paragraph")
	want := "<p>first line continued</p><p>second paragraph</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHeadings(t *testing.T) {
	got := render(t, "## Sobre nós\n\n### Nossa história")
	if !strings.Contains(got, "<h3>Sobre nós</h3>") {
		t.Errorf("missing h3 in %q", got)
	}
	if !strings.Contains(got, "<h4>Nossa história</h4>") {
		t.Errorf("missing h4 in %q", got)
	}
}

func TestList(t *testing.T) {
	got := render(t, "- um\n- dois\n\ndepois")
	want := "<ul><li>um</li><li>dois</li></ul><p>depois</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInlineFormatting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold**", "<p><strong>bold</strong></p>"},
		{"*italic*", "<p><em>italic</em></p>"},
		{"[site](https://example.com)", `<p><a href="https://example.com" rel="noopener">site</a></p>`},
		{"[bad](javascript:alert(1))", "<p>[bad](javascript:alert(1))</p>"},
	}
	for _, tt := range tests {
		if got := render(t, tt.in); got != tt.want {
			t.Errorf("render(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapesHTML(t *testing.T) {
	got := render(t, `<script>alert("x")</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw HTML leaked through: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped markup, got %q", got)
	}
}

func TestComponentWritesSameOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("**oi**").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if buf.String() != "<p><strong>oi</strong></p>" {
		t.Errorf("got %q", buf.String())
	}
}
