package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/cache"
)

func init() {
	SetLogger(zerolog.Nop())
}

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown([]byte("# Title\n\nSome *emphasis* here."), "gruvbox")

	if !bytes.Contains(html, []byte("<h1")) {
		t.Errorf("Expected an h1 element, got %s", html)
	}
	if !bytes.Contains(html, []byte("<em>emphasis</em>")) {
		t.Errorf("Expected emphasis to be rendered, got %s", html)
	}
}

func TestRenderMarkdownHighlightsCodeBlocks(t *testing.T) {
	md := "```go\nfunc main() {}\n```"
	html := RenderMarkdown([]byte(md), "gruvbox")

	if !bytes.Contains(html, []byte(`<div class="highlight">`)) {
		t.Errorf("Expected a highlight wrapper, got %s", html)
	}
}

func TestHighlightCodeUnknownLanguageFallsBack(t *testing.T) {
	out := HighlightCode("plain text", "no-such-language", "gruvbox")
	if out == "" {
		t.Error("Expected non-empty output for an unknown language")
	}
}

func TestRenderMarkdownCached(t *testing.T) {
	cache.ClearRenderedPreviewCache()

	md := []byte("# Cached")
	first := RenderMarkdownCached(md, "hash-1", "gruvbox")
	second := RenderMarkdownCached(md, "hash-1", "gruvbox")

	if !bytes.Equal(first, second) {
		t.Error("Expected identical output from the cached path")
	}
	if cached, ok := cache.GetRenderedPreview("hash-1", "gruvbox"); !ok || !bytes.Equal(cached, first) {
		t.Error("Expected the rendered HTML to be cached under the content hash")
	}

	// An empty hash skips the cache entirely.
	out := RenderMarkdownCached(md, "", "gruvbox")
	if !strings.Contains(string(out), "Cached") {
		t.Errorf("Expected rendering to still work without a hash, got %s", out)
	}
}
