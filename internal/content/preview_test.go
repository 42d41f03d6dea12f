package content

import (
	"bytes"
	"testing"

	"github.com/quillworks/quill/internal/model"
)

func TestRenderPreview(t *testing.T) {
	repo, _, _, _ := newTestRepository()

	post := &model.Post{
		ID:      "my-first-post",
		Content: "# Heading\n\nbody",
	}

	html := repo.RenderPreview(post, "gruvbox")
	if !bytes.Contains(html, []byte("<h1")) {
		t.Errorf("Expected rendered HTML, got %s", html)
	}

	// Memoized: the same body renders identically on repeat calls.
	again := repo.RenderPreview(post, "gruvbox")
	if !bytes.Equal(html, again) {
		t.Error("Expected identical output for the same body")
	}
}
