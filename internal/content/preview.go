package content

import (
	"github.com/quillworks/quill/internal/model"
	"github.com/quillworks/quill/internal/render"
	"github.com/quillworks/quill/internal/util"
)

// RenderPreview renders the post body to HTML for display, memoized by
// content hash. The body itself stays opaque to the repository; rendering is
// read-side only and never touches the backend.
func (r *Repository) RenderPreview(post *model.Post, syntaxTheme string) []byte {
	body := []byte(post.Content)
	return render.RenderMarkdownCached(body, util.ContentHash(body), syntaxTheme)
}
