package content

import "strings"

// Slugify derives a document identifier from a post title: trim, lowercase,
// and collapse every run of characters outside [a-z0-9] into a single dash.
// Pure and deterministic, and already-slug-shaped input passes through
// unchanged. It makes no uniqueness promise; two titles can normalize to the
// same slug, and the backend rejects the duplicate identifier on write.
func Slugify(title string) string {
	trimmed := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(trimmed))

	dashPending := false
	for _, r := range trimmed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dashPending = false
		} else if !dashPending {
			b.WriteByte('-')
			dashPending = true
		}
	}

	return b.String()
}
