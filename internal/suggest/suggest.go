// Package suggest wraps the generative-text collaborator behind a minimal
// interface. The layout engines never see it; only the suggestion endpoint
// calls it, and it is entirely optional at runtime.
package suggest

import "context"

// Suggester rewrites or drafts resume text for one section. Implementations
// are opaque: the caller hands over the section id and the current text and
// gets improved text or an error, nothing in between.
type Suggester interface {
	Suggest(ctx context.Context, section, current string) (string, error)
}
