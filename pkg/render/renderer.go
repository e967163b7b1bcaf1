package render

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/plan"
)

// Renderer converts a content plan into one output dialect (markdown,
// zonbook, etc.). Implementations share the engine grammar and the content
// model; only their template source and escaping rules differ.
type Renderer interface {
	Name() string
	ContentType() string
	// FileExtension is the suffix (including the dot) for documents this
	// renderer produces, e.g. ".md" or ".xml".
	FileExtension() string
	Render(ctx context.Context, model plan.Value, options RenderOptions) ([]byte, error)
}
