package docgen

import (
	"io/fs"

	"github.com/goliatone/go-docgen/pkg/renderers/markdown"
	"github.com/goliatone/go-docgen/pkg/renderers/zonbook"
)

// MarkdownTemplates exposes the built-in markdown adapter templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func MarkdownTemplates() fs.FS {
	return markdown.TemplatesFS()
}

// ZonbookTemplates exposes the built-in zonbook adapter templates.
func ZonbookTemplates() fs.FS {
	return zonbook.TemplatesFS()
}
