// Package preview converts rendered markdown documents into standalone,
// sanitized HTML pages so writers can eyeball output without a docs build.
// The markdown conversion runs with raw HTML enabled and the result is
// sanitized afterwards; plan content is model-generated and untrusted.
package preview

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
code { font-family: ui-monospace, monospace; }
blockquote { border-left: 3px solid #d0d7de; margin-left: 0; padding-left: 1rem; color: #57606a; }
</style>
</head>
<body>
{{ body|safe }}
</body>
</html>
`

// Converter turns markdown bytes into a sanitized HTML page. Construct once
// and reuse; conversion is safe for concurrent use.
type Converter struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	page     *pongo2.Template
}

// New builds a Converter with GFM extensions and a UGC sanitation policy.
func New() (*Converter, error) {
	page, err := pongo2.FromString(pageShell)
	if err != nil {
		return nil, fmt.Errorf("preview: compile page shell: %w", err)
	}

	return &Converter{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
		page:   page,
	}, nil
}

// HTML converts a markdown document into a full sanitized page.
func (c *Converter) HTML(title string, document []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := c.markdown.Convert(document, &body); err != nil {
		return nil, fmt.Errorf("preview: convert markdown: %w", err)
	}

	sanitized := c.policy.SanitizeBytes(body.Bytes())

	out, err := c.page.Execute(pongo2.Context{
		"title": title,
		"body":  string(sanitized),
	})
	if err != nil {
		return nil, fmt.Errorf("preview: render page: %w", err)
	}
	return []byte(out), nil
}

// Fragment converts markdown to a sanitized HTML fragment without the page
// shell, for callers embedding the preview elsewhere.
func (c *Converter) Fragment(document []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := c.markdown.Convert(document, &body); err != nil {
		return nil, fmt.Errorf("preview: convert markdown: %w", err)
	}
	return c.policy.SanitizeBytes(body.Bytes()), nil
}
