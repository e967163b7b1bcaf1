// Package markdown renders content plans as flowing CommonMark-style prose.
// Scalar values pass through verbatim; markdown tolerates markup-significant
// characters in text, so the adapter installs no escaping function.
package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/plan"
	"github.com/goliatone/go-docgen/pkg/render"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateSource string
}

// WithTemplateSource replaces the embedded document template.
func WithTemplateSource(source string) Option {
	return func(cfg *config) {
		cfg.templateSource = source
	}
}

// Renderer implements render.Renderer for the markdown dialect.
type Renderer struct {
	tree *engine.Tree
}

var _ render.Renderer = (*Renderer)(nil)

// New compiles the document template once and returns the renderer. A
// syntax error in a supplied template override fails construction; the
// embedded template is expected to always compile.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	source := cfg.templateSource
	if source == "" {
		source = builtinTemplate()
	}

	tree, err := engine.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("markdown: compile template: %w", err)
	}
	return &Renderer{tree: tree}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "markdown"
}

// ContentType reports the media type of rendered documents.
func (r *Renderer) ContentType() string {
	return "text/markdown"
}

// FileExtension reports the suffix for rendered documents.
func (r *Renderer) FileExtension() string {
	return ".md"
}

// Render expands the compiled template against the supplied content model.
func (r *Renderer) Render(ctx context.Context, model plan.Value, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("markdown: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := r.tree
	if options.TemplateSource != "" {
		override, err := engine.Parse(options.TemplateSource)
		if err != nil {
			return nil, fmt.Errorf("markdown: compile template override: %w", err)
		}
		tree = override
	}

	return []byte(tree.Render(model)), nil
}
