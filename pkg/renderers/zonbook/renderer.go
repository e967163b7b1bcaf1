// Package zonbook renders content plans as strictly tagged Zonbook XML, the
// DocBook-derived dialect used by documentation build pipelines. It shares
// the markdown adapter's grammar and content model; the differences are the
// literal markup in the template and mandatory XML escaping of every
// interpolated value.
package zonbook

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

// Renderer implements render.Renderer for the zonbook dialect.
type Renderer struct {
	tree *engine.Tree
}

var _ render.Renderer = (*Renderer)(nil)

// New compiles the document template once and returns the renderer.
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
		return nil, fmt.Errorf("zonbook: compile template: %w", err)
	}
	return &Renderer{tree: tree}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "zonbook"
}

// ContentType reports the media type of rendered documents.
func (r *Renderer) ContentType() string {
	return "application/xml"
}

// FileExtension reports the suffix for rendered documents.
func (r *Renderer) FileExtension() string {
	return ".xml"
}

// Render expands the compiled template against the supplied content model,
// escaping every interpolated scalar for XML.
func (r *Renderer) Render(ctx context.Context, model plan.Value, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("zonbook: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := r.tree
	if options.TemplateSource != "" {
		override, err := engine.Parse(options.TemplateSource)
		if err != nil {
			return nil, fmt.Errorf("zonbook: compile template override: %w", err)
		}
		tree = override
	}

	return []byte(tree.Render(model, engine.WithEscape(escapeXML))), nil
}
