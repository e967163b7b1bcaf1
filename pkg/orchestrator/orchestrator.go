// Package orchestrator coordinates the full pipeline from content-plan
// source to rendered document bytes. It applies sensible defaults (file
// loader, markdown + zonbook renderers) while remaining open to dependency
// injection for advanced callers.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-docgen/internal/plan/loader"
	"github.com/goliatone/go-docgen/pkg/plan"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/renderers/markdown"
	"github.com/goliatone/go-docgen/pkg/renderers/zonbook"
	"github.com/goliatone/go-docgen/pkg/templates"
	"github.com/goliatone/go-docgen/pkg/validation"
)

const defaultRendererName = "markdown"

// Validator checks a plan document before rendering. pkg/validation
// provides the canonical implementation.
type Validator interface {
	Validate(ctx context.Context, doc plan.Document) validation.Result
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom plan loader.
func WithLoader(loader plan.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTemplateStore lets requests name stored templates instead of passing
// raw template source.
func WithTemplateStore(store *templates.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithValidator enables structural plan validation ahead of rendering.
// Without one, malformed plans degrade gracefully per the engine contract.
func WithValidator(validator Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// Orchestrator wires loader, validator, template store, and renderers into
// a single Generate entry point.
type Orchestrator struct {
	loader          plan.Loader
	registry        *render.Registry
	store           *templates.Store
	validator       Validator
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a document from a plan.
type Request struct {
	// Source identifies where the plan lives. Optional when Document is
	// supplied.
	Source plan.Source

	// Document allows callers to bypass the loader when they already have
	// the payload.
	Document *plan.Document

	// Renderer names the output dialect. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Template names a stored template to render with instead of the
	// renderer's built-in one. Requires a configured template store.
	Template string

	// RenderOptions carries per-request renderer instructions. When
	// omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → decoder → validator → renderer sequence
// and returns the rendered document bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	if o.validator != nil {
		result := o.validator.Validate(ctx, doc)
		if !result.Valid {
			return nil, fmt.Errorf("orchestrator: plan failed validation: %s", summarizeIssues(result.Issues))
		}
	}

	model, err := doc.Plan()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode plan: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if req.Template != "" {
		if o.store == nil {
			return nil, errors.New("orchestrator: template requested but no template store configured")
		}
		source, err := o.store.Load(req.Template)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load template %q: %w", req.Template, err)
		}
		options.TemplateSource = source
	}

	output, err := renderer.Render(ctx, model, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// RendererFor exposes renderer resolution so callers can inspect content
// type and file extension before or after generating.
func (o *Orchestrator) RendererFor(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (plan.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return plan.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return plan.Document{}, fmt.Errorf("orchestrator: load plan: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(plan.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		if renderer, err := markdown.New(); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: markdown renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		if renderer, err := zonbook.New(); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: zonbook renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func summarizeIssues(issues []validation.Issue) string {
	if len(issues) == 0 {
		return "unknown issue"
	}

	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	const max = 3
	if len(parts) > max {
		parts = append(parts[:max], fmt.Sprintf("and %d more", len(parts)-max))
	}
	return strings.Join(parts, "; ")
}
