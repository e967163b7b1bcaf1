package docgen

import (
	"context"

	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/plan"
	"github.com/goliatone/go-docgen/pkg/render"
)

// RenderOptions describes per-request overrides renderers can use, such as
// a replacement template source.
type RenderOptions = render.RenderOptions

// Request aliases the orchestrator request for callers wiring everything
// through the top-level module.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so quick-start callers need a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateDocument loads the content plan, renders it with the named
// renderer, and returns the document bytes. It is the simplest entry point
// for callers that just want output.
func GenerateDocument(ctx context.Context, source plan.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a pre-loaded plan document, bypassing the
// loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc plan.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
