package render

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the compiled template pipeline.
type RenderOptions struct {
	// TemplateSource replaces the renderer's built-in template for this
	// request. The override is compiled on the fly and is not cached, so a
	// syntax error surfaces on the request that supplied it.
	TemplateSource string
}
