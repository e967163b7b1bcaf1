package markdown_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/plan"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/renderers/markdown"
)

func mustDecode(t *testing.T, raw string) plan.Value {
	t.Helper()
	value, err := plan.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	return value
}

func TestRenderMinimalPlan(t *testing.T) {
	t.Parallel()

	model := mustDecode(t, `{
		"title": "Guide",
		"content_structure": [
			{"title": "A", "section_id": "a", "purpose": "P", "key_points": ["k1", "k2"], "subsections": []}
		]
	}`)

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	out, err := renderer.Render(context.Background(), model, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	want := "# Guide\n\n## A\n\nP\n\n- k1\n- k2\n\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	t.Parallel()

	model := mustDecode(t, `{"title": "Bare"}`)

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	out, err := renderer.Render(context.Background(), model, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	document := string(out)
	if !strings.HasPrefix(document, "# Bare\n") {
		t.Fatalf("document %q missing title heading", document)
	}
	for _, heading := range []string{"## Overview", "## Audience", "## Glossary", "###"} {
		if strings.Contains(document, heading) {
			t.Fatalf("document should omit %q when the plan has no data for it:\n%s", heading, document)
		}
	}
}

func TestRenderFullPlan(t *testing.T) {
	t.Parallel()

	model := mustDecode(t, `{
		"title": "Queue Service Guide",
		"overview": {
			"summary": "How queues work.",
			"primary_use_case": "Decoupling producers from consumers."
		},
		"personas": [
			{
				"name": "Operator",
				"description": "Runs the service.",
				"key_tasks": ["Provision queues", "Monitor depth"]
			}
		],
		"key_concepts": [
			{"name": "Queue", "description": "An ordered buffer."}
		],
		"content_structure": [
			{
				"title": "Getting started",
				"purpose": "First steps.",
				"key_points": ["Install the CLI"],
				"examples": [{"type": "bash", "description": "cli queues create"}],
				"subsections": [
					{"title": "Credentials", "purpose": "Auth setup.", "key_points": ["Create a key"]}
				]
			}
		],
		"glossary": [
			{"term": "DLQ", "definition": "Dead letter queue."}
		]
	}`)

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	out, err := renderer.Render(context.Background(), model, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	document := string(out)
	for _, want := range []string{
		"# Queue Service Guide",
		"## Overview",
		"How queues work.",
		"**Primary use case:** Decoupling producers from consumers.",
		"### Operator",
		"- Provision queues",
		"- **Queue**: An ordered buffer.",
		"## Getting started",
		"```bash\ncli queues create\n```",
		"### Credentials",
		"- Create a key",
		"**DLQ**: Dead letter queue.",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("document missing %q:\n%s", want, document)
		}
	}
}

func TestRenderScalarsStayVerbatim(t *testing.T) {
	t.Parallel()

	// Markdown tolerates markup-significant characters in prose, so the
	// adapter must not escape them.
	model := mustDecode(t, `{
		"title": "Generics: a < b",
		"content_structure": [
			{"title": "Comparison", "key_points": ["prefer a < b over a > b"]}
		]
	}`)

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	out, err := renderer.Render(context.Background(), model, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	document := string(out)
	if !strings.Contains(document, "# Generics: a < b") {
		t.Fatalf("title was altered:\n%s", document)
	}
	if !strings.Contains(document, "- prefer a < b over a > b") {
		t.Fatalf("key point was altered:\n%s", document)
	}
	if strings.Contains(document, "&lt;") {
		t.Fatal("markdown output must not be entity-escaped")
	}
}

func TestRenderSubsectionsInOrder(t *testing.T) {
	t.Parallel()

	model := mustDecode(t, `{
		"title": "Guide",
		"content_structure": [
			{
				"title": "Parent",
				"key_points": ["root point"],
				"subsections": [
					{"title": "First", "key_points": ["only first"]},
					{"title": "Second", "key_points": ["only second"]}
				]
			}
		]
	}`)

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	out, err := renderer.Render(context.Background(), model, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	document := string(out)
	first := strings.Index(document, "### First")
	second := strings.Index(document, "### Second")
	if first < 0 || second < 0 {
		t.Fatalf("missing subsection headings:\n%s", document)
	}
	if first > second {
		t.Fatal("subsections rendered out of input order")
	}

	firstBlock := document[first:second]
	if !strings.Contains(firstBlock, "- only first") {
		t.Fatalf("first subsection missing its own point:\n%s", firstBlock)
	}
	if strings.Contains(firstBlock, "only second") {
		t.Fatalf("first subsection leaked a sibling's point:\n%s", firstBlock)
	}
}

func TestRenderTemplateOverride(t *testing.T) {
	t.Parallel()

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	model := mustDecode(t, `{"title": "Guide"}`)
	out, err := renderer.Render(context.Background(), model, render.RenderOptions{
		TemplateSource: "override: {title}",
	})
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if got, want := string(out), "override: Guide"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	if _, err := renderer.Render(context.Background(), model, render.RenderOptions{
		TemplateSource: "{if broken}",
	}); err == nil {
		t.Fatal("expected error for malformed template override")
	}
}

func TestRenderContextChecks(t *testing.T) {
	t.Parallel()

	renderer, err := markdown.New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	model := mustDecode(t, `{"title": "Guide"}`)

	if _, err := renderer.Render(nil, model, render.RenderOptions{}); err == nil { //nolint:staticcheck
		t.Fatal("expected error for nil context")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, model, render.RenderOptions{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNewRejectsBrokenTemplate(t *testing.T) {
	t.Parallel()

	if _, err := markdown.New(markdown.WithTemplateSource("{for x in items}")); err == nil {
		t.Fatal("expected constructor to fail on malformed template")
	}
}
