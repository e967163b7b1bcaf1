package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/plan"
)

func TestParseLiteralPassthrough(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		source string
	}{
		{name: "plain text", source: "no markers here at all\n"},
		{name: "empty braces", source: "a {} b"},
		{name: "spaced content", source: "a { not a path! } b"},
		{name: "json sample", source: `{"key": "value", "n": 3}`},
		{name: "unclosed brace", source: "trailing { brace"},
		{name: "numeric start", source: "{1abc}"},
		{name: "malformed loop", source: "{for item sequence}"},
		{name: "loop missing binding", source: "{for in items}"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree, err := engine.Parse(tc.source)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.source, err)
			}
			if got := tree.Render(plan.Absent()); got != tc.source {
				t.Fatalf("Render() = %q, want literal %q", got, tc.source)
			}
		})
	}
}

func TestParseMarkerInsideRejectedCandidate(t *testing.T) {
	t.Parallel()

	// The first brace opens a candidate that fails classification; the
	// scanner must resume one byte later so the real marker still parses.
	tree, err := engine.Parse("{ {title} }")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	model := plan.Record(plan.Field{Name: "title", Value: plan.Scalar("Guide")})
	if got, want := tree.Render(model), "{ Guide }"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		source string
		line   int
		reason string
	}{
		{
			name:   "unterminated loop",
			source: "before\n{for item in items}\nbody",
			line:   2,
			reason: "unterminated loop block",
		},
		{
			name:   "unterminated conditional",
			source: "{if summary}body",
			line:   1,
			reason: "unterminated conditional block",
		},
		{
			name:   "orphan endfor",
			source: "text {endfor}",
			line:   1,
			reason: "terminator without matching {for}",
		},
		{
			name:   "orphan endif",
			source: "{endif}",
			line:   1,
			reason: "terminator without matching {if}",
		},
		{
			name:   "interleaved terminators",
			source: "{for item in items}{if item.flag}{endfor}{endif}",
			line:   1,
			reason: "terminator does not match open conditional block",
		},
		{
			name:   "endif closing loop",
			source: "{for item in items}{endif}",
			line:   1,
			reason: "terminator does not match open loop block",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Parse(tc.source)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want syntax error", tc.source)
			}

			var syntaxErr *engine.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Parse() error = %T, want *SyntaxError", err)
			}
			if syntaxErr.Line != tc.line {
				t.Errorf("SyntaxError.Line = %d, want %d", syntaxErr.Line, tc.line)
			}
			if syntaxErr.Reason != tc.reason {
				t.Errorf("SyntaxError.Reason = %q, want %q", syntaxErr.Reason, tc.reason)
			}
			if !strings.Contains(err.Error(), "engine:") {
				t.Errorf("error text %q missing package prefix", err.Error())
			}
		})
	}
}

func TestParseNestedBlocks(t *testing.T) {
	t.Parallel()

	source := "{for section in sections}{if section.points}{for point in section.points}- {point}\n{endfor}{endif}{endfor}"
	tree, err := engine.Parse(source)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	model := plan.Record(plan.Field{
		Name: "sections",
		Value: plan.Sequence(
			plan.Record(plan.Field{
				Name:  "points",
				Value: plan.Sequence(plan.Scalar("first"), plan.Scalar("second")),
			}),
			plan.Record(plan.Field{Name: "points", Value: plan.Sequence()}),
		),
	})

	if got, want := tree.Render(model), "- first\n- second\n"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	source := "# {title}\n{for s in sections}{if s.points}{for p in s.points}- {p}\n{endfor}{endif}{endfor}tail { literal }"
	model := plan.Record(
		plan.Field{Name: "title", Value: plan.Scalar("T")},
		plan.Field{Name: "sections", Value: plan.Sequence(
			plan.Record(plan.Field{Name: "points", Value: plan.Sequence(plan.Scalar("p1"))}),
		)},
	)

	first, err := engine.Parse(source)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	second, err := engine.Parse(source)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if a, b := first.Render(model), second.Render(model); a != b {
		t.Fatalf("independent parses rendered differently: %q vs %q", a, b)
	}
}

func TestParseWhitespaceInsideMarker(t *testing.T) {
	t.Parallel()

	tree, err := engine.Parse("{  title  } and {\tfor x in items\t}{x}{endfor}")
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	model := plan.Record(
		plan.Field{Name: "title", Value: plan.Scalar("T")},
		plan.Field{Name: "items", Value: plan.Sequence(plan.Scalar("a"), plan.Scalar("b"))},
	)
	if got, want := tree.Render(model), "T and ab"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}
