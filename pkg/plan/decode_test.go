package plan_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/plan"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"title": "User Guide",
		"sections": [
			{"heading": "Intro", "points": ["a", "b"]},
			{"heading": "Usage", "points": []}
		],
		"draft": null
	}`)

	value, err := plan.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}

	if got := value.Resolve("title").Text(); got != "User Guide" {
		t.Fatalf("title = %q, want %q", got, "User Guide")
	}
	sections := value.Resolve("sections")
	if got := sections.Len(); got != 2 {
		t.Fatalf("sections Len() = %d, want 2", got)
	}
	if got := sections.Items()[0].Resolve("points").Len(); got != 2 {
		t.Fatalf("first points Len() = %d, want 2", got)
	}
	if !value.Resolve("draft").IsAbsent() {
		t.Fatal("explicit null should decode as absent")
	}
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	raw := []byte("title: User Guide\npersonas:\n  - name: Operator\n  - name: Developer\n")
	value, err := plan.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}

	personas := value.Resolve("personas")
	if got := personas.Len(); got != 2 {
		t.Fatalf("personas Len() = %d, want 2", got)
	}
	if got := personas.Items()[1].Resolve("name").Text(); got != "Developer" {
		t.Fatalf("second persona = %q, want Developer", got)
	}
}

func TestDecodePreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	// Key order is not alphabetical on purpose; decoding must keep the
	// authored order, not sort it.
	raw := []byte(`{"zeta": "1", "alpha": "2", "mid": "3"}`)
	value, err := plan.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}

	want := []string{"zeta", "alpha", "mid"}
	if diff := cmp.Diff(want, value.FieldNames()); diff != "" {
		t.Fatalf("FieldNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYAMLAnchors(t *testing.T) {
	t.Parallel()

	raw := []byte("base: &shared\n  owner: docs\nderived: *shared\n")
	value, err := plan.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}
	if got := value.Resolve("derived.owner").Text(); got != "docs" {
		t.Fatalf("derived.owner = %q, want docs", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "  \n\t"},
		{name: "broken json", raw: `{"title": `},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := plan.Decode([]byte(tc.raw))
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", tc.raw)
			}
			if !strings.HasPrefix(err.Error(), "plan:") {
				t.Fatalf("error %q missing package prefix", err.Error())
			}
		})
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := plan.Record(
		plan.Field{Name: "zeta", Value: plan.Scalar("1")},
		plan.Field{Name: "alpha", Value: plan.Sequence(plan.Scalar("a"), plan.Scalar("b"))},
		plan.Field{Name: "nested", Value: plan.Record(plan.Field{Name: "k", Value: plan.Scalar("v")})},
	)

	decoded, err := plan.Decode(plan.EncodeJSON(original))
	if err != nil {
		t.Fatalf("Decode() returned error: %v", err)
	}

	if diff := cmp.Diff(original.FieldNames(), decoded.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if got := decoded.Resolve("alpha").Len(); got != 2 {
		t.Fatalf("alpha Len() = %d, want 2", got)
	}
	if got := decoded.Resolve("nested.k").Text(); got != "v" {
		t.Fatalf("nested.k = %q, want v", got)
	}
}
