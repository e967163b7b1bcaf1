package engine

import (
	"strings"

	"github.com/goliatone/go-docgen/pkg/plan"
)

// Option configures a single render.
type Option func(*renderState)

// WithEscape installs the escaping function an adapter applies to every
// reference emission. Literal template text is never escaped; only resolved
// scalar values pass through the function.
func WithEscape(fn func(string) string) Option {
	return func(st *renderState) {
		st.escape = fn
	}
}

// Render walks the tree against the supplied content model and returns the
// assembled text. Rendering never fails: a path that resolves to nothing, or
// to an unexpected kind, contributes empty output. Template authors get loud
// parse errors; plan producers get graceful degradation.
func (t *Tree) Render(root plan.Value, opts ...Option) string {
	st := &renderState{root: root}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(st)
	}

	var out strings.Builder
	renderNodes(t.nodes, st, &out)
	return out.String()
}

// binding is one loop-variable frame. Frames layer innermost-last; an inner
// loop may shadow an outer name and the outer value survives the inner
// loop's extent untouched.
type binding struct {
	name  string
	value plan.Value
}

type renderState struct {
	root   plan.Value
	env    []binding
	escape func(string) string
}

// resolve implements the two-step lookup order: the path's first segment is
// checked against loop bindings innermost-first; only when no binding
// matches does the full path resolve against the root content model.
func (st *renderState) resolve(path string) plan.Value {
	first, rest := splitHead(path)
	for i := len(st.env) - 1; i >= 0; i-- {
		if st.env[i].name == first {
			return st.env[i].value.Resolve(rest)
		}
	}
	return st.root.Resolve(path)
}

func splitHead(path string) (string, string) {
	if at := strings.IndexByte(path, '.'); at >= 0 {
		return path[:at], path[at+1:]
	}
	return path, ""
}

func renderNodes(nodes []node, st *renderState, out *strings.Builder) {
	for _, n := range nodes {
		n.render(st, out)
	}
}

func (n literalNode) render(_ *renderState, out *strings.Builder) {
	out.WriteString(n.text)
}

func (n referenceNode) render(st *renderState, out *strings.Builder) {
	value := st.resolve(n.path)
	if value.Kind() != plan.KindScalar {
		return
	}
	text := value.Text()
	if st.escape != nil {
		text = st.escape(text)
	}
	out.WriteString(text)
}

func (n loopNode) render(st *renderState, out *strings.Builder) {
	value := st.resolve(n.path)
	if value.Kind() != plan.KindSequence {
		// Absent, scalar, or record paths iterate zero times.
		return
	}
	for _, item := range value.Items() {
		st.env = append(st.env, binding{name: n.binding, value: item})
		renderNodes(n.body, st, out)
		st.env = st.env[:len(st.env)-1]
	}
}

func (n conditionalNode) render(st *renderState, out *strings.Builder) {
	if !truthy(st.resolve(n.path)) {
		return
	}
	renderNodes(n.body, st, out)
}

// truthy is the conditional predicate: a non-empty sequence, a non-empty
// record, or scalar text with non-whitespace content. Everything else,
// including absence, is false.
func truthy(value plan.Value) bool {
	switch value.Kind() {
	case plan.KindSequence, plan.KindRecord:
		return value.Len() > 0
	case plan.KindScalar:
		return strings.TrimSpace(value.Text()) != ""
	default:
		return false
	}
}
