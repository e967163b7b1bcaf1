package engine

import "strings"

// Tree is the compiled, immutable representation of a template. A Tree may
// be cached and shared by any number of concurrent renders; rendering only
// reads it.
type Tree struct {
	nodes []node
}

type node interface {
	render(st *renderState, out *strings.Builder)
}

type literalNode struct {
	text string
}

type referenceNode struct {
	path string
}

type loopNode struct {
	path    string
	binding string
	body    []node
}

type conditionalNode struct {
	path string
	body []node
}
