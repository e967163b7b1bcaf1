package engine

import (
	"strings"
)

// Parse compiles template source into a Tree. The scan is a single
// left-to-right pass with an explicit stack of open blocks, so every input
// either produces a tree or a *SyntaxError; there is no partial result.
//
// Marker grammar:
//
//	{dotted.path}          interpolation
//	{for item in path}     loop over a sequence, closed by {endfor}
//	{if path}              conditional on truthiness, closed by {endif}
//
// Anything between braces that does not match one of those forms is literal
// text. That tolerance lets format-specific markup (angle-bracket tags, JSON
// braces in code samples) coexist with the control-flow grammar.
func Parse(source string) (*Tree, error) {
	p := &parser{source: source}
	nodes, err := p.run()
	if err != nil {
		return nil, err
	}
	return &Tree{nodes: nodes}, nil
}

type blockKind int

const (
	blockLoop blockKind = iota
	blockConditional
)

// frame is one open block on the parse stack. Children accumulate here until
// the matching terminator pops the frame.
type frame struct {
	kind    blockKind
	path    string
	binding string
	marker  string
	offset  int
	nodes   []node
}

type parser struct {
	source string
	stack  []*frame
	root   []node
	// literal accumulates text runs, including rejected marker candidates,
	// so consecutive literals collapse into a single node.
	literal strings.Builder
}

func (p *parser) run() ([]node, error) {
	src := p.source
	i := 0
	for i < len(src) {
		open := strings.IndexByte(src[i:], '{')
		if open < 0 {
			p.literal.WriteString(src[i:])
			break
		}
		open += i
		p.literal.WriteString(src[i:open])

		end := strings.IndexByte(src[open+1:], '}')
		if end < 0 {
			// No terminating brace anywhere ahead; the rest is literal.
			p.literal.WriteString(src[open:])
			break
		}
		end += open + 1

		marker := src[open : end+1]
		inner := strings.TrimSpace(src[open+1 : end])

		consumed, err := p.marker(inner, marker, open)
		if err != nil {
			return nil, err
		}
		if consumed {
			i = end + 1
			continue
		}

		// Unrecognized marker: the brace is plain text. Rescan from the
		// next byte so a real marker starting inside still parses.
		p.literal.WriteByte('{')
		i = open + 1
	}

	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		return nil, p.errorAt(top.offset, top.marker, "unterminated "+blockName(top.kind)+" block")
	}

	p.flushLiteral()
	return p.root, nil
}

// marker classifies one brace-delimited candidate. It reports false when the
// text matches none of the marker forms, leaving the caller to treat it as
// literal. Terminators are validated here: closing a block that is not the
// innermost open one is a structural error, not literal text.
func (p *parser) marker(inner, marker string, offset int) (bool, error) {
	switch inner {
	case "endfor":
		return true, p.closeBlock(blockLoop, marker, offset)
	case "endif":
		return true, p.closeBlock(blockConditional, marker, offset)
	}

	if fields := strings.Fields(inner); len(fields) > 0 {
		switch fields[0] {
		case "for":
			if len(fields) == 4 && fields[2] == "in" && isIdentifier(fields[1]) && isPath(fields[3]) {
				p.openBlock(&frame{
					kind:    blockLoop,
					binding: fields[1],
					path:    fields[3],
					marker:  marker,
					offset:  offset,
				})
				return true, nil
			}
			return false, nil
		case "if":
			if len(fields) == 2 && isPath(fields[1]) {
				p.openBlock(&frame{
					kind:   blockConditional,
					path:   fields[1],
					marker: marker,
					offset: offset,
				})
				return true, nil
			}
			return false, nil
		}
	}

	if isPath(inner) {
		p.append(referenceNode{path: inner})
		return true, nil
	}
	return false, nil
}

func (p *parser) openBlock(f *frame) {
	p.flushLiteral()
	p.stack = append(p.stack, f)
}

func (p *parser) closeBlock(kind blockKind, marker string, offset int) error {
	if len(p.stack) == 0 {
		return p.errorAt(offset, marker, "terminator without matching "+openerName(kind))
	}
	top := p.stack[len(p.stack)-1]
	if top.kind != kind {
		return p.errorAt(offset, marker, "terminator does not match open "+blockName(top.kind)+" block")
	}

	p.flushLiteral()
	p.stack = p.stack[:len(p.stack)-1]

	switch kind {
	case blockLoop:
		p.append(loopNode{path: top.path, binding: top.binding, body: top.nodes})
	case blockConditional:
		p.append(conditionalNode{path: top.path, body: top.nodes})
	}
	return nil
}

// append attaches a node to the innermost open block, or to the root when no
// block is open. Pending literal text is flushed first to keep node order.
func (p *parser) append(n node) {
	p.flushLiteral()
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.nodes = append(top.nodes, n)
		return
	}
	p.root = append(p.root, n)
}

func (p *parser) flushLiteral() {
	if p.literal.Len() == 0 {
		return
	}
	text := p.literal.String()
	p.literal.Reset()
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.nodes = append(top.nodes, literalNode{text: text})
		return
	}
	p.root = append(p.root, literalNode{text: text})
}

func (p *parser) errorAt(offset int, marker, reason string) *SyntaxError {
	return &SyntaxError{
		Offset: offset,
		Line:   1 + strings.Count(p.source[:offset], "\n"),
		Marker: marker,
		Reason: reason,
	}
}

func blockName(kind blockKind) string {
	if kind == blockLoop {
		return "loop"
	}
	return "conditional"
}

func openerName(kind blockKind) string {
	if kind == blockLoop {
		return "{for}"
	}
	return "{if}"
}

// isPath reports whether s is a dotted sequence of identifiers, the only
// shape a reference, loop, or conditional may address.
func isPath(s string) bool {
	if s == "" {
		return false
	}
	for _, segment := range strings.Split(s, ".") {
		if !isIdentifier(segment) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
