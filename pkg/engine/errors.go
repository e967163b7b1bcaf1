package engine

import "fmt"

// SyntaxError reports malformed template source: a block opener with no
// terminator, a terminator with no opener, or a terminator that does not
// match the innermost open block. It is the only error Parse can return;
// everything else the scanner meets is literal text.
type SyntaxError struct {
	// Offset is the byte offset of the offending marker in the source.
	Offset int
	// Line is the 1-based line the marker starts on.
	Line int
	// Marker is the raw marker text, including braces.
	Marker string
	// Reason describes what went wrong.
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Marker == "" {
		return fmt.Sprintf("engine: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("engine: line %d: %s near %s", e.Line, e.Reason, e.Marker)
}
