// Package engine implements the format-agnostic template language used by
// every output adapter: literal text, dotted-path interpolation, loops over
// sequences, and conditional blocks, all arbitrarily nestable. Parsing is
// strict about block structure and tolerant of everything else; rendering
// degrades gracefully when a plan omits optional data.
package engine
