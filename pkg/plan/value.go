package plan

import (
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants a resolved content-plan value can take.
// Absent is a first-class kind so lookups stay total: a missing field, an
// index into a scalar, or a null in the source document all resolve to the
// same value instead of an error.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindRecord
	KindSequence
)

// Value is one node of a content plan: a scalar, an ordered record of named
// fields, an ordered sequence, or the absent value. Values are immutable
// once constructed and safe to share between concurrent renders.
type Value struct {
	kind  Kind
	text  string
	names []string
	index map[string]int
	items []Value
}

// Field pairs a record field name with its value.
type Field struct {
	Name  string
	Value Value
}

// Absent returns the absent value. The zero Value is also absent.
func Absent() Value {
	return Value{}
}

// Scalar wraps text in a scalar value.
func Scalar(text string) Value {
	return Value{kind: KindScalar, text: text}
}

// Sequence builds an ordered sequence from the supplied items.
func Sequence(items ...Value) Value {
	out := Value{kind: KindSequence}
	out.items = append(out.items, items...)
	return out
}

// Record builds a record preserving field declaration order. Later duplicate
// names overwrite the earlier value but keep the original position.
func Record(fields ...Field) Value {
	out := Value{
		kind:  KindRecord,
		index: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			continue
		}
		if at, ok := out.index[f.Name]; ok {
			out.items[at] = f.Value
			continue
		}
		out.index[f.Name] = len(out.items)
		out.names = append(out.names, f.Name)
		out.items = append(out.items, f.Value)
	}
	return out
}

// Kind reports the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is the absent variant.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the scalar text. Non-scalar values return the empty string,
// so emission code never needs a kind check before degrading gracefully.
func (v Value) Text() string {
	if v.kind != KindScalar {
		return ""
	}
	return v.text
}

// Field resolves a named field on a record. Any other kind, or a missing
// name, resolves to the absent value.
func (v Value) Field(name string) Value {
	if v.kind != KindRecord {
		return Absent()
	}
	at, ok := v.index[name]
	if !ok {
		return Absent()
	}
	return v.items[at]
}

// FieldNames returns record field names in declaration order. The slice is a
// copy; callers may mutate it freely.
func (v Value) FieldNames() []string {
	if v.kind != KindRecord || len(v.names) == 0 {
		return nil
	}
	return append([]string(nil), v.names...)
}

// Items returns the elements of a sequence in order. Records and scalars
// return nil; use Field and Text for those.
func (v Value) Items() []Value {
	if v.kind != KindSequence || len(v.items) == 0 {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Len reports the element count of a sequence, the field count of a record,
// and the byte length of a scalar. Absent values have length zero.
func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return len(v.text)
	case KindRecord, KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Resolve walks a dotted path through nested records. Every step is total:
// the first segment that does not resolve yields the absent value for the
// remainder of the walk.
func (v Value) Resolve(path string) Value {
	path = strings.TrimSpace(path)
	if path == "" {
		return v
	}
	current := v
	for _, segment := range strings.Split(path, ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return Absent()
		}
		current = current.Field(segment)
		if current.IsAbsent() {
			return Absent()
		}
	}
	return current
}

// FromAny converts loosely-typed dynamic data (the shape produced by
// encoding/json and yaml unmarshalling into any) to a Value tree. Map keys
// are emitted in sorted order since Go maps carry none of their own.
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Absent()
	case Value:
		return typed
	case string:
		return Scalar(typed)
	case bool:
		return Scalar(strconv.FormatBool(typed))
	case int:
		return Scalar(strconv.Itoa(typed))
	case int64:
		return Scalar(strconv.FormatInt(typed, 10))
	case float64:
		return Scalar(formatFloat(typed))
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, FromAny(item))
		}
		return Sequence(items...)
	case map[string]any:
		names := make([]string, 0, len(typed))
		for name := range typed {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(names))
		for _, name := range names {
			fields = append(fields, Field{Name: name, Value: FromAny(typed[name])})
		}
		return Record(fields...)
	case map[string]string:
		names := make([]string, 0, len(typed))
		for name := range typed {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(names))
		for _, name := range names {
			fields = append(fields, Field{Name: name, Value: Scalar(typed[name])})
		}
		return Record(fields...)
	case []string:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			items = append(items, Scalar(item))
		}
		return Sequence(items...)
	default:
		return Absent()
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
