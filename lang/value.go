package lang

import "strconv"

// Kind indicates which variant a Value holds.
type Kind int

const (
	// KindNull is the zero Value; it marks an absent result and is never
	// produced by a successful expression.
	KindNull Kind = iota

	// KindNumber is a signed 32-bit integer.
	KindNumber

	// KindString is an owned byte sequence with no enforced encoding.
	KindString

	// KindList is an ordered sequence of Values.
	KindList
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged variant holding a number, string, or list. The zero
// Value is null.
//
// Lists are owned by the Value that produced them; [Value.Copy] duplicates
// list contents recursively.
type Value struct {
	kind Kind
	num  int32
	str  string
	list []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Number returns a numeric Value.
func Number(n int32) Value { return Value{kind: KindNumber, num: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List returns a list Value holding deep copies of the given elements.
func List(elems ...Value) Value {
	list := make([]Value, len(elems))
	for i := range elems {
		list[i] = elems[i].Copy()
	}

	return listValue(list)
}

// listValue wraps an element slice without copying. The caller must not
// retain the slice.
func listValue(elems []Value) Value {
	return Value{kind: KindList, list: elems}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric payload.
// Calling it on a non-number is an internal error and panics; the
// evaluator guards type compatibility before any payload access.
func (v Value) Number() int32 {
	v.assertKind(KindNumber)

	return v.num
}

// Text returns the string payload.
func (v Value) Text() string {
	v.assertKind(KindString)

	return v.str
}

// List returns the element slice. Callers must not mutate it; use
// [Value.Copy] to obtain an independent value.
func (v Value) List() []Value {
	v.assertKind(KindList)

	return v.list
}

// Copy returns a deep copy of the value. Lists are duplicated recursively;
// numbers and strings are copied by value.
func (v Value) Copy() Value {
	if v.kind != KindList {
		return v
	}

	list := make([]Value, len(v.list))
	for i := range v.list {
		list[i] = v.list[i].Copy()
	}

	return listValue(list)
}

// Truthy reports the truthiness used by the ternary operator: any string or
// list is true, a number is true when nonzero, and null is false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString, KindList:
		return true
	case KindNumber:
		return v.num != 0
	case KindNull:
		return false
	default:
		panic("lang: unreachable value kind " + strconv.Itoa(int(v.kind)))
	}
}

// String renders the value for diagnostics and logging. It is not the
// expansion form; see the expander's flattening for that.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindNumber:
		return strconv.FormatInt(int64(v.num), 10)
	case KindString:
		return strconv.Quote(v.str)
	case KindList:
		s := "["
		for i := range v.list {
			if i > 0 {
				s += ","
			}

			s += v.list[i].String()
		}

		return s + "]"
	default:
		return "<invalid>"
	}
}

func (v Value) assertKind(k Kind) {
	if v.kind != k {
		panic("lang: " + v.kind.String() + " value accessed as " + k.String())
	}
}
