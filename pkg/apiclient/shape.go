package apiclient

import "strings"

// Primitive shape names.
const (
	Boolean = "Boolean"
	Integer = "Integer"
	Number  = "Number"
	String  = "String"
	Date    = "Date"
	Blob    = "Blob"
)

// ShapeKind classifies a return shape.
type ShapeKind int

const (
	KindRaw ShapeKind = iota
	KindPrimitive
	KindSequence
	KindModel
)

// Shape declares how decoded JSON is coerced into the value returned to the
// caller. The zero Shape is Raw: the decoded value is returned unchanged.
type Shape struct {
	kind ShapeKind
	name string
	elem *Shape
}

// Raw returns decoded JSON as-is.
var Raw = Shape{}

// Primitive returns the shape for one of Boolean, Integer, Number, String, Date or Blob.
func Primitive(name string) Shape { return Shape{kind: KindPrimitive, name: name} }

// SequenceOf returns a shape coercing every element of a JSON array into elem.
func SequenceOf(elem Shape) Shape {
	e := elem
	return Shape{kind: KindSequence, elem: &e}
}

// Model returns a shape resolved through the registry under tag.
func Model(tag string) Shape { return Shape{kind: KindModel, name: strings.TrimSpace(tag)} }

// ParseShape reads the textual form used in endpoint catalogs: "Integer",
// "[String]", "Login". An empty string is Raw; names that are not primitives
// are model tags.
func ParseShape(s string) Shape {
	s = strings.TrimSpace(s)
	if s == "" {
		return Raw
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return SequenceOf(ParseShape(s[1 : len(s)-1]))
	}
	switch s {
	case Boolean, Integer, Number, String, Date, Blob:
		return Primitive(s)
	}
	return Model(s)
}

func (s Shape) Kind() ShapeKind { return s.kind }

// Name is the primitive name or model tag; empty for Raw and sequences.
func (s Shape) Name() string { return s.name }

// Elem returns the element shape of a sequence.
func (s Shape) Elem() (Shape, bool) {
	if s.kind != KindSequence || s.elem == nil {
		return Raw, false
	}
	return *s.elem, true
}

func (s Shape) String() string {
	switch s.kind {
	case KindPrimitive, KindModel:
		return s.name
	case KindSequence:
		if s.elem == nil {
			return "[]"
		}
		return "[" + s.elem.String() + "]"
	default:
		return ""
	}
}
