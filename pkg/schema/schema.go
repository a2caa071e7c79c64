// Package schema describes record shapes as plain data and validates untrusted
// documents against them.
//
// A Schema is an ordered list of fields, each carrying a Rule. Rules never hold
// behaviour, so schemas can be copied and transformed (see Partial and Pick)
// without touching the original.
package schema

import "regexp"

// Document is an untyped JSON-like object.
type Document = map[string]any

type Type int

const (
	String Type = iota + 1
	Integer
	Date
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Date:
		return "date"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Format names a go-playground/validator tag applied to string values.
type Format string

const (
	FormatEmail   Format = "email"
	FormatHTTPURL Format = "http_url"
	FormatURI     Format = "uri"
)

// Code identifies the kind of rule that failed.
type Code string

const (
	CodeRequired Code = "required"
	CodeType     Code = "type"
	CodeEmpty    Code = "empty"
	CodeMin      Code = "min"
	CodeMax      Code = "max"
	CodeInteger  Code = "integer"
	CodeUnsafe   Code = "unsafe"
	CodeFormat   Code = "format"
	CodePattern  Code = "pattern"
	CodeUnique   Code = "unique"
	CodeGreater  Code = "greater"
	CodeMinKeys  Code = "min_keys"
	CodeAnyOf    Code = "any_of"
)

// MaxSafeInteger is the largest integer a JSON client can represent exactly
// (2^53-1). Integer rules reject anything larger in magnitude.
const MaxSafeInteger = 1<<53 - 1

// Messages overrides the generated message for a failure code.
type Messages map[Code]string

// Rule constrains a single value.
//
// Min and Max bound the rune count of strings, the value of integers and the
// length of arrays.
type Rule struct {
	Type       Type
	Required   bool
	Default    any
	Trim       bool
	AllowEmpty bool
	Min        *int
	Max        *int
	Format     Format
	Pattern    *regexp.Regexp
	Unique     bool
	Items      *Rule
	Object     *Schema
	// Greater names a sibling date field this value must be strictly after.
	Greater  string
	Messages Messages
}

type Field struct {
	Name string
	Rule Rule
}

// Schema describes an object. MinKeys and AnyOf count recognised fields
// present in the input, before any field-level rule runs.
type Schema struct {
	Fields   []Field
	MinKeys  int
	AnyOf    []string
	Messages Messages
}

// Int returns a pointer to n, for Min and Max.
func Int(n int) *int { return &n }

// Field returns the named field and whether it exists.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Present lists the schema's field names found in doc, in schema order.
func (s Schema) Present(doc Document) []string {
	names := make([]string, 0, len(doc))
	for _, f := range s.Fields {
		if _, ok := doc[f.Name]; ok {
			names = append(names, f.Name)
		}
	}
	return names
}

// Partial derives an update schema: every top-level field becomes optional and
// at least one recognised field must be present, else message is reported.
func Partial(s Schema, message string) Schema {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		f.Rule.Required = false
		fields[i] = f
	}
	return Schema{
		Fields:   fields,
		MinKeys:  1,
		AnyOf:    append([]string(nil), s.AnyOf...),
		Messages: withMessage(s.Messages, CodeMinKeys, message),
	}
}

// Pick keeps only the named fields, preserving their rules and order.
func Pick(s Schema, names ...string) Schema {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	fields := make([]Field, 0, len(names))
	for _, f := range s.Fields {
		if _, ok := keep[f.Name]; ok {
			fields = append(fields, f)
		}
	}
	return Schema{Fields: fields, Messages: withMessage(s.Messages, "", "")}
}

func withMessage(src Messages, code Code, message string) Messages {
	out := make(Messages, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	if code != "" {
		out[code] = message
	}
	return out
}
