package schema

// FieldType identifies the primitive or composite type a field accepts.
type FieldType string

const (
	// TypeString accepts string values, optionally restricted by Enum.
	TypeString FieldType = "string"
	// TypeInt accepts integral numbers, optionally bounded by Min/Max.
	TypeInt FieldType = "integer"
	// TypeFloat accepts any number, optionally bounded by Min/Max.
	TypeFloat FieldType = "number"
	// TypeBool accepts booleans.
	TypeBool FieldType = "boolean"
	// TypeObject accepts a nested object described by Fields.
	TypeObject FieldType = "object"
	// TypeArray accepts a homogeneous list whose element shape is Elem.
	TypeArray FieldType = "array"
)

// Field describes one field of a schema: its type, value domain and
// optionality. Object fields recurse through Fields; array fields through
// Elem.
type Field struct {
	Type     FieldType
	Optional bool

	// Enum restricts a string field to a closed set of values.
	Enum []string

	// Min and Max bound numeric fields inclusively. Nil means unbounded.
	Min *float64
	Max *float64

	// Fields describes the members of an object field.
	Fields map[string]Field

	// Elem describes the element shape of an array field.
	Elem *Field

	// Desc is free-text guidance rendered into generation prompts. It has
	// no effect on validation.
	Desc string
}

// Schema declares the expected shape of a structured generation result.
type Schema struct {
	// Name identifies the schema in prompts and error messages.
	Name string

	Fields map[string]Field
}

// Bound returns a pointer to v, for use as a Field Min or Max.
func Bound(v float64) *float64 {
	return &v
}

// String returns a string field.
func String() Field {
	return Field{Type: TypeString}
}

// StringEnum returns a string field restricted to the given values.
func StringEnum(values ...string) Field {
	return Field{Type: TypeString, Enum: values}
}

// IntRange returns an integer field bounded to [min, max].
func IntRange(min, max float64) Field {
	return Field{Type: TypeInt, Min: Bound(min), Max: Bound(max)}
}

// Object returns an object field with the given members.
func Object(fields map[string]Field) Field {
	return Field{Type: TypeObject, Fields: fields}
}

// Array returns an array field whose elements match elem.
func Array(elem Field) Field {
	return Field{Type: TypeArray, Elem: &elem}
}

// Optional marks a copy of f as optional.
func Optional(f Field) Field {
	f.Optional = true
	return f
}
