// Package normalize coerces loosely structured completion output into strict typed records.
//
// Each target shape is described by a declarative table: the wrapper keys a
// response may be nested under, and for every field the aliases accepted in
// priority order, the kind of value expected and the default used when absent.
// Coercion runs as an ordered list of rules (unwrap, coalesce, kind coercion,
// skills, enum folding); the result is then checked against the embedded JSON
// Schema and decoded into the Go type.
package normalize

// Kind is the value kind a field is coerced to
type Kind int

const (
	// KindString is a string; absent means "" unless the field is required
	KindString Kind = iota
	// KindOptionalString is a string that is omitted when absent or empty
	KindOptionalString
	// KindNullableString is a string or null; absent means null
	KindNullableString
	// KindStringList is a list of strings; a lone value becomes a one-item list
	KindStringList
	// KindNumber is a float; numeric strings are parsed
	KindNumber
	// KindBool accepts booleans and "true"/"false" strings
	KindBool
	// KindEnum is a string folded case-insensitively onto Field.Enum
	KindEnum
	// KindObject is a nested object described by Field.Shape
	KindObject
	// KindObjectList is a list of objects described by Field.Shape
	KindObjectList
	// KindSkills is a résumé skills section: {"categories": [...]}
	KindSkills
)

// maxUnwrapDepth bounds how many wrapper containers are peeled off
const maxUnwrapDepth = 3

// defaultItemKeys reduce an object to a string when no field-specific keys are given
var defaultItemKeys = []string{"text", "name", "value", "title"}

// Field describes one canonical field of a shape
type Field struct {
	Name     string
	Aliases  []string
	Kind     Kind
	Default  any
	Required bool
	// Inherit copies the named field of the enclosing object when this one is absent
	Inherit string
	// ItemKeys are tried in order to reduce an object to a string
	ItemKeys []string
	Enum     []string
	Shape    *Shape
}

// Shape describes a target record
type Shape struct {
	Name     string
	Schema   string
	Wrappers []string
	Fields   []Field
}

func (f *Field) keys() []string {
	return append([]string{f.Name}, f.Aliases...)
}

func (f *Field) itemKeys() []string {
	if len(f.ItemKeys) > 0 {
		return f.ItemKeys
	}
	return defaultItemKeys
}

// ownsKey reports whether key is a canonical name or alias of one of the shape's fields
func (s *Shape) ownsKey(key string) bool {
	for i := range s.Fields {
		for _, k := range s.Fields[i].keys() {
			if k == key {
				return true
			}
		}
	}
	return false
}
