package forms

// Option is one selectable value of a Choice field.
type Option struct {
	Value string
	Label string
}

type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Optional bool
	Options  []Option
	// VisibleWhen derives visibility from the current values; nil means
	// always visible. Hidden fields are still part of the payload.
	VisibleWhen func(values map[string]string) bool
}

type Schema struct {
	Name   string
	Fields []Field
	index  map[string]int
}

func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{Name: name, Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Visible reports whether f is shown for the given values.
func (f Field) Visible(values map[string]string) bool {
	return f.VisibleWhen == nil || f.VisibleWhen(values)
}

func equals(field, value string) func(map[string]string) bool {
	return func(values map[string]string) bool {
		return values[field] == value
	}
}

func oneOf(field string, accepted ...string) func(map[string]string) bool {
	return func(values map[string]string) bool {
		for _, a := range accepted {
			if values[field] == a {
				return true
			}
		}
		return false
	}
}
