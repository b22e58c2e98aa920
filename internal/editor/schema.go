package editor

// FieldKind tells the admin UI which input widget to render for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindURL      FieldKind = "url"
	KindImage    FieldKind = "image"
	KindList     FieldKind = "list"
	KindNumber   FieldKind = "number"
)

// Field describes one editable payload field of a content type.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
}

// Schema is the ordered field list the editor renders for a content type.
type Schema struct {
	TypeName string  `json:"type_name"`
	Fields   []Field `json:"fields"`
}

// RequiredKeys returns the keys the schema marks as required.
func (s Schema) RequiredKeys() []string {
	var keys []string
	for _, f := range s.Fields {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// HasField reports whether the schema declares the given payload key.
func (s Schema) HasField(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
