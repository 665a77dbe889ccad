package api

// FieldType enumerates the primitive types a shape field can carry.
type FieldType string

const (
	FieldInteger  FieldType = "integer"
	FieldString   FieldType = "string"
	FieldBoolean  FieldType = "boolean"
	FieldDateTime FieldType = "date-time"
	FieldArray    FieldType = "array"
)

// Field describes one field of a record shape.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	ReadOnly    bool // server-generated, never accepted as input
	MinLength   int  // strings only
	MaxLength   int  // strings only; 0 means unbounded
	Description string
}

// Shape is a named, structurally validated set of fields used at one API
// boundary point. Shapes are pure data: the validator and the
// documentation exporter are their two consumers.
type Shape struct {
	Name        string
	Description string
	Fields      []Field
	// MinFields requires at least this many declared fields to be
	// present in the request body. Used by the partial-update shape.
	MinFields int
}

// Field returns the field with the given name, if declared.
func (s *Shape) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// TaskShape is the read shape: every field of a persisted task.
var TaskShape = Shape{
	Name:        "Task",
	Description: "A persisted task.",
	Fields: []Field{
		{Name: "id", Type: FieldInteger, Required: true, ReadOnly: true, Description: "Server-generated identifier."},
		{Name: "name", Type: FieldString, Required: true, MinLength: 1, MaxLength: 255},
		{Name: "completed", Type: FieldBoolean, Required: true},
		{Name: "createdAt", Type: FieldDateTime, Required: true, ReadOnly: true},
		{Name: "updatedAt", Type: FieldDateTime, Required: true, ReadOnly: true},
	},
}

// TaskCreateShape is the create shape: all client-writable fields.
var TaskCreateShape = Shape{
	Name:        "TaskCreate",
	Description: "Fields accepted when creating a task.",
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true, MinLength: 1, MaxLength: 255},
		{Name: "completed", Type: FieldBoolean, Description: "Defaults to false."},
	},
}

// TaskUpdateShape is the partial-update shape: the create fields, all
// optional, with at least one required per request.
var TaskUpdateShape = Shape{
	Name:        "TaskUpdate",
	Description: "Partial update; at least one field must be present.",
	Fields: []Field{
		{Name: "name", Type: FieldString, MinLength: 1, MaxLength: 255},
		{Name: "completed", Type: FieldBoolean},
	},
	MinFields: 1,
}

// ErrorShape documents the uniform error body.
var ErrorShape = Shape{
	Name:        "Error",
	Description: "Uniform error body.",
	Fields: []Field{
		{Name: "error", Type: FieldString, Required: true, Description: "Machine-readable error code."},
		{Name: "message", Type: FieldString},
	},
}

// ValidationErrorShape documents the 422 body with structured details.
var ValidationErrorShape = Shape{
	Name:        "ValidationError",
	Description: "Validation failure with per-field details.",
	Fields: []Field{
		{Name: "error", Type: FieldString, Required: true},
		{Name: "message", Type: FieldString},
		{Name: "details", Type: FieldArray, Description: "Per-field failures: field, rule, message."},
	},
}
