package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema validates JSON documents against a JSON Schema that is compiled
// lazily on first use.
type Schema struct {
	name   string
	source string

	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewSchema creates a Schema from an inline JSON Schema document. The name is
// used as the resource URL and appears in validation errors.
func NewSchema(name, source string) *Schema {
	return &Schema{name: name, source: source}
}

// Name returns the schema resource name.
func (s *Schema) Name() string {
	return s.name
}

// Compile compiles the schema if it has not been compiled yet and returns
// the compilation error, if any.
func (s *Schema) Compile() error {
	s.once.Do(func() {
		s.schema, s.err = s.compile()
	})
	return s.err
}

// ValidateJSON decodes data and validates the resulting document.
func (s *Schema) ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return s.Validate(doc)
}

// Validate validates an already decoded JSON document. A failed validation
// is reported as *Error.
func (s *Schema) Validate(doc interface{}) error {
	if err := s.Compile(); err != nil {
		return fmt.Errorf("schema %s: compilation error: %w", s.name, err)
	}

	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}

	result := &Error{Schema: s.name}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		parseSchemaErrors(validationErr, result)
	} else {
		result.add(&FieldError{Code: ErrCodeSchema, Message: err.Error()})
	}
	return result
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(s.name, strings.NewReader(s.source)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(s.name)
}

// parseSchemaErrors flattens the cause tree into field errors.
func parseSchemaErrors(err *jsonschema.ValidationError, result *Error) {
	if len(err.Causes) == 0 {
		result.add(&FieldError{
			Field:   extractFieldFromPath(err.InstanceLocation),
			Code:    codeFromKeyword(err.KeywordLocation),
			Message: err.Message,
		})
		return
	}

	for _, cause := range err.Causes {
		parseSchemaErrors(cause, result)
	}
}

// extractFieldFromPath converts a JSON Pointer into dot notation.
func extractFieldFromPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}

// codeFromKeyword maps the failing keyword to an error code.
func codeFromKeyword(keywordLocation string) string {
	keyword := keywordLocation
	if i := strings.LastIndex(keywordLocation, "/"); i >= 0 {
		keyword = keywordLocation[i+1:]
	}
	switch keyword {
	case "required":
		return ErrCodeRequired
	case "type":
		return ErrCodeType
	case "enum":
		return ErrCodeEnum
	default:
		return ErrCodeSchema
	}
}
