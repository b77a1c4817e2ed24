// Package jsonschema checks decoded documents against a compiled JSON Schema.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is a single schema failure.
type Violation struct {
	// Pointer is the JSON pointer of the offending value ("" for the root).
	Pointer string
	Message string
}

func (v *Violation) Error() string {
	if v.Pointer == "" {
		return fmt.Sprintf("validation error at document root: %s", v.Message)
	}
	return fmt.Sprintf("validation error at %s: %s", v.Pointer, v.Message)
}

// ValidationErrors represents a collection of schema violations
type ValidationErrors []*Violation

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, v := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(v.Error())
	}
	return sb.String()
}

// Schema is a compiled schema, safe for concurrent use.
type Schema struct {
	name   string
	schema *jsonschema.Schema
}

// Compile compiles schema source registered under name.
func Compile(name string, source []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource(name, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Schema{name: name, schema: schema}, nil
}

// MustCompile is Compile that panics on error. Use it for embedded schemas.
func MustCompile(name string, source []byte) *Schema {
	s, err := Compile(name, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// Validate decodes a JSON document and checks it against the schema.
// Schema failures are returned as ValidationErrors.
func (s *Schema) Validate(doc []byte) error {
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return s.ValidateValue(v)
}

// ValidateValue checks an already decoded value (as produced by
// encoding/json into an interface{}) against the schema.
func (s *Schema) ValidateValue(v interface{}) error {
	err := s.schema.Validate(v)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return leaves(validationErr)
	}
	return err
}

// leaves flattens the cause tree into its most specific failures.
func leaves(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		return ValidationErrors{{Pointer: err.InstanceLocation, Message: err.Message}}
	}

	var out ValidationErrors
	for _, cause := range err.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}
