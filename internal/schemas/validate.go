// Package schemas provides JSON Schema validation for the envelope returned
// by the optimization model.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed optimize_result.json
var schemaFiles embed.FS

var (
	optimizeSchema     *gojsonschema.Schema
	optimizeSchemaOnce sync.Once
	optimizeSchemaErr  error
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateOptimizeResult checks that jsonText matches the expected
// {data, analysis, suggestions} envelope. A malformed document returns a
// plain error; a well-formed one that violates the schema returns a
// *ValidationError listing each offending field.
func ValidateOptimizeResult(jsonText string) error {
	schema, err := loadOptimizeSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("failed to validate response: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}

func loadOptimizeSchema() (*gojsonschema.Schema, error) {
	optimizeSchemaOnce.Do(func() {
		data, err := schemaFiles.ReadFile("optimize_result.json")
		if err != nil {
			optimizeSchemaErr = fmt.Errorf("failed to read embedded schema: %w", err)
			return
		}
		optimizeSchema, optimizeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if optimizeSchemaErr != nil {
			optimizeSchemaErr = fmt.Errorf("failed to compile schema: %w", optimizeSchemaErr)
		}
	})
	return optimizeSchema, optimizeSchemaErr
}
