// Package validation checks request bodies against the JSON Schemas embedded in schemas/.
package validation

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names, matching the files under schemas/
const (
	PostCreate = "post_create"
	PostUpdate = "post_update"
	Vote       = "vote"
	UserCreate = "user_create"
	Login      = "login"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaValidation is wrapped by every *SchemaError
var ErrSchemaValidation = errors.New("request does not match schema")

// ErrUnknownSchema is returned when no embedded schema has the given name
var ErrUnknownSchema = errors.New("unknown schema")

// SchemaError lists the ways a document failed its schema
type SchemaError struct {
	Schema  string
	Details []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(e.Details, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaValidation
}

// schemas is compiled once at init; a broken embedded schema is a build defect
var schemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*gojsonschema.Schema {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		panic(fmt.Sprintf("validation: failed to read embedded schemas: %v", err))
	}

	compiled := make(map[string]*gojsonschema.Schema, len(entries))
	for _, entry := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("validation: failed to read %s: %v", entry.Name(), err))
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			panic(fmt.Sprintf("validation: failed to compile %s: %v", entry.Name(), err))
		}
		compiled[strings.TrimSuffix(entry.Name(), ".json")] = schema
	}
	return compiled
}

// Validate checks a JSON document against the named schema.
// Returns a *SchemaError when the document is valid JSON but does not match.
func Validate(name string, document []byte) error {
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate %s: %w", name, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &SchemaError{Schema: name, Details: details}
	}

	return nil
}
