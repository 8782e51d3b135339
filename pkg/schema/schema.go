// Package schema validates serialized parse results against the embedded JSON Schema.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed result.schema.json
var resultSchema string

// ValidationError lists every schema violation found in one document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

// Schema returns the embedded result schema.
func Schema() (content string) {
	content = resultSchema
	return content
}

// Validate checks a JSON document. Schema violations are returned as *ValidationError; documents that
// are not JSON at all produce an ordinary error.
func Validate(document []byte) (err error) {
	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	var result *gojsonschema.Result
	result, err = gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		err = errors.Wrap(err, "failed to validate document")
		return err
	}

	if result.Valid() {
		return err
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	err = validationErr
	return err
}

// ValidateFile reads and validates the JSON document at path.
func ValidateFile(path string) (err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", path)
		return err
	}

	err = Validate(data)
	return err
}
