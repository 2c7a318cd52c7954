package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ArticleSchema describes one record accepted by the article loader.
const ArticleSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"number": {"type": "integer", "minimum": 0},
		"title":  {"type": "string", "minLength": 1, "pattern": "\\S"},
		"text":   {"type": "string", "minLength": 1, "pattern": "\\S"},
		"url":    {"type": "string"}
	},
	"required": ["title", "text"]
}`

var articleSchemaLoader = gojsonschema.NewStringLoader(ArticleSchema)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateDocument validates doc (any JSON-encodable Go value) against a JSON schema string.
func ValidateDocument(schemaJSON string, doc interface{}) (*ValidationResult, error) {
	return validate(gojsonschema.NewStringLoader(schemaJSON), doc)
}

// ValidateArticle validates a decoded article record against ArticleSchema.
func ValidateArticle(record map[string]interface{}) *ValidationResult {
	result, err := validate(articleSchemaLoader, record)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "SCHEMA_ERROR",
		}}}
	}
	if url, ok := record["url"].(string); ok && strings.TrimSpace(url) != "" && !ValidateURL(strings.TrimSpace(url)) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "url",
			Message: "value must be an http(s) URL",
			Code:    "PATTERN_MISMATCH",
		})
	}
	return result
}

func validate(schema gojsonschema.JSONLoader, doc interface{}) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
