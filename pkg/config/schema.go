package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// manifestSchema is the canonical JSON schema for amalgam.yaml.
//
//go:embed schema.json
var manifestSchema string

// SchemaIssue is one schema violation, positioned by JSON-path-ish field
// reference.
type SchemaIssue struct {
	Field       string `json:"field"       yaml:"field"`
	Description string `json:"description" yaml:"description"`
}

// ValidateManifest checks a YAML manifest file against the embedded
// schema. A nil issue slice means the manifest is valid. The error return
// covers unreadable or unparseable input, not schema violations.
func ValidateManifest(path string) ([]SchemaIssue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var doc any

	unmarshalErr := yaml.Unmarshal(data, &doc)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("parse manifest: %w", unmarshalErr)
	}

	schemaLoader := gojsonschema.NewStringLoader(manifestSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, validateErr := gojsonschema.Validate(schemaLoader, docLoader)
	if validateErr != nil {
		return nil, fmt.Errorf("schema validation: %w", validateErr)
	}

	if result.Valid() {
		return nil, nil
	}

	issues := make([]SchemaIssue, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		issues = append(issues, SchemaIssue{
			Field:       resultErr.Field(),
			Description: resultErr.Description(),
		})
	}

	return issues, nil
}
