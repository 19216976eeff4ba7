package config

import (
	"fmt"
	"strings"

	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes azops.yaml. Unknown keys are rejected so that
// typos such as "subscription" surface instead of being silently ignored.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "version": {"type": "integer"},
    "subscription_id": {"type": "string", "pattern": "^[0-9a-fA-F-]{36}$"},
    "resource_group": {"type": "string", "minLength": 1, "maxLength": 90},
    "automation_account": {"type": "string", "minLength": 1},
    "output": {"type": "string", "enum": ["table", "json", "yaml"]},
    "credential": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "tenant_id": {"type": "string"},
        "client_id": {"type": "string"},
        "client_secret": {"type": "string"},
        "use_managed_identity": {"type": "boolean"},
        "user_assigned_identity_id": {"type": "string"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateDocument checks a decoded YAML document against documentSchema
func validateDocument(doc interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return dserrors.ConfigError{
			Message:    "configuration does not match the azops.yaml schema",
			Suggestion: "Fix the following:\n  - " + strings.Join(errorMessages, "\n  - "),
		}
	}
	return nil
}
