// internal/persona/schema.go
package persona

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var ErrConfigInvalid = errors.New("PERSONA_CONFIG_INVALID")

// configSchema bounds every preference field. Weights and importances live in
// [0,1], party and sentiment preferences in [-1,1], confidence thresholds in
// [0,100].
const configSchema = `{
	"type": "object",
	"required": ["donations", "sustainability", "leadership", "news"],
	"properties": {
		"donations": {
			"type": "object",
			"required": ["partyPreference", "amountSensitivity"],
			"properties": {
				"partyPreference": {"type": "number", "minimum": -1, "maximum": 1},
				"amountSensitivity": {"type": "number", "minimum": 0, "maximum": 1}
			}
		},
		"sustainability": {
			"type": "object",
			"required": ["environmentalWeight", "socialWeight", "governanceWeight", "preferHigh", "importance"],
			"properties": {
				"environmentalWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"socialWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"governanceWeight": {"type": "number", "minimum": 0, "maximum": 1},
				"preferHigh": {"type": "boolean"},
				"importance": {"type": "number", "minimum": 0, "maximum": 1}
			}
		},
		"leadership": {
			"type": "object",
			"required": ["preferredLeanings", "confidenceThreshold"],
			"properties": {
				"preferredLeanings": {
					"type": "array",
					"minItems": 1,
					"items": {"type": "string"}
				},
				"confidenceThreshold": {"type": "number", "minimum": 0, "maximum": 100}
			}
		},
		"news": {
			"type": "object",
			"required": ["sentimentPreference", "importance"],
			"properties": {
				"sentimentPreference": {"type": "number", "minimum": -1, "maximum": 1},
				"importance": {"type": "number", "minimum": 0, "maximum": 1}
			}
		}
	}
}`

// ValidateConfigs checks every archetype's preference table against the bounds
// schema. Called once at startup; a violation is a configuration error, not a
// runtime condition.
func ValidateConfigs() error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)

	for _, a := range All() {
		documentLoader := gojsonschema.NewGoLoader(configs[a])

		result, err := gojsonschema.Validate(schemaLoader, documentLoader)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, a, err)
		}
		if !result.Valid() {
			errs := make([]string, len(result.Errors()))
			for i, desc := range result.Errors() {
				errs[i] = desc.String()
			}
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, a, errs)
		}
	}
	return nil
}
