package sanitize

import (
	"github.com/xeipuuv/gojsonschema"
)

// subjectiveSchema describes the payload the scoring prompt asks for. The
// check is advisory: the composer coerces whatever arrives, so deviations
// are reported as warnings instead of rejecting the payload.
const subjectiveSchema = `{
	"type": "object",
	"properties": {
		"education": {"type": "integer", "minimum": 0, "maximum": 100},
		"projects": {"type": "integer", "minimum": 0, "maximum": 100},
		"ats": {"type": "integer", "minimum": 0, "maximum": 100},
		"grammar": {"type": "integer", "minimum": 0, "maximum": 100},
		"soft_skills": {"type": "integer", "minimum": 0, "maximum": 100},
		"readability": {"type": "integer", "minimum": 0, "maximum": 100},
		"cultural_fit": {"type": "integer", "minimum": 0, "maximum": 100},
		"domain_relevance": {"type": "integer", "minimum": 0, "maximum": 100},
		"certifications_score": {"type": "integer", "minimum": 0, "maximum": 100},
		"sentiment": {
			"type": "object",
			"properties": {
				"overall": {"type": "string"},
				"tone": {"type": "string"},
				"soft_skills_extraction": {"type": "array", "items": {"type": "string"}}
			}
		},
		"strengths": {
			"type": "object",
			"properties": {
				"technical": {"type": "array", "items": {"type": "string"}},
				"soft": {"type": "array", "items": {"type": "string"}}
			}
		},
		"weaknesses": {
			"type": "object",
			"properties": {
				"technical": {"type": "array", "items": {"type": "string"}},
				"soft": {"type": "array", "items": {"type": "string"}}
			}
		},
		"recommendation": {"type": "string"},
		"additional_notes": {"type": "string"}
	}
}`

// SchemaWarnings validates the sanitized payload against the expected
// subjective-score schema and returns human-readable deviations. An empty
// slice means the payload conforms. Validation failures of the validator
// itself are reported as a single warning; nothing here is fatal.
func SchemaWarnings(payload map[string]any) []string {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(subjectiveSchema),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		return []string{"schema validation unavailable: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}

	warnings := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warnings = append(warnings, desc.String())
	}
	return warnings
}
