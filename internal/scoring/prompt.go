package scoring

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-scorer/internal/prompts"
	"github.com/jonathan/candidate-scorer/internal/types"
)

// BuildPrompt renders the scoring instruction template with candidate facts
// and the precomputed deterministic values. The template tells the model not
// to recompute them, so both sides always agree on the deterministic part.
// Missing optional inputs render as empty strings; this never fails.
func BuildPrompt(candidate types.CandidateProfile, job *types.JobPosting, resumeText string, skill, experience Metric, density types.KeywordDensity) string {
	template := prompts.MustGet("scoring.json", "score-candidate")

	description := ""
	if job != nil {
		description = job.Description
	}

	densityJSON, err := json.Marshal(density)
	if err != nil {
		densityJSON = []byte("{}")
	}

	return prompts.Format(template, map[string]string{
		"Skills":          strings.Join(candidate.Skills, ", "),
		"Experience":      strconv.Itoa(experience.Value),
		"ResumeText":      resumeText,
		"JobDescription":  description,
		"SkillsScore":     strconv.Itoa(skill.Value),
		"ExperienceScore": strconv.Itoa(experience.Value),
		"KeywordDensity":  string(densityJSON),
	})
}
