// Package scoring computes candidate scores by blending deterministic
// sub-scores with subjective values extracted from a generative model.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/candidate-scorer/internal/types"
)

// Metric is a deterministic sub-score in [0,100]. Exact is false when the
// value was degraded to a default because the input was empty or unusable,
// so a zero from a failed computation stays distinguishable from a real zero.
type Metric struct {
	Value int
	Exact bool
}

// DensityMetric pairs a keyword density record with the Exact flag.
type DensityMetric struct {
	Density types.KeywordDensity
	Exact   bool
}

// SkillScore computes the case-insensitive overlap between candidate skills
// and required skills as a percentage of the required set, floored to an
// integer. An empty required set yields a degraded zero.
func SkillScore(candidateSkills, requiredSkills []string) Metric {
	required := normalizeSkillSet(requiredSkills)
	if len(required) == 0 {
		return Metric{Value: 0, Exact: false}
	}

	candidate := normalizeSkillSet(candidateSkills)
	matched := 0
	for skill := range required {
		if candidate[skill] {
			matched++
		}
	}

	score := int(float64(matched) / float64(len(required)) * 100)
	return Metric{Value: clamp(score, 0, 100), Exact: true}
}

// ExperienceScore maps years of experience onto [0,100], saturating at
// capYears. Negative years degrade to zero; a non-positive cap falls back
// to the default.
func ExperienceScore(years float64, capYears int) Metric {
	if capYears <= 0 {
		capYears = DefaultWeights().ExperienceCapYears
	}
	if years < 0 {
		return Metric{Value: 0, Exact: false}
	}

	score := int(math.Round(years / float64(capYears) * 100))
	if score > 100 {
		score = 100
	}
	return Metric{Value: clamp(score, 0, 100), Exact: true}
}

// KeywordDensity counts how many required keywords appear as case-insensitive
// substrings of the resume text. An empty keyword list yields a degraded
// all-zero record.
func KeywordDensity(resumeText string, keywords []string) DensityMetric {
	if len(keywords) == 0 {
		return DensityMetric{Density: types.KeywordDensity{}, Exact: false}
	}

	resumeLower := strings.ToLower(resumeText)
	matched := 0
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(resumeLower, strings.ToLower(kw)) {
			matched++
		}
	}

	required := len(keywords)
	percentage := int(math.Round(float64(matched) / float64(required) * 100))
	return DensityMetric{
		Density: types.KeywordDensity{
			RequiredKeywords: required,
			Matched:          matched,
			Percentage:       clamp(percentage, 0, 100),
		},
		Exact: true,
	}
}

// MatchSkills splits the required skills into matched and missing sets
// against the candidate's skills, case-insensitively. Both result slices
// are lowercased and sorted.
func MatchSkills(candidateSkills, requiredSkills []string) (matched, missing []string) {
	candidate := normalizeSkillSet(candidateSkills)
	matched = make([]string, 0)
	missing = make([]string, 0)
	seen := make(map[string]bool)
	for _, skill := range requiredSkills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if candidate[normalized] {
			matched = append(matched, normalized)
		} else {
			missing = append(missing, normalized)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func normalizeSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
