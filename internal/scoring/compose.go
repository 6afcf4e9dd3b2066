package scoring

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/candidate-scorer/internal/types"
)

// subjectiveKeys are the numeric fields expected from the model, in breakdown
// order. certifications_score is coerced and stored but excluded from the
// subjective mean.
var subjectiveKeys = []string{
	"education", "projects", "ats", "grammar", "soft_skills",
	"readability", "cultural_fit", "domain_relevance", "certifications_score",
}

// meanKeys are the subjective fields that participate in the subjective
// component mean.
var meanKeys = []string{
	"education", "projects", "ats", "grammar",
	"soft_skills", "readability", "cultural_fit", "domain_relevance",
}

// Composer merges deterministic metrics and the model's subjective payload
// into a bounded CandidateScore.
type Composer struct {
	weights Weights
}

// NewComposer creates a Composer with the given weights.
func NewComposer(weights Weights) *Composer {
	return &Composer{weights: weights}
}

// Input carries everything Compose needs. Subjective may be nil or empty when
// the model call failed; Degraded records that fact so the persisted score
// stays identifiable.
type Input struct {
	Candidate  types.CandidateProfile
	Job        *types.JobPosting
	Skill      Metric
	Experience Metric
	Density    DensityMetric
	Subjective map[string]any
	Degraded   bool
	Now        time.Time
}

// Compose builds the final score entity. It never fails: every subjective
// value is coerced with a zero fallback and clamped to [0,100].
func (c *Composer) Compose(in Input) *types.CandidateScore {
	subjective := make(map[string]int, len(subjectiveKeys))
	for _, key := range subjectiveKeys {
		subjective[key] = clamp(coerceInt(in.Subjective[key]), 0, 100)
	}

	breakdown := types.ScoringBreakdown{
		Skills:              in.Skill.Value,
		Experience:          in.Experience.Value,
		Education:           subjective["education"],
		Projects:            subjective["projects"],
		Keywords:            in.Density.Density.Percentage,
		ATS:                 subjective["ats"],
		Grammar:             subjective["grammar"],
		SoftSkills:          subjective["soft_skills"],
		Readability:         subjective["readability"],
		CulturalFit:         subjective["cultural_fit"],
		DomainRelevance:     subjective["domain_relevance"],
		CertificationsScore: subjective["certifications_score"],
	}

	deterministic := int(math.Round(
		float64(breakdown.Skills)*c.weights.Skill +
			float64(breakdown.Experience)*c.weights.Experience +
			float64(breakdown.Keywords)*c.weights.Keyword))

	subjectiveSum := 0
	for _, key := range meanKeys {
		subjectiveSum += subjective[key]
	}
	subjectiveComponent := 0
	if subjectiveSum > 0 {
		subjectiveComponent = int(math.Round(float64(subjectiveSum) / float64(len(meanKeys))))
	}

	overall := deterministic
	if subjectiveComponent > 0 {
		overall = int(math.Round(
			float64(deterministic)*c.weights.Deterministic +
				float64(subjectiveComponent)*c.weights.Subjective))
	}
	overall = clamp(overall, 0, 100)

	fitment := clamp(int(math.Round(float64(overall+breakdown.Skills)/2)), 0, 100)

	status := "Poor"
	switch {
	case overall > c.weights.GoodFit:
		status = "Good Fit"
	case overall >= c.weights.AverageFit:
		status = "Average"
	}

	var requiredSkills []string
	var jobID string
	if in.Job != nil {
		requiredSkills = in.Job.Skills
		jobID = in.Job.ID
	}

	matched, missing := MatchSkills(in.Candidate.Skills, requiredSkills)
	var jobMatch *types.JobMatch
	if len(requiredSkills) > 0 {
		jobMatch = &types.JobMatch{
			SkillsMatched:  matched,
			SkillsMissing:  missing,
			KeywordDensity: in.Density.Density,
		}
	}

	sentiment := coerceSentiment(in.Subjective["sentiment"])

	strengths := types.SkillLists{
		Technical: capList(coerceListField(in.Subjective["strengths"], "technical", matched), c.weights.ListCap),
		Soft:      capList(coerceListField(in.Subjective["strengths"], "soft", sentiment.SoftSkillsExtraction), c.weights.ListCap),
	}
	weaknesses := types.SkillLists{
		Technical: capList(coerceListField(in.Subjective["weaknesses"], "technical", missing), c.weights.ListCap),
		Soft:      capList(coerceListField(in.Subjective["weaknesses"], "soft", nil), c.weights.ListCap),
	}

	version := c.weights.Version
	if in.Degraded {
		version += c.weights.DegradedSuffix
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return &types.CandidateScore{
		CandidateID:      in.Candidate.ID,
		JobID:            jobID,
		OverallScore:     overall,
		FitmentScore:     fitment,
		ScoringBreakdown: breakdown,
		JobMatch:         jobMatch,
		Sentiment:        sentiment,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		Recommendation:   strings.TrimSpace(coerceString(in.Subjective["recommendation"])),
		AdditionalNotes:  strings.TrimSpace(coerceString(in.Subjective["additional_notes"])),
		FitmentStatus:    status,
		ScoringVersion:   version,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// coerceInt turns loosely-typed JSON values into integers, defaulting to 0.
func coerceInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func coerceStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// coerceListField pulls block[key] as a string list, falling back when the
// block or the key is absent. An explicitly empty model list stays empty.
func coerceListField(block any, key string, fallback []string) []string {
	m, ok := block.(map[string]any)
	if !ok {
		return fallback
	}
	raw, ok := m[key]
	if !ok {
		return fallback
	}
	list := coerceStringList(raw)
	if list == nil {
		return fallback
	}
	return list
}

func coerceSentiment(v any) *types.SentimentAnalysis {
	sentiment := types.DefaultSentiment()
	m, ok := v.(map[string]any)
	if !ok {
		return sentiment
	}
	if overall := strings.TrimSpace(coerceString(m["overall"])); overall != "" {
		sentiment.Overall = overall
	}
	if tone := strings.TrimSpace(coerceString(m["tone"])); tone != "" {
		sentiment.Tone = tone
	}
	if skills := coerceStringList(m["soft_skills_extraction"]); skills != nil {
		sentiment.SoftSkillsExtraction = skills
	}
	return sentiment
}

func capList(list []string, limit int) []string {
	if list == nil {
		return []string{}
	}
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
