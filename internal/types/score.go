package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ScoringBreakdown holds the per-dimension sub-scores. Every field is an
// integer clamped to [0,100] by the composer regardless of where the value
// came from.
type ScoringBreakdown struct {
	Skills              int `json:"skills" validate:"gte=0,lte=100"`
	Experience          int `json:"experience" validate:"gte=0,lte=100"`
	Education           int `json:"education" validate:"gte=0,lte=100"`
	Projects            int `json:"projects" validate:"gte=0,lte=100"`
	Keywords            int `json:"keywords" validate:"gte=0,lte=100"`
	ATS                 int `json:"ats" validate:"gte=0,lte=100"`
	Grammar             int `json:"grammar" validate:"gte=0,lte=100"`
	SoftSkills          int `json:"soft_skills" validate:"gte=0,lte=100"`
	Readability         int `json:"readability" validate:"gte=0,lte=100"`
	CulturalFit         int `json:"cultural_fit" validate:"gte=0,lte=100"`
	DomainRelevance     int `json:"domain_relevance" validate:"gte=0,lte=100"`
	CertificationsScore int `json:"certifications_score" validate:"gte=0,lte=100"`
}

// KeywordDensity reports how many of the job's required keywords appear
// verbatim in the resume text.
type KeywordDensity struct {
	RequiredKeywords int `json:"required_keywords"`
	Matched          int `json:"matched"`
	Percentage       int `json:"percentage"`
}

// JobMatch is present only when the job posting declares required skills.
// Skill lists are lowercased; ordering is not significant.
type JobMatch struct {
	SkillsMatched  []string       `json:"skills_matched"`
	SkillsMissing  []string       `json:"skills_missing"`
	KeywordDensity KeywordDensity `json:"keyword_density"`
}

// SentimentAnalysis carries the model's read of the resume's tone.
type SentimentAnalysis struct {
	Overall              string   `json:"overall"`
	Tone                 string   `json:"tone"`
	SoftSkillsExtraction []string `json:"soft_skills_extraction"`
}

// DefaultSentiment is the sentiment block used when the model omits one.
func DefaultSentiment() *SentimentAnalysis {
	return &SentimentAnalysis{
		Overall:              "Neutral",
		Tone:                 "Professional",
		SoftSkillsExtraction: []string{},
	}
}

// SkillLists groups technical and soft skill observations. Each list is
// capped at five entries by the composer.
type SkillLists struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// CandidateScore is the persisted scoring entity. Identity is
// (candidate_id, job_id); job_id is empty when the candidate was scored
// without a job context.
type CandidateScore struct {
	CandidateID      string             `json:"candidate_id" validate:"required"`
	JobID            string             `json:"job_id,omitempty"`
	OverallScore     int                `json:"overall_score" validate:"gte=0,lte=100"`
	FitmentScore     int                `json:"fitment_score" validate:"gte=0,lte=100"`
	ScoringBreakdown ScoringBreakdown   `json:"scoring_breakdown"`
	JobMatch         *JobMatch          `json:"job_match,omitempty"`
	Sentiment        *SentimentAnalysis `json:"sentiment,omitempty"`
	Strengths        SkillLists         `json:"strengths"`
	Weaknesses       SkillLists         `json:"weaknesses"`
	Recommendation   string             `json:"recommendation"`
	AdditionalNotes  string             `json:"additional_notes,omitempty"`
	FitmentStatus    string             `json:"fitment_status"`
	RankingScore     *int               `json:"ranking_score"`
	Percentile       *int               `json:"percentile"`
	ScoringVersion   string             `json:"scoring_version"`
	Deleted          bool               `json:"deleted"`
	DeletedAt        *time.Time         `json:"deleted_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// Validate checks the score entity against its bounds using the validator.
func (s *CandidateScore) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}
