package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillScore_PartialOverlap(t *testing.T) {
	m := SkillScore([]string{"Python", "SQL"}, []string{"Python", "AWS"})
	assert.Equal(t, 50, m.Value)
	assert.True(t, m.Exact)
}

func TestSkillScore_CaseInsensitive(t *testing.T) {
	m := SkillScore([]string{"python", "aws"}, []string{"Python", "AWS"})
	assert.Equal(t, 100, m.Value)
	assert.True(t, m.Exact)
}

func TestSkillScore_FullSubset(t *testing.T) {
	m := SkillScore([]string{"Go", "Kubernetes", "Docker"}, []string{"go", "docker"})
	assert.Equal(t, 100, m.Value)
}

func TestSkillScore_NoOverlap(t *testing.T) {
	m := SkillScore([]string{"PHP"}, []string{"Go", "Rust"})
	assert.Equal(t, 0, m.Value)
	assert.True(t, m.Exact)
}

func TestSkillScore_EmptyRequired(t *testing.T) {
	m := SkillScore([]string{"Go"}, nil)
	assert.Equal(t, 0, m.Value)
	assert.False(t, m.Exact)
}

func TestSkillScore_FloorsResult(t *testing.T) {
	// 1 of 3 matched: 33.33 floors to 33.
	m := SkillScore([]string{"Go"}, []string{"Go", "Rust", "C"})
	assert.Equal(t, 33, m.Value)
}

func TestExperienceScore_Saturates(t *testing.T) {
	m := ExperienceScore(7, 5)
	assert.Equal(t, 100, m.Value)
	assert.True(t, m.Exact)
}

func TestExperienceScore_HalfCap(t *testing.T) {
	m := ExperienceScore(2.5, 5)
	assert.Equal(t, 50, m.Value)
}

func TestExperienceScore_Negative(t *testing.T) {
	m := ExperienceScore(-3, 5)
	assert.Equal(t, 0, m.Value)
	assert.False(t, m.Exact)
}

func TestExperienceScore_ZeroCapUsesDefault(t *testing.T) {
	m := ExperienceScore(5, 0)
	assert.Equal(t, 100, m.Value)
}

func TestExperienceScore_Monotonic(t *testing.T) {
	prev := -1
	for years := 0.0; years <= 8; years += 0.5 {
		m := ExperienceScore(years, 5)
		assert.GreaterOrEqual(t, m.Value, prev)
		assert.LessOrEqual(t, m.Value, 100)
		prev = m.Value
	}
}

func TestKeywordDensity_EmptyKeywords(t *testing.T) {
	d := KeywordDensity("any resume text", nil)
	assert.Equal(t, 0, d.Density.RequiredKeywords)
	assert.Equal(t, 0, d.Density.Matched)
	assert.Equal(t, 0, d.Density.Percentage)
	assert.False(t, d.Exact)
}

func TestKeywordDensity_Matches(t *testing.T) {
	resume := "Built microservices in Go with Postgres and Kafka."
	d := KeywordDensity(resume, []string{"go", "kafka", "terraform"})
	assert.Equal(t, 3, d.Density.RequiredKeywords)
	assert.Equal(t, 2, d.Density.Matched)
	assert.Equal(t, 67, d.Density.Percentage)
	assert.True(t, d.Exact)
}

func TestKeywordDensity_BlankKeywordsIgnored(t *testing.T) {
	d := KeywordDensity("go everywhere", []string{"go", "  "})
	assert.Equal(t, 2, d.Density.RequiredKeywords)
	assert.Equal(t, 1, d.Density.Matched)
	assert.Equal(t, 50, d.Density.Percentage)
}

func TestMatchSkills(t *testing.T) {
	matched, missing := MatchSkills([]string{"Python", "SQL"}, []string{"Python", "AWS"})
	assert.Equal(t, []string{"python"}, matched)
	assert.Equal(t, []string{"aws"}, missing)
}

func TestMatchSkills_EmptyRequired(t *testing.T) {
	matched, missing := MatchSkills([]string{"Go"}, nil)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}
