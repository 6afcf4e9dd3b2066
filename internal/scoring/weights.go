package scoring

// Weights holds every tunable constant in the composition formula. Earlier
// revisions of the scoring logic drifted on these values; keeping them in one
// struct pins the canonical set and lets deployments override deliberately.
type Weights struct {
	// Deterministic component: skills*Skill + experience*Experience + keywords*Keyword.
	Skill      float64
	Experience float64
	Keyword    float64

	// Composite: deterministic*Deterministic + subjective*Subjective when the
	// model produced anything usable, otherwise pure deterministic.
	Deterministic float64
	Subjective    float64

	// Fitment status cutoffs on the overall score: above GoodFit is "Good Fit",
	// AverageFit..GoodFit inclusive is "Average", below is "Poor".
	GoodFit    int
	AverageFit int

	// ExperienceCapYears is the years figure that saturates the experience score.
	ExperienceCapYears int

	// ListCap bounds each strengths/weaknesses sub-list.
	ListCap int

	// Version tags persisted scores. Degraded runs get DegradedSuffix appended.
	Version        string
	DegradedSuffix string
}

// DefaultWeights returns the canonical constants.
func DefaultWeights() Weights {
	return Weights{
		Skill:              0.6,
		Experience:         0.3,
		Keyword:            0.1,
		Deterministic:      0.65,
		Subjective:         0.35,
		GoodFit:            70,
		AverageFit:         50,
		ExperienceCapYears: 5,
		ListCap:            5,
		Version:            "v1.1",
		DegradedSuffix:     "-deterministic",
	}
}
