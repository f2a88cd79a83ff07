package models

// SimilarityLevel is the human-readable band derived from the overall score.
type SimilarityLevel string

const (
	LevelExcellent SimilarityLevel = "Excellent"
	LevelGood      SimilarityLevel = "Bon"
	LevelAverage   SimilarityLevel = "Moyen"
	LevelWeak      SimilarityLevel = "Faible"
)

// Method tags which similarity strategy produced a result.
type Method string

const (
	MethodJaccard   Method = "jaccard"
	MethodEmbedding Method = "embedding"
)

type SectionalScores struct {
	Global     float64 `json:"global"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

type SkillMatch struct {
	JobSkill       string  `json:"job_skill"`
	MatchedCVSkill *string `json:"matched_cv_skill"`
	Similarity     float64 `json:"similarity"`
}

type SkillAnalysis struct {
	AverageSkillSimilarity float64      `json:"average_skill_similarity"`
	SkillCoverage          float64      `json:"skill_coverage"`
	TopSkillMatches        []SkillMatch `json:"top_skill_matches"`
}

// MatchResult is the complete assessment of one CV against one job posting.
type MatchResult struct {
	Score           float64         `json:"score"`
	SimilarityLevel SimilarityLevel `json:"similarity_level"`
	SectionalScores SectionalScores `json:"sectional_scores"`
	SkillAnalysis   SkillAnalysis   `json:"skill_analysis"`
	MissingKeywords []string        `json:"missing_keywords"`
	Suggestions     []string        `json:"suggestions"`
	Method          Method          `json:"method"`
}
