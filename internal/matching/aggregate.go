package matching

import (
	"fmt"
	"math"

	"alfredoptarigan/cv-matcher/internal/models"
)

// Weights sets the contribution of each section to the overall score.
type Weights struct {
	Global     float64
	Skills     float64
	Experience float64
	Education  float64
}

// DefaultWeights are the weights of a full profile, with every section present.
// When experience or education is missing on either side, that section is left
// out and the remaining weights are rescaled (see aggregate).
var DefaultWeights = Weights{Global: 0.4, Skills: 0.35, Experience: 0.15, Education: 0.10}

const weightTolerance = 1e-6

func (w Weights) validate() error {
	for name, v := range map[string]float64{
		"global": w.Global, "skills": w.Skills, "experience": w.Experience, "education": w.Education,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight must be non-negative, got %v", ErrInvalidConfig, name, v)
		}
	}
	if w.Global == 0 {
		return fmt.Errorf("%w: global weight must be positive", ErrInvalidConfig)
	}

	sum := w.Global + w.Skills + w.Experience + w.Education
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights must sum to 1, got %.6f", ErrInvalidConfig, sum)
	}
	return nil
}

// availability marks which optional sections had inputs on both sides.
type availability struct {
	skills     bool
	experience bool
	education  bool
}

// aggregate combines the sub-scores. Sections without inputs are left out and
// the remaining weights are rescaled to sum to 1.
func aggregate(s models.SectionalScores, avail availability, w Weights) float64 {
	total := w.Global * s.Global
	weight := w.Global

	if avail.skills {
		total += w.Skills * s.Skills
		weight += w.Skills
	}
	if avail.experience {
		total += w.Experience * s.Experience
		weight += w.Experience
	}
	if avail.education {
		total += w.Education * s.Education
		weight += w.Education
	}

	if weight == 0 {
		return 0
	}
	return clamp(total/weight, 0, 100)
}

// LevelForScore maps a score to its band. Bands include their lower bound.
func LevelForScore(score float64) models.SimilarityLevel {
	switch {
	case score >= 85:
		return models.LevelExcellent
	case score >= 70:
		return models.LevelGood
	case score >= 55:
		return models.LevelAverage
	default:
		return models.LevelWeak
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
