package matching

import (
	"context"
	"sort"
	"strings"

	"alfredoptarigan/cv-matcher/internal/models"
)

// SkillOptions tunes MatchSkills.
type SkillOptions struct {
	// CoverageThreshold is the similarity a best match must exceed to count as covered.
	CoverageThreshold float64
	// TopN bounds the number of matches reported. A non-positive TopN means no cap.
	TopN int
}

// MatchSkills pairs every job skill with its most similar CV skill. Pairing is
// greedy per job skill: one CV skill may back several job skills. A job skill
// with zero similarity to every CV skill stays unmatched.
func MatchSkills(ctx context.Context, strategy Strategy, jobSkills, cvSkills []string, opts SkillOptions) (models.SkillAnalysis, error) {
	jobSkills = cleanSkills(jobSkills)
	cvSkills = cleanSkills(cvSkills)

	analysis := models.SkillAnalysis{TopSkillMatches: []models.SkillMatch{}}
	if len(jobSkills) == 0 {
		return analysis, nil
	}

	matches := make([]models.SkillMatch, 0, len(jobSkills))
	var sum float64
	covered := 0

	for _, jobSkill := range jobSkills {
		best := models.SkillMatch{JobSkill: jobSkill}
		for _, cvSkill := range cvSkills {
			sim, err := strategy.TermSimilarity(ctx, jobSkill, cvSkill)
			if err != nil {
				return models.SkillAnalysis{}, err
			}
			if sim > best.Similarity {
				best.MatchedCVSkill = &cvSkill
				best.Similarity = clamp(sim, 0, 1)
			}
		}

		sum += best.Similarity
		if best.Similarity > opts.CoverageThreshold {
			covered++
		}
		matches = append(matches, best)
	}

	total := float64(len(jobSkills))
	analysis.AverageSkillSimilarity = sum / total * 100
	analysis.SkillCoverage = float64(covered) / total * 100
	analysis.TopSkillMatches = topMatches(matches, opts.TopN)

	return analysis, nil
}

// SkillsScore blends average similarity and coverage into the skills sub-score.
func SkillsScore(a models.SkillAnalysis) float64 {
	return clamp(0.5*a.AverageSkillSimilarity+0.5*a.SkillCoverage, 0, 100)
}

// topMatches keeps the n most similar matched pairs; ties keep job-skill order.
func topMatches(matches []models.SkillMatch, n int) []models.SkillMatch {
	ranked := make([]models.SkillMatch, 0, len(matches))
	for _, m := range matches {
		if m.MatchedCVSkill != nil {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
