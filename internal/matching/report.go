package matching

import (
	"fmt"
	"strings"

	"alfredoptarigan/cv-matcher/internal/models"
)

// RenderReport formats a result as the plain-text similarity report.
func RenderReport(r *models.MatchResult) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== RAPPORT DE SIMILARITÉ ===\n")
	fmt.Fprintf(&b, "Score global: %.2f%% (%s)\n", r.Score, r.SimilarityLevel)
	fmt.Fprintf(&b, "Méthode utilisée: %s\n", r.Method)

	b.WriteString("\nScores par section:\n")
	fmt.Fprintf(&b, "- Global: %.2f%%\n", r.SectionalScores.Global)
	fmt.Fprintf(&b, "- Skills: %.2f%%\n", r.SectionalScores.Skills)
	fmt.Fprintf(&b, "- Experience: %.2f%%\n", r.SectionalScores.Experience)
	fmt.Fprintf(&b, "- Education: %.2f%%\n", r.SectionalScores.Education)

	fmt.Fprintf(&b, "\nCouverture des compétences: %.2f%% (similarité moyenne %.2f%%)\n",
		r.SkillAnalysis.SkillCoverage, r.SkillAnalysis.AverageSkillSimilarity)

	if len(r.SkillAnalysis.TopSkillMatches) > 0 {
		b.WriteString("\nTop correspondances de compétences:\n")
		for _, m := range r.SkillAnalysis.TopSkillMatches {
			matched := "-"
			if m.MatchedCVSkill != nil {
				matched = *m.MatchedCVSkill
			}
			fmt.Fprintf(&b, "- %s → %s (%.1f%%)\n", m.JobSkill, matched, m.Similarity*100)
		}
	}

	if len(r.MissingKeywords) > 0 {
		b.WriteString("\nMots-clés manquants:\n")
		b.WriteString(strings.Join(r.MissingKeywords, ", "))
		b.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
