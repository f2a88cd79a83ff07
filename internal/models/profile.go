package models

import "strings"

// Experience is a single work-history entry of a parsed CV.
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Education is a single diploma entry of a parsed CV.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// ParsedCV is the structured form of a CV produced by an external parser.
type ParsedCV struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Skills         []string     `json:"skills"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`
}

// ParsedJob is the structured form of a job posting produced by an external parser.
type ParsedJob struct {
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	ContractType       string   `json:"contract_type"`
	ExperienceRequired string   `json:"experience_required"`
	EducationRequired  string   `json:"education_required"`
	RequiredSkills     []string `json:"required_skills"`
	Responsibilities   []string `json:"responsibilities"`
}

// ExperienceText joins role and description of every experience entry.
func (cv *ParsedCV) ExperienceText() string {
	if cv == nil {
		return ""
	}
	parts := make([]string, 0, len(cv.Experience)*2)
	for _, exp := range cv.Experience {
		parts = append(parts, exp.Role, exp.Description)
	}
	return joinNonEmpty(parts)
}

// EducationText joins degree and institution of every education entry.
func (cv *ParsedCV) EducationText() string {
	if cv == nil {
		return ""
	}
	parts := make([]string, 0, len(cv.Education)*2)
	for _, edu := range cv.Education {
		parts = append(parts, edu.Degree, edu.Institution)
	}
	return joinNonEmpty(parts)
}

// Text rebuilds a flat text from the structured CV, used when no raw text was supplied.
func (cv *ParsedCV) Text() string {
	if cv == nil {
		return ""
	}
	return joinNonEmpty([]string{
		strings.Join(cv.Skills, " "),
		cv.ExperienceText(),
		cv.EducationText(),
		strings.Join(cv.Certifications, " "),
		strings.Join(cv.Languages, " "),
	})
}

// ExperienceText joins the required experience with the listed responsibilities.
func (job *ParsedJob) ExperienceText() string {
	if job == nil {
		return ""
	}
	parts := append([]string{job.ExperienceRequired}, job.Responsibilities...)
	return joinNonEmpty(parts)
}

// EducationText returns the required education.
func (job *ParsedJob) EducationText() string {
	if job == nil {
		return ""
	}
	return strings.TrimSpace(job.EducationRequired)
}

// Text rebuilds a flat text from the structured job, used when no raw text was supplied.
func (job *ParsedJob) Text() string {
	if job == nil {
		return ""
	}
	return joinNonEmpty([]string{
		job.Title,
		strings.Join(job.RequiredSkills, " "),
		job.ExperienceText(),
		job.EducationText(),
	})
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
