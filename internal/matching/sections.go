package matching

import (
	"strings"

	"alfredoptarigan/cv-matcher/internal/models"
)

// Input is one CV/job pair. Raw texts and structured entities are both optional
// but each side needs at least one of them.
type Input struct {
	CVText  string
	JobText string
	CV      *models.ParsedCV
	Job     *models.ParsedJob
}

func (in Input) validate() error {
	if strings.TrimSpace(in.CVText) == "" && in.CV.Text() == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.JobText) == "" && in.Job.Text() == "" {
		return ErrInvalidInput
	}
	return nil
}

func (in Input) structured() bool {
	return in.CV != nil || in.Job != nil
}

// sections holds the per-section texts of both sides.
type sections struct {
	cvGlobal, jobGlobal         string
	cvSkills, jobSkills         []string
	cvExperience, jobExperience string
	cvEducation, jobEducation   string
}

func buildSections(in Input) sections {
	s := sections{
		cvGlobal:      firstNonBlank(in.CVText, in.CV.Text()),
		jobGlobal:     firstNonBlank(in.JobText, in.Job.Text()),
		cvExperience:  in.CV.ExperienceText(),
		jobExperience: in.Job.ExperienceText(),
		cvEducation:   in.CV.EducationText(),
		jobEducation:  in.Job.EducationText(),
	}

	if in.CV != nil {
		s.cvSkills = cleanSkills(in.CV.Skills)
	}
	if len(s.cvSkills) == 0 {
		s.cvSkills = ExtractSkills(s.cvGlobal)
	}

	if in.Job != nil {
		s.jobSkills = cleanSkills(in.Job.RequiredSkills)
	}
	if len(s.jobSkills) == 0 {
		s.jobSkills = ExtractSkills(s.jobGlobal)
	}

	return s
}

func (s sections) availability() availability {
	return availability{
		skills:     len(s.jobSkills) > 0,
		experience: s.cvExperience != "" && s.jobExperience != "",
		education:  s.cvEducation != "" && s.jobEducation != "",
	}
}

// texts lists every text a strategy may embed for this pair.
func (s sections) texts() []string {
	out := []string{s.cvGlobal, s.jobGlobal, s.cvExperience, s.jobExperience, s.cvEducation, s.jobEducation}
	out = append(out, s.cvSkills...)
	return append(out, s.jobSkills...)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
