package parser

import (
	"strings"

	"resume-builder/internal/model"
)

// Form is the raw form state: one string per field, exactly as typed.
type Form struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LinkedIn       string `json:"linkedin"`
	GitHub         string `json:"github"`
	Summary        string `json:"summary"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Projects       string `json:"projects"`
	Certifications string `json:"certifications"`
}

// Resume converts the form into the canonical model.
func (f Form) Resume() model.Resume {
	return model.Resume{
		Name:            strings.TrimSpace(f.FullName),
		Email:           strings.TrimSpace(f.Email),
		Phone:           strings.TrimSpace(f.Phone),
		LinkedIn:        strings.TrimSpace(f.LinkedIn),
		GitHub:          strings.TrimSpace(f.GitHub),
		Summary:         strings.TrimSpace(f.Summary),
		TechnicalSkills: Skills(f.Skills),
		Experience:      Experience(f.Experience),
		Education:       Education(f.Education),
		Projects:        Projects(f.Projects),
		Certifications:  Certifications(f.Certifications),
	}
}

// Section returns the raw text of an enhanceable section.
func (f Form) Section(s model.Section) string {
	switch s {
	case model.SectionSummary:
		return f.Summary
	case model.SectionSkills:
		return f.Skills
	case model.SectionExperience:
		return f.Experience
	case model.SectionEducation:
		return f.Education
	case model.SectionProjects:
		return f.Projects
	case model.SectionCertifications:
		return f.Certifications
	}
	return ""
}

// Set overwrites the raw text of an enhanceable section.
func (f *Form) Set(s model.Section, text string) {
	switch s {
	case model.SectionSummary:
		f.Summary = text
	case model.SectionSkills:
		f.Skills = text
	case model.SectionExperience:
		f.Experience = text
	case model.SectionEducation:
		f.Education = text
	case model.SectionProjects:
		f.Projects = text
	case model.SectionCertifications:
		f.Certifications = text
	}
}
