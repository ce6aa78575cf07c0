package model

import "encoding/json"

// Section is one of the form sections that can be enhanced independently.
type Section string

const (
	SectionSummary        Section = "summary"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
)

var Sections = []Section{
	SectionSummary,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionCertifications,
}

func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// Enhancement is a rewritten value for one section. Summary carries Text,
// every other section carries Items.
type Enhancement struct {
	Section Section
	Text    string
	Items   []string
}

// Value is the wire shape of the enhanced content.
func (e Enhancement) Value() any {
	if e.Section == SectionSummary {
		return e.Text
	}
	if e.Items == nil {
		return []string{}
	}
	return e.Items
}

// MarshalJSON encodes as {"<section>": value}, the shape clients read back.
func (e Enhancement) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{string(e.Section): e.Value()})
}
