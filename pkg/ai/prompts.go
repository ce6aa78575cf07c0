package ai

import (
	"encoding/json"
	"fmt"

	"resume-builder/internal/model"
)

const resumeInstructions = `You are a professional resume writer. Rewrite this resume content professionally.

Enhance:
- summary: at most 3 lines
- experience: achievement-based bullet points for each entry, same order and count as the input
- technical_skills: clean, ATS-ready skill names

Return VALID JSON ONLY, no markdown and no commentary, in this shape:
{
  "summary": "Improved summary",
  "technical_skills": ["Skill 1", "Skill 2"],
  "experience": [{"points": ["Bullet 1", "Bullet 2"]}]
}
`

func resumePrompt(r model.Resume) (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return resumeInstructions + "\nInput JSON:\n" + string(b) + "\n", nil
}

var sectionGuides = map[model.Section]string{
	model.SectionSummary:        `a concise professional summary of at most 3 lines. Return {"summary": "text"}`,
	model.SectionSkills:         `a clean list of ATS-ready skill names. Return {"skills": ["Skill"]}`,
	model.SectionExperience:     `achievement-based lines, one per experience entry, keeping "Role at Company - Duration" where present. Return {"experience": ["line"]}`,
	model.SectionEducation:      `lines in the form "Degree, Institution, Year". Return {"education": ["line"]}`,
	model.SectionProjects:       `lines in the form "Title - Tech - Duration". Return {"projects": ["line"]}`,
	model.SectionCertifications: `one certification name per line. Return {"certifications": ["line"]}`,
}

func sectionPrompt(section model.Section, text string) string {
	return fmt.Sprintf("You are a professional resume writer. Rewrite the %s section of a resume as %s.\nReturn VALID JSON ONLY.\n\nInput:\n%s\n",
		section, sectionGuides[section], text)
}
