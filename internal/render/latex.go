package render

import (
	"regexp"
	"strings"

	"resume-builder/internal/model"
)

// blankItem keeps list environments from being empty, which pdflatex rejects.
const blankItem = `\resumeItem{ }`

var latexEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`$`, `\$`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`^`, `\^{}`,
	`~`, `\~{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// Escape makes user text safe to place inside a LaTeX document. Each special
// character is replaced once; the output is never re-scanned.
func Escape(s string) string {
	return latexEscaper.Replace(s)
}

var (
	unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// SafeName turns a person's name into something usable in a file name.
func SafeName(name string) string {
	s := unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, ".")
	if s == "" {
		return "resume"
	}
	return s
}

func guard(block string) string {
	if strings.TrimSpace(block) == "" {
		return blankItem
	}
	return block
}

func items(list []string) string {
	lines := make([]string, 0, len(list))
	for _, s := range list {
		lines = append(lines, `\resumeItem{`+Escape(s)+`}`)
	}
	return strings.Join(lines, "\n")
}

func subheading(a, b, c, d string) string {
	return `\resumeSubheading{` + Escape(a) + `}{` + Escape(b) + `}{` + Escape(c) + `}{` + Escape(d) + `}`
}

func withPoints(heading string, points model.Points) string {
	return heading + "\n" +
		`\resumeSubHeadingList` + "\n" +
		guard(items(points)) + "\n" +
		`\resumeSubHeadingListEnd`
}

func experienceBlock(list []model.Experience) string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, withPoints(subheading(e.Role, e.Duration, e.Company, e.Location), e.Points))
	}
	return strings.Join(out, "\n")
}

func projectBlock(list []model.Project) string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, withPoints(subheading(p.Title, p.Duration, p.Subtitle, p.Tech), p.Points))
	}
	return strings.Join(out, "\n")
}

// Education entries carry no points, so they render as headings only.
func educationBlock(list []model.Education) string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, `\resumeSubheading{`+Escape(e.Degree)+`}{`+Escape(e.Year)+`}{`+Escape(e.Institution)+`}{ }`)
	}
	return strings.Join(out, "\n")
}

// substitute fills every placeholder occurrence in tpl.
func substitute(tpl string, r model.Resume) string {
	return strings.NewReplacer(
		"{{NAME}}", Escape(r.Name),
		"{{EMAIL}}", Escape(r.Email),
		"{{PHONE}}", Escape(r.Phone),
		"{{SUMMARY}}", Escape(r.Summary),
		"{{LINKEDIN}}", Escape(r.LinkedIn),
		"{{GITHUB}}", Escape(r.GitHub),
		"{{TECHNICAL_SKILLS}}", guard(items(r.TechnicalSkills)),
		"{{PROJECTS}}", guard(projectBlock(r.Projects)),
		"{{EXPERIENCE}}", guard(experienceBlock(r.Experience)),
		"{{EDUCATION}}", guard(educationBlock(r.Education)),
		"{{CERTIFICATIONS}}", guard(items(r.Certifications)),
	).Replace(tpl)
}
