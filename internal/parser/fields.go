// Package parser turns the free-text form sections into structured resume
// records. None of the functions fail: input that matches no pattern is kept
// in the most permissive shape instead of being rejected.
package parser

import (
	"strings"

	"resume-builder/internal/model"
)

// Skills splits on commas.
func Skills(text string) []string {
	return split(text, ",")
}

// Certifications splits on newlines.
func Certifications(text string) []string {
	return split(text, "\n")
}

// Lines returns the trimmed non-blank lines of text.
func Lines(text string) []string {
	return split(text, "\n")
}

// Education reads "degree, institution, year" per line. Everything after the
// second comma belongs to the year.
func Education(text string) []model.Education {
	out := []model.Education{}
	for _, line := range Lines(text) {
		parts := split(line, ",")
		if len(parts) == 0 {
			continue
		}
		e := model.Education{Degree: parts[0]}
		if len(parts) > 1 {
			e.Institution = parts[1]
		}
		if len(parts) > 2 {
			e.Year = strings.Join(parts[2:], ", ")
		}
		out = append(out, e)
	}
	return out
}

// Experience parses one entry per line. The first matching layout wins:
//
//	ROLE at COMPANY - DURATION
//	ROLE - DURATION
//	ROLE, COMPANY, DURATION...
//
// A line matching none of them becomes a single point with blank fields.
func Experience(text string) []model.Experience {
	out := []model.Experience{}
	for _, line := range Lines(text) {
		out = append(out, experienceLine(line))
	}
	return out
}

func experienceLine(line string) model.Experience {
	if role, rest, ok := strings.Cut(line, " at "); ok {
		e := model.Experience{Role: strings.TrimSpace(role)}
		company, duration, _ := strings.Cut(rest, " - ")
		e.Company = strings.TrimSpace(company)
		e.Duration = strings.TrimSpace(duration)
		return e
	}
	if role, duration, ok := strings.Cut(line, " - "); ok {
		// only the first two dash-separated parts are read
		duration, _, _ = strings.Cut(duration, " - ")
		return model.Experience{Role: strings.TrimSpace(role), Duration: strings.TrimSpace(duration)}
	}
	if strings.Contains(line, ",") {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		e := model.Experience{Role: parts[0]}
		if len(parts) > 1 {
			e.Company = parts[1]
		}
		if len(parts) > 2 {
			e.Duration = strings.Join(parts[2:], ", ")
		}
		return e
	}
	return model.Experience{Points: model.Points{line}}
}

// Projects reads "title - tech - duration" per line. Lines are trimmed first,
// so the title is never empty; a line without separators is all title.
func Projects(text string) []model.Project {
	out := []model.Project{}
	for _, line := range Lines(text) {
		parts := strings.SplitN(line, " - ", 3)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		p := model.Project{Title: parts[0]}
		if len(parts) > 1 {
			p.Tech = parts[1]
		}
		if len(parts) > 2 {
			p.Duration = parts[2]
		}
		out = append(out, p)
	}
	return out
}

func split(text, sep string) []string {
	out := []string{}
	for _, s := range strings.Split(text, sep) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
