package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Resume is the canonical resume content shared by the parser, the renderer,
// the enrichment client and the record store.
type Resume struct {
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	LinkedIn        string       `json:"linkedin"`
	GitHub          string       `json:"github"`
	Summary         string       `json:"summary"`
	TechnicalSkills []string     `json:"technical_skills"`
	Projects        []Project    `json:"projects"`
	Experience      []Experience `json:"experience"`
	Education       []Education  `json:"education"`
	Certifications  []string     `json:"certifications"`
}

type Experience struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Location string `json:"location"`
	Points   Points `json:"points"`
}

type Project struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Subtitle string `json:"subtitle"`
	Tech     string `json:"tech"`
	Points   Points `json:"points"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Points is an ordered list of achievement lines. Items may arrive as plain
// strings or as {"text": "..."} objects; blank items are dropped.
type Points []string

func (p *Points) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = appendPoint(nil, s)
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Points{}
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = appendPoint(out, s)
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		out = appendPoint(out, obj.Text)
	}
	*p = out
	return nil
}

func appendPoint(p Points, s string) Points {
	if s = strings.TrimSpace(s); s != "" {
		p = append(p, s)
	}
	return p
}

// UnmarshalJSON accepts either a bare string, which becomes a single point
// with blank structured fields, or an object read by field name.
func (e *Experience) UnmarshalJSON(b []byte) error {
	if s, ok := bareString(b); ok {
		*e = Experience{Points: appendPoint(nil, s)}
		return nil
	}
	var raw struct {
		Role     string `json:"role"`
		Title    string `json:"title"`
		Company  string `json:"company"`
		Duration string `json:"duration"`
		Location string `json:"location"`
		Points   Points `json:"points"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Experience{
		Role:     firstNonEmpty(raw.Role, raw.Title),
		Company:  raw.Company,
		Duration: raw.Duration,
		Location: raw.Location,
		Points:   raw.Points,
	}
	return nil
}

// UnmarshalJSON accepts a bare string (legacy pipe layout supported) or an
// object read by field name.
func (p *Project) UnmarshalJSON(b []byte) error {
	if s, ok := bareString(b); ok {
		*p = ProjectFromString(s)
		return nil
	}
	var raw struct {
		Title    string `json:"title"`
		Name     string `json:"name"`
		Duration string `json:"duration"`
		Subtitle string `json:"subtitle"`
		Tech     string `json:"tech"`
		Stack    string `json:"stack"`
		Points   Points `json:"points"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Project{
		Title:    firstNonEmpty(raw.Title, raw.Name),
		Duration: raw.Duration,
		Subtitle: raw.Subtitle,
		Tech:     firstNonEmpty(raw.Tech, raw.Stack),
		Points:   raw.Points,
	}
	return nil
}

// ProjectFromString reads "title | duration | subtitle | tech | point; point".
// A string without pipes is just the title.
func ProjectFromString(s string) Project {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	at := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	var points Points
	for _, pt := range strings.Split(at(4), ";") {
		points = appendPoint(points, pt)
	}
	return Project{Title: at(0), Duration: at(1), Subtitle: at(2), Tech: at(3), Points: points}
}

// UnmarshalJSON accepts a bare string (the degree) or an object. "college"
// is read as an alias of institution.
func (e *Education) UnmarshalJSON(b []byte) error {
	if s, ok := bareString(b); ok {
		*e = Education{Degree: strings.TrimSpace(s)}
		return nil
	}
	var raw struct {
		Degree      string `json:"degree"`
		Institution string `json:"institution"`
		College     string `json:"college"`
		Year        string `json:"year"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*e = Education{
		Degree:      raw.Degree,
		Institution: firstNonEmpty(raw.Institution, raw.College),
		Year:        raw.Year,
	}
	return nil
}

// Normalize trims every text field and drops entries the renderer cannot use:
// blank skills and certifications, projects without a title, education
// without a degree and experience entries with nothing in them.
func (r Resume) Normalize() Resume {
	out := Resume{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
		LinkedIn: strings.TrimSpace(r.LinkedIn),
		GitHub:   strings.TrimSpace(r.GitHub),
		Summary:  strings.TrimSpace(r.Summary),
	}
	out.TechnicalSkills = trimList(r.TechnicalSkills)
	out.Certifications = trimList(r.Certifications)

	out.Experience = []Experience{}
	for _, e := range r.Experience {
		e = Experience{
			Role:     strings.TrimSpace(e.Role),
			Company:  strings.TrimSpace(e.Company),
			Duration: strings.TrimSpace(e.Duration),
			Location: strings.TrimSpace(e.Location),
			Points:   Points(trimList(e.Points)),
		}
		if e.Role == "" && e.Company == "" && e.Duration == "" && e.Location == "" && len(e.Points) == 0 {
			continue
		}
		out.Experience = append(out.Experience, e)
	}

	out.Projects = []Project{}
	for _, p := range r.Projects {
		p = Project{
			Title:    strings.TrimSpace(p.Title),
			Duration: strings.TrimSpace(p.Duration),
			Subtitle: strings.TrimSpace(p.Subtitle),
			Tech:     strings.TrimSpace(p.Tech),
			Points:   Points(trimList(p.Points)),
		}
		if p.Title == "" {
			continue
		}
		out.Projects = append(out.Projects, p)
	}

	out.Education = []Education{}
	for _, e := range r.Education {
		e = Education{
			Degree:      strings.TrimSpace(e.Degree),
			Institution: strings.TrimSpace(e.Institution),
			Year:        strings.TrimSpace(e.Year),
		}
		if e.Degree == "" {
			continue
		}
		out.Education = append(out.Education, e)
	}
	return out
}

// Clone returns a copy that shares no slices with r.
func (r Resume) Clone() Resume {
	out := r
	out.TechnicalSkills = append([]string(nil), r.TechnicalSkills...)
	out.Certifications = append([]string(nil), r.Certifications...)
	out.Education = append([]Education(nil), r.Education...)
	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Points = append(Points(nil), e.Points...)
		out.Experience[i] = e
	}
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Points = append(Points(nil), p.Points...)
		out.Projects[i] = p
	}
	return out
}

func trimList(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func bareString(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", false
	}
	return s, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
