// Package ai rewrites resume content with a text-generation model. Every
// operation is best effort: on failure the caller gets its input back.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"resume-builder/internal/model"
)

// DefaultModels is tried in order until one call succeeds.
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// Generator issues a single completion request against one model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// TryInOrder calls fn with each model until one succeeds. The returned error
// joins every failure when none does.
func TryInOrder[T any](ctx context.Context, log *slog.Logger, models []string, fn func(ctx context.Context, model string) (T, error)) (T, string, error) {
	if log == nil {
		log = slog.Default()
	}
	var zero T
	if len(models) == 0 {
		return zero, "", errors.New("no models configured")
	}
	var errs []error
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		v, err := fn(ctx, m)
		if err == nil {
			return v, m, nil
		}
		log.Warn("model attempt failed", "model", m, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", m, err))
	}
	return zero, "", errors.Join(errs...)
}

type Client struct {
	gen    Generator
	models []string
	log    *slog.Logger
}

func NewClient(gen Generator, models []string, log *slog.Logger) *Client {
	if len(models) == 0 {
		models = DefaultModels
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{gen: gen, models: models, log: log}
}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON returns the span from the first '{' to the last '}' in s.
func extractJSON(s string) (string, bool) {
	m := jsonObject.FindString(s)
	if m == "" || !gjson.Valid(m) {
		return "", false
	}
	return m, true
}

// EnhanceResume asks the model to rewrite summary, skills and experience
// points. The input is never modified; on total failure it is returned as is.
func (c *Client) EnhanceResume(ctx context.Context, r model.Resume) model.Resume {
	prompt, err := resumePrompt(r)
	if err != nil {
		c.log.Warn("build enhancement prompt", "error", err)
		return r
	}
	out, used, err := TryInOrder(ctx, c.log, c.models, func(ctx context.Context, m string) (model.Resume, error) {
		text, err := c.gen.Generate(ctx, m, prompt)
		if err != nil {
			return model.Resume{}, err
		}
		raw, ok := extractJSON(text)
		if !ok {
			c.log.Warn("model returned no usable json, keeping original", "model", m)
			return r, nil
		}
		return mergeResume(r, raw), nil
	})
	if err != nil {
		c.log.Error("all models failed, using original resume", "error", err)
		return r
	}
	c.log.Info("resume enhanced", "model", used)
	return out
}

// mergeResume overlays the non-empty rewritten fields onto a copy of r.
// Experience points are matched by index.
func mergeResume(r model.Resume, raw string) model.Resume {
	out := r.Clone()
	doc := gjson.Parse(raw)

	if s := strings.TrimSpace(doc.Get("summary").String()); s != "" {
		out.Summary = s
	}

	skills := doc.Get("technical_skills")
	if !skills.Exists() {
		skills = doc.Get("skills")
	}
	if list := stringList(skills); len(list) > 0 {
		out.TechnicalSkills = list
	}

	doc.Get("experience").ForEach(func(k, v gjson.Result) bool {
		i := int(k.Int())
		if i >= len(out.Experience) {
			return false
		}
		var e model.Experience
		if err := json.Unmarshal([]byte(v.Raw), &e); err == nil && len(e.Points) > 0 {
			out.Experience[i].Points = e.Points
		}
		return true
	})
	return out
}

func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	out := []string{}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" && item.Type == gjson.String {
			out = append(out, s)
		}
	}
	return out
}

// EnhanceSection rewrites the raw text of one form section. On any failure
// the input is echoed back in the section's shape.
func (c *Client) EnhanceSection(ctx context.Context, section model.Section, text string) model.Enhancement {
	prompt := sectionPrompt(section, text)
	enh, used, err := TryInOrder(ctx, c.log, c.models, func(ctx context.Context, m string) (model.Enhancement, error) {
		out, err := c.gen.Generate(ctx, m, prompt)
		if err != nil {
			return model.Enhancement{}, err
		}
		raw, ok := extractJSON(out)
		if !ok {
			return model.Enhancement{}, errors.New("no json object in response")
		}
		return sectionValue(section, gjson.Get(raw, string(section)))
	})
	if err != nil {
		c.log.Warn("section enhancement failed, echoing input", "section", section, "error", err)
		return Echo(section, text)
	}
	c.log.Info("section enhanced", "section", section, "model", used)
	return enh
}

func sectionValue(section model.Section, v gjson.Result) (model.Enhancement, error) {
	if !v.Exists() {
		return model.Enhancement{}, fmt.Errorf("response has no %q key", section)
	}
	if section == model.SectionSummary {
		s := strings.TrimSpace(v.String())
		if s == "" {
			return model.Enhancement{}, errors.New("empty summary")
		}
		return model.Enhancement{Section: section, Text: s}, nil
	}
	items := stringList(v)
	if v.Type == gjson.String {
		items = Echo(section, v.String()).Items
	}
	if len(items) == 0 {
		return model.Enhancement{}, fmt.Errorf("empty %s list", section)
	}
	return model.Enhancement{Section: section, Items: items}, nil
}

// Echo shapes raw section text as an Enhancement without rewriting it.
func Echo(section model.Section, text string) model.Enhancement {
	switch section {
	case model.SectionSummary:
		return model.Enhancement{Section: section, Text: strings.TrimSpace(text)}
	case model.SectionSkills:
		return model.Enhancement{Section: section, Items: splitTrim(text, ",")}
	default:
		return model.Enhancement{Section: section, Items: splitTrim(text, "\n")}
	}
}

func splitTrim(text, sep string) []string {
	out := []string{}
	for _, s := range strings.Split(text, sep) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
