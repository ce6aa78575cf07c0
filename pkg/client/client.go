// Package client is a Go client for the resume builder HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// SubmitTimeout bounds a resume submission, which includes LaTeX compilation.
const SubmitTimeout = 30 * time.Second

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(SubmitTimeout).
			SetHeader("Accept", "application/json"),
	}
}

type GenerateResponse struct {
	Success  bool             `json:"success"`
	PDFURL   string           `json:"pdf_url"`
	ResumeID uuid.UUID        `json:"resume_id"`
	Template model.TemplateID `json:"template"`
}

// apiError reads the server's {"error": "..."} message, falling back to the
// status code.
func apiError(resp *resty.Response) error {
	if msg := gjson.GetBytes(resp.Body(), "error").String(); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("HTTP %d", resp.StatusCode())
}

func networkError(err error) error {
	return fmt.Errorf("network error: %w", err)
}

// Generate submits a resume and waits for the PDF URL.
func (c *Client) Generate(ctx context.Context, userID string, r model.Resume, tpl model.TemplateID, useAI bool) (*GenerateResponse, error) {
	var out GenerateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"user_id":    userID,
			"resumeData": r,
			"template":   tpl,
			"useAI":      useAI,
		}).
		SetResult(&out).
		Post("/api/resumes")
	if err != nil {
		return nil, networkError(err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	if !out.Success || out.PDFURL == "" {
		return nil, errors.New("invalid JSON from server")
	}
	return &out, nil
}

// History lists a user's records. Any failure yields an empty list.
func (c *Client) History(ctx context.Context, userID string) []domain.ResumeRecord {
	var out struct {
		Data []domain.ResumeRecord `json:"data"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("user_id", userID).
		SetResult(&out).
		Get("/api/resumes/history/{user_id}")
	if err != nil || resp.IsError() || out.Data == nil {
		return []domain.ResumeRecord{}
	}
	return out.Data
}

// EnhanceSection asks the server to rewrite one section.
func (c *Client) EnhanceSection(ctx context.Context, section model.Section, text string) (model.Enhancement, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"section": string(section), "text": text}).
		Post("/api/resumes/enhance-section")
	if err != nil {
		return model.Enhancement{}, networkError(err)
	}
	if resp.IsError() {
		return model.Enhancement{}, apiError(resp)
	}
	v := gjson.GetBytes(resp.Body(), "enhanced."+string(section))
	if !v.Exists() {
		return model.Enhancement{}, errors.New("invalid JSON from server")
	}
	return readEnhancement(section, v), nil
}

func readEnhancement(section model.Section, v gjson.Result) model.Enhancement {
	var lines []string
	if v.IsArray() {
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				lines = append(lines, s)
			}
		}
	} else {
		for _, s := range strings.Split(v.String(), "\n") {
			if s = strings.TrimSpace(s); s != "" {
				lines = append(lines, s)
			}
		}
	}
	if section == model.SectionSummary {
		return model.Enhancement{Section: section, Text: strings.Join(lines, "\n")}
	}
	if lines == nil {
		lines = []string{}
	}
	return model.Enhancement{Section: section, Items: lines}
}
