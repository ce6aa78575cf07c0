package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
)

type fakeService struct {
	genErr  error
	gotReq  usecase.GenerateRequest
	history []domain.ResumeRecord
	id      uuid.UUID
}

func (s *fakeService) Generate(_ context.Context, req usecase.GenerateRequest) (*usecase.GenerateResult, error) {
	s.gotReq = req
	if s.genErr != nil {
		return nil, s.genErr
	}
	tpl, _ := model.ResolveTemplate(req.Template)
	return &usecase.GenerateResult{PDFURL: "https://cdn/x.pdf", ResumeID: s.id, Template: tpl}, nil
}

func (s *fakeService) History(_ context.Context, userID string) ([]domain.ResumeRecord, error) {
	if s.history == nil {
		return []domain.ResumeRecord{}, nil
	}
	return s.history, nil
}

func (s *fakeService) EnhanceSection(_ context.Context, section model.Section, text string) model.Enhancement {
	if section == model.SectionSummary {
		return model.Enhancement{Section: section, Text: "better " + text}
	}
	return model.Enhancement{Section: section, Items: []string{"a", "b"}}
}

func newTestApp(svc ResumeService) *fiber.App {
	return NewApp(NewHandler(svc, false, nil), RouterConfig{CORSOrigins: "*", RateLimit: 100}, slogDiscard())
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

const validBody = `{
	"user_id": "user-1",
	"template": "template3",
	"useAI": true,
	"resumeData": {
		"name": "Ada", "email": "ada@example.com", "summary": "Engineer",
		"projects": ["Resume Builder"],
		"experience": [{"role": "Engineer", "company": "Acme", "points": [{"text": "Shipped"}]}]
	}
}`

func TestCreateResume(t *testing.T) {
	svc := &fakeService{id: uuid.New()}
	code, body := do(t, newTestApp(svc), "POST", "/api/resumes", validBody)
	if code != 200 {
		t.Fatalf("status = %d body=%v", code, body)
	}
	if body["success"] != true || body["pdf_url"] != "https://cdn/x.pdf" || body["resume_id"] != svc.id.String() || body["template"] != "template3" {
		t.Errorf("body = %v", body)
	}
	if !svc.gotReq.UseAI || svc.gotReq.Resume.Projects[0].Title != "Resume Builder" || svc.gotReq.Resume.Experience[0].Points[0] != "Shipped" {
		t.Errorf("request = %+v", svc.gotReq)
	}
}

func TestCreateResumeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
		msg  string
	}{
		{"missing resumeData", `{"user_id":"u"}`, nil, 400, "user_id and resumeData required"},
		{"missing user", `{"resumeData":{"name":"Ada"}}`, nil, 400, "user_id and resumeData required"},
		{"validation", validBody, &usecase.Error{Kind: usecase.KindBadRequest, Stage: usecase.StageValidate, Err: errors.New("invalid resume: summary")}, 400, "invalid resume: summary"},
		{"persist", validBody, &usecase.Error{Kind: usecase.KindStorage, Stage: usecase.StagePersist, Err: errors.New("duplicate key")}, 400, "duplicate key"},
		{"render", validBody, &usecase.Error{Kind: usecase.KindRender, Stage: usecase.StageRender, Err: errors.New("latex failed")}, 500, "latex failed"},
		{"upload", validBody, &usecase.Error{Kind: usecase.KindStorage, Stage: usecase.StageUpload, Err: errors.New("bucket")}, 500, "bucket"},
		{"unexpected", validBody, errors.New("boom"), 500, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, newTestApp(&fakeService{genErr: tt.err}), "POST", "/api/resumes", tt.body)
			if code != tt.code || body["success"] != false || body["error"] != tt.msg {
				t.Errorf("got %d %v", code, body)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	code, body := do(t, newTestApp(&fakeService{}), "GET", "/api/resumes/history/nobody", "")
	if code != 200 || body["success"] != true {
		t.Fatalf("got %d %v", code, body)
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("data = %#v", body["data"])
	}

	rec := domain.ResumeRecord{UserID: "u"}
	rec.Name = "Ada"
	_, body = do(t, newTestApp(&fakeService{history: []domain.ResumeRecord{rec}}), "GET", "/api/resumes/history/u", "")
	first := body["data"].([]any)[0].(map[string]any)
	if first["status"] != "draft" || first["name"] != "Ada" {
		t.Errorf("record = %v", first)
	}
}

func TestEnhanceSection(t *testing.T) {
	app := newTestApp(&fakeService{})
	code, body := do(t, app, "POST", "/api/resumes/enhance-section", `{"section":"summary","text":"raw"}`)
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	if enh := body["enhanced"].(map[string]any); enh["summary"] != "better raw" {
		t.Errorf("enhanced = %v", enh)
	}

	_, body = do(t, app, "POST", "/api/resumes/enhance-section", `{"section":"skills","text":"x"}`)
	if items, ok := body["enhanced"].(map[string]any)["skills"].([]any); !ok || len(items) != 2 {
		t.Errorf("enhanced = %v", body["enhanced"])
	}

	code, body = do(t, app, "POST", "/api/resumes/enhance-section", `{"section":"hobbies","text":"x"}`)
	if code != 400 || body["success"] != false {
		t.Errorf("unknown section = %d %v", code, body)
	}
}

func TestRootAndRateLimit(t *testing.T) {
	app := NewApp(NewHandler(&fakeService{}, true, nil), RouterConfig{CORSOrigins: "*", RateLimit: 1}, slogDiscard())

	req := httptest.NewRequest("GET", "/", nil)
	resp, err := app.Test(req, -1)
	if err != nil || resp.StatusCode != 200 {
		t.Fatalf("root = %v %v", resp, err)
	}

	if code, _ := do(t, app, "POST", "/api/resumes", validBody); code != 200 {
		t.Fatalf("first submission = %d", code)
	}
	if code, body := do(t, app, "POST", "/api/resumes", validBody); code != 429 || body["success"] != false {
		t.Errorf("second submission = %d %v", code, body)
	}
}

func TestProductionHidesDevMessage(t *testing.T) {
	err := &usecase.Error{Kind: usecase.KindRender, Stage: usecase.StageRender, Err: errors.New("latex failed")}
	app := NewApp(NewHandler(&fakeService{genErr: err}, true, nil), RouterConfig{CORSOrigins: "*"}, slogDiscard())
	_, body := do(t, app, "POST", "/api/resumes", validBody)
	if _, ok := body["stage"]; ok {
		t.Errorf("stage leaked in production: %v", body)
	}

	app = newTestApp(&fakeService{genErr: err})
	_, body = do(t, app, "POST", "/api/resumes", validBody)
	if body["stage"] != "render" {
		t.Errorf("stage missing outside production: %v", body)
	}
}
