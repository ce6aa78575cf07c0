package ai

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"resume-builder/internal/model"
)

type fakeGenerator struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (g *fakeGenerator) Generate(_ context.Context, m, _ string) (string, error) {
	g.calls = append(g.calls, m)
	if err := g.errs[m]; err != nil {
		return "", err
	}
	return g.replies[m], nil
}

func sampleResume() model.Resume {
	return model.Resume{
		Name:            "Ada",
		Email:           "ada@example.com",
		Summary:         "did things",
		TechnicalSkills: []string{"go"},
		Experience: []model.Experience{
			{Role: "Engineer", Company: "Acme", Points: model.Points{"wrote code"}},
			{Role: "Intern", Company: "Globex"},
		},
	}
}

func TestTryInOrder(t *testing.T) {
	var tried []string
	v, used, err := TryInOrder(context.Background(), nil, []string{"a", "b", "c"}, func(_ context.Context, m string) (int, error) {
		tried = append(tried, m)
		if m == "a" {
			return 0, errors.New("down")
		}
		return len(tried), nil
	})
	if err != nil || used != "b" || v != 2 {
		t.Errorf("got %d %q %v", v, used, err)
	}
	if !reflect.DeepEqual(tried, []string{"a", "b"}) {
		t.Errorf("tried %v", tried)
	}

	_, _, err = TryInOrder(context.Background(), nil, []string{"a", "b"}, func(_ context.Context, m string) (int, error) {
		return 0, errors.New(m + " down")
	})
	if err == nil || !strings.Contains(err.Error(), "a down") || !strings.Contains(err.Error(), "b down") {
		t.Errorf("joined error = %v", err)
	}
}

func TestModelFailuresUseClientLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil)).With("component", "ai")
	gen := &fakeGenerator{errs: map[string]error{"m1": errors.New("quota")}, replies: map[string]string{"m2": `{"summary": "ok"}`}}

	NewClient(gen, []string{"m1", "m2"}, log).EnhanceResume(context.Background(), sampleResume())

	out := buf.String()
	if !strings.Contains(out, "model attempt failed") || !strings.Contains(out, "component=ai") || !strings.Contains(out, "model=m1") {
		t.Errorf("per-model failure not logged through client logger:\n%s", out)
	}
}

func TestEnhanceResumeAllModelsFail(t *testing.T) {
	gen := &fakeGenerator{errs: map[string]error{
		"m1": errors.New("connection refused"),
		"m2": errors.New("HTTP 503"),
	}}
	in := sampleResume()
	got := NewClient(gen, []string{"m1", "m2"}, nil).EnhanceResume(context.Background(), in)
	if !reflect.DeepEqual(got, sampleResume()) {
		t.Errorf("resume changed: %+v", got)
	}
	if !reflect.DeepEqual(gen.calls, []string{"m1", "m2"}) {
		t.Errorf("calls = %v", gen.calls)
	}
}

func TestEnhanceResumeMerges(t *testing.T) {
	gen := &fakeGenerator{
		errs: map[string]error{"m1": errors.New("quota")},
		replies: map[string]string{"m2": "Sure!\n```json\n" + `{
			"summary": "Seasoned engineer",
			"skills": ["Go", " ", "SQL"],
			"experience": [{"points": ["Shipped the platform"]}, {"points": []}, {"points": ["ignored"]}]
		}` + "\n```"},
	}
	in := sampleResume()
	got := NewClient(gen, []string{"m1", "m2"}, nil).EnhanceResume(context.Background(), in)

	if got.Summary != "Seasoned engineer" {
		t.Errorf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.TechnicalSkills, []string{"Go", "SQL"}) {
		t.Errorf("skills = %v", got.TechnicalSkills)
	}
	if !reflect.DeepEqual([]string(got.Experience[0].Points), []string{"Shipped the platform"}) {
		t.Errorf("points[0] = %v", got.Experience[0].Points)
	}
	if len(got.Experience) != 2 || len(got.Experience[1].Points) != 0 {
		t.Errorf("experience = %+v", got.Experience)
	}
	if in.Experience[0].Points[0] != "wrote code" {
		t.Error("input was mutated")
	}
}

func TestEnhanceResumeUnparseableKeepsOriginal(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{"m1": "I cannot help with that", "m2": `{"summary":"unused"}`}}
	got := NewClient(gen, []string{"m1", "m2"}, nil).EnhanceResume(context.Background(), sampleResume())
	if got.Summary != "did things" {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(gen.calls) != 1 {
		t.Errorf("a parse failure should not try the next model: %v", gen.calls)
	}
}

func TestEnhanceSection(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{
		"m": `{"skills": ["Go", "PostgreSQL"]}`,
	}}
	c := NewClient(gen, []string{"m"}, nil)
	got := c.EnhanceSection(context.Background(), model.SectionSkills, "go, postgres")
	if !reflect.DeepEqual(got.Items, []string{"Go", "PostgreSQL"}) {
		t.Errorf("items = %v", got.Items)
	}

	gen.replies["m"] = `{"summary": "  Polished  "}`
	if got := c.EnhanceSection(context.Background(), model.SectionSummary, "raw"); got.Text != "Polished" {
		t.Errorf("summary = %+v", got)
	}

	gen.replies["m"] = `{"experience": "Engineer at Acme\nLead at Initech"}`
	if got := c.EnhanceSection(context.Background(), model.SectionExperience, "x"); len(got.Items) != 2 {
		t.Errorf("string value should split into lines: %+v", got)
	}
}

func TestEnhanceSectionEchoesOnFailure(t *testing.T) {
	gen := &fakeGenerator{errs: map[string]error{"m": errors.New("down")}}
	c := NewClient(gen, []string{"m"}, nil)

	tests := []struct {
		section model.Section
		text    string
		want    model.Enhancement
	}{
		{model.SectionSummary, "  my summary ", model.Enhancement{Section: model.SectionSummary, Text: "my summary"}},
		{model.SectionSkills, "Go, ,SQL", model.Enhancement{Section: model.SectionSkills, Items: []string{"Go", "SQL"}}},
		{model.SectionEducation, "BSc, MIT, 2020\n\nMSc", model.Enhancement{Section: model.SectionEducation, Items: []string{"BSc, MIT, 2020", "MSc"}}},
	}
	for _, tt := range tests {
		if got := c.EnhanceSection(context.Background(), tt.section, tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %+v, want %+v", tt.section, got, tt.want)
		}
	}

	gen.errs = nil
	gen.replies = map[string]string{"m": `{"other": 1}`}
	if got := c.EnhanceSection(context.Background(), model.SectionSummary, "keep"); got.Text != "keep" {
		t.Errorf("missing key should echo: %+v", got)
	}
}

func TestRESTGenerator(t *testing.T) {
	var path, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, key = r.URL.Path, r.URL.Query().Get("key")
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"model not found"}}`))
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" {\"summary\":\"ok\"} "}]}}]}`))
	}))
	defer srv.Close()

	g := NewRESTGenerator(srv.URL, "k1", 0)
	got, err := g.Generate(context.Background(), "models/gemini-2.5-flash", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"summary":"ok"}` || path != "/v1/models/gemini-2.5-flash:generateContent" || key != "k1" {
		t.Errorf("got %q path=%s key=%s", got, path, key)
	}
	if _, err := g.Generate(context.Background(), "broken", "hi"); err == nil || err.Error() != "model not found" {
		t.Errorf("err = %v", err)
	}
}

func TestOpenRouterGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Header.Get("Authorization") != "Bearer or-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"no auth"}}`))
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"skills\":[\"Go\"]}"}}]}`))
	}))
	defer srv.Close()

	got, err := NewOpenRouterGenerator(srv.URL, "or-key", 0).Generate(context.Background(), "openai/gpt-4o-mini", "hi")
	if err != nil || got != `{"skills":["Go"]}` {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := NewOpenRouterGenerator(srv.URL, "bad", 0).Generate(context.Background(), "m", "hi"); err == nil {
		t.Error("expected auth error")
	}
}
