package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-builder/internal/model"
)

func TestGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resumes" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"pdf_url":"https://cdn/x.pdf","resume_id":"6f1c7f1e-8f0b-4b39-9d7e-3b1b1d2fa001","template":"template2"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Generate(context.Background(), "u1", model.Resume{Name: "Ada"}, model.Template2, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.PDFURL != "https://cdn/x.pdf" || res.Template != model.Template2 || res.ResumeID.String() != "6f1c7f1e-8f0b-4b39-9d7e-3b1b1d2fa001" {
		t.Errorf("res = %+v", res)
	}
	if got["user_id"] != "u1" || got["useAI"] != true || got["resumeData"].(map[string]any)["name"] != "Ada" {
		t.Errorf("request body = %v", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"name, email and summary required"}`))
	}))
	_, err := New(srv.URL).Generate(context.Background(), "u", model.Resume{}, model.Template1, false)
	if err == nil || err.Error() != "name, email and summary required" {
		t.Errorf("api error = %v", err)
	}
	srv.Close()

	_, err = New(srv.URL).Generate(context.Background(), "u", model.Resume{}, model.Template1, false)
	if err == nil || !strings.HasPrefix(err.Error(), "network error: ") {
		t.Errorf("network error = %v", err)
	}
}

func TestHistoryFailureIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/resumes/history/u1" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":[{"id":"6f1c7f1e-8f0b-4b39-9d7e-3b1b1d2fa001","user_id":"u1","name":"Ada","pdf_url":null,"status":"draft","created_at":"2025-01-02T03:04:05Z"}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	recs := c.History(context.Background(), "u1")
	if len(recs) != 1 || recs[0].Name != "Ada" || recs[0].Status() != "draft" {
		t.Errorf("recs = %+v", recs)
	}
	if recs := c.History(context.Background(), "broken"); recs == nil || len(recs) != 0 {
		t.Errorf("failure should give empty list, got %#v", recs)
	}
}

func TestEnhanceSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		switch req["section"] {
		case "summary":
			w.Write([]byte(`{"success":true,"enhanced":{"summary":"Sharp summary"}}`))
		case "skills":
			w.Write([]byte(`{"success":true,"enhanced":{"skills":["Go"," ","SQL"]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"unknown section: ` + req["section"] + `"}`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL)

	enh, err := c.EnhanceSection(context.Background(), model.SectionSummary, "x")
	if err != nil || enh.Text != "Sharp summary" {
		t.Errorf("summary = %+v %v", enh, err)
	}
	enh, err = c.EnhanceSection(context.Background(), model.SectionSkills, "x")
	if err != nil || len(enh.Items) != 2 {
		t.Errorf("skills = %+v %v", enh, err)
	}
	if _, err := c.EnhanceSection(context.Background(), "hobbies", "x"); err == nil || !strings.Contains(err.Error(), "unknown section") {
		t.Errorf("err = %v", err)
	}
}
