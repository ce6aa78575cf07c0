// Command test_processor runs one submission through the full pipeline
// against a mock Gemini endpoint, an in-memory record store and a local
// artifact directory. It needs pdflatex unless -fake-latex is set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/parser"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
	"resume-builder/templates"
)

const mockReply = `Here you go:
{"summary": "Backend engineer focused on reliable data pipelines.",
 "technical_skills": ["Go", "PostgreSQL", "LaTeX"],
 "experience": [{"points": ["Cut report generation time by 60%", "Owned the PDF rendering service"]}]}`

func startMockGemini() (string, func()) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]string{"text": mockReply}}},
			}},
		})
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)
	return "http://" + ln.Addr().String(), func() { srv.Close() }
}

type memRepo struct {
	mu   sync.Mutex
	recs map[uuid.UUID]*domain.ResumeRecord
}

func (m *memRepo) Create(_ context.Context, rec *domain.ResumeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = rec
	return nil
}

func (m *memRepo) AttachPDF(_ context.Context, id uuid.UUID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return fmt.Errorf("no record %s", id)
	}
	rec.PDFURL = &url
	return nil
}

func (m *memRepo) History(_ context.Context, userID string) ([]domain.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ResumeRecord{}
	for _, r := range m.recs {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// sourceCompiler writes the LaTeX source instead of a PDF.
type sourceCompiler struct{}

func (sourceCompiler) Compile(_ context.Context, source string, out io.Writer) error {
	_, err := io.WriteString(out, source)
	return err
}

func main() {
	fakeLatex := flag.Bool("fake-latex", false, "write LaTeX source instead of running pdflatex")
	outDir := flag.String("out", "resume-data/generated", "directory for published files")
	flag.Parse()

	log := logger.Setup("development")
	ctx := context.Background()

	baseURL, stopMock := startMockGemini()
	defer stopMock()

	var compiler render.Compiler = infra.NewPDFLatexCompiler("", "", 0)
	if *fakeLatex {
		compiler = sourceCompiler{}
	}

	repo := &memRepo{recs: map[uuid.UUID]*domain.ResumeRecord{}}
	svc := usecase.NewService(
		repo,
		render.New(templates.FS, compiler, os.TempDir(), log),
		infra.NewLocalStore(*outDir, "file://"+*outDir),
		nil,
		ai.NewClient(ai.NewRESTGenerator(baseURL, "test-key", 0), nil, log),
		log,
	)

	form := parser.Form{
		FullName:       "Test User",
		Email:          "test@example.com",
		Phone:          "+1 555 0100",
		GitHub:         "github.com/test-user",
		Summary:        "Engineer who builds things & ships them.",
		Skills:         "Go, SQL, Docker",
		Experience:     "Engineer at Acme - 2020-2023",
		Education:      "B.Tech, MIT, 2019",
		Projects:       "Resume Builder - Go, LaTeX - 2024",
		Certifications: "CKA",
	}

	res, err := svc.Generate(ctx, usecase.GenerateRequest{
		UserID:   "local-test",
		Resume:   form.Resume(),
		Template: "template2",
		UseAI:    true,
	})
	if err != nil {
		slog.Error("generate failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("resume %s -> %s (%s)\n", res.ResumeID, res.PDFURL, res.Template)

	hist, _ := svc.History(ctx, "local-test")
	b, _ := json.MarshalIndent(hist, "", "  ")
	fmt.Println(string(b))
}
