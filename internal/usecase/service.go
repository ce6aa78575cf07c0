package usecase

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/ai"
)

type GenerateRequest struct {
	UserID   string
	Resume   model.Resume
	Template string
	UseAI    bool
}

type GenerateResult struct {
	PDFURL   string           `json:"pdf_url"`
	ResumeID uuid.UUID        `json:"resume_id"`
	Template model.TemplateID `json:"template"`
}

type Service struct {
	repo     ResumeRepo
	renderer Renderer
	store    ArtifactStore
	mailer   Mailer
	enhancer Enhancer
	log      *slog.Logger
}

// NewService wires the pipeline. mailer and enhancer may be nil, which
// disables delivery and enrichment.
func NewService(repo ResumeRepo, renderer Renderer, store ArtifactStore, mailer Mailer, enhancer Enhancer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		renderer: renderer,
		store:    store,
		mailer:   mailer,
		enhancer: enhancer,
		log:      log,
	}
}

// Generate validates, stores, renders and publishes one resume. A failure
// after the record is stored leaves it as a draft.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, badRequest("user_id and resumeData required")
	}
	resume := req.Resume.Normalize()
	if err := model.Validate(resume); err != nil {
		return nil, fail(KindBadRequest, StageValidate, err)
	}

	tpl, coerced := model.ResolveTemplate(req.Template)
	if coerced {
		s.log.Info("template resolved to default", "requested", req.Template, "template", tpl)
	}
	log := s.log.With("user_id", userID, "template", tpl)

	if req.UseAI && s.enhancer != nil {
		start := time.Now()
		resume = s.enhancer.EnhanceResume(ctx, resume).Normalize()
		log.Info("enrichment finished", "took", time.Since(start))
	}

	rec := &domain.ResumeRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Template:  tpl,
		Resume:    resume,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		log.Error("persist resume", "error", err)
		return nil, fail(KindStorage, StagePersist, err)
	}
	log = log.With("resume_id", rec.ID)

	art, err := s.renderer.Render(ctx, resume, string(tpl), rec.ID.String())
	if err != nil {
		log.Error("render failed, record left as draft", "error", err)
		return nil, fail(KindRender, StageRender, err)
	}
	defer func() {
		if err := os.Remove(art.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("remove temp pdf", "path", art.Path, "error", err)
		}
	}()

	url, err := s.store.Put(ctx, art.Path, art.Filename)
	if err != nil {
		log.Error("upload pdf", "error", err)
		return nil, fail(KindStorage, StageUpload, err)
	}
	if err := s.repo.AttachPDF(ctx, rec.ID, url); err != nil {
		log.Error("attach pdf url", "error", err)
		return nil, fail(KindStorage, StageUpdate, err)
	}

	s.notify(ctx, log, resume, tpl, art.Path)

	log.Info("resume generated", "pdf_url", url)
	return &GenerateResult{PDFURL: url, ResumeID: rec.ID, Template: tpl}, nil
}

// notify mails the PDF. Delivery problems are logged and never returned.
func (s *Service) notify(ctx context.Context, log *slog.Logger, r model.Resume, tpl model.TemplateID, path string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendResume(ctx, r.Email, r.Name, tpl, path); err != nil {
		log.Warn("email delivery failed", "to", r.Email, "error", err)
		return
	}
	log.Info("resume emailed", "to", r.Email)
}

// History lists a user's records newest first. Records without a PDF are
// included and report status "draft".
func (s *Service) History(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, badRequest("user_id required")
	}
	recs, err := s.repo.History(ctx, userID)
	if err != nil {
		return nil, fail(KindStorage, StageHistory, err)
	}
	if recs == nil {
		recs = []domain.ResumeRecord{}
	}
	return recs, nil
}

// EnhanceSection rewrites one form section, echoing the input when no
// enhancer is configured.
func (s *Service) EnhanceSection(ctx context.Context, section model.Section, text string) model.Enhancement {
	if s.enhancer == nil {
		return ai.Echo(section, text)
	}
	return s.enhancer.EnhanceSection(ctx, section, text)
}
