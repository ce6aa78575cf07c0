package usecase

import (
	"context"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
)

type ResumeRepo interface {
	Create(ctx context.Context, rec *domain.ResumeRecord) error
	AttachPDF(ctx context.Context, id uuid.UUID, url string) error
	History(ctx context.Context, userID string) ([]domain.ResumeRecord, error)
}

type Renderer interface {
	Render(ctx context.Context, r model.Resume, template, key string) (*render.Artifact, error)
}

// ArtifactStore publishes a local file and returns its public URL.
type ArtifactStore interface {
	Put(ctx context.Context, path, filename string) (string, error)
}

type Mailer interface {
	SendResume(ctx context.Context, to, name string, tpl model.TemplateID, pdfPath string) error
}

// Enhancer never fails; it falls back to its input.
type Enhancer interface {
	EnhanceResume(ctx context.Context, r model.Resume) model.Resume
	EnhanceSection(ctx context.Context, section model.Section, text string) model.Enhancement
}
