package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/model"
)

type Status string

const (
	// StatusDraft marks a record whose PDF was never attached, usually
	// because rendering or upload failed after the record was saved.
	StatusDraft Status = "draft"
	StatusReady Status = "ready"
)

// ResumeRecord is a persisted resume submission.
type ResumeRecord struct {
	ID       uuid.UUID        `json:"id"`
	UserID   string           `json:"user_id"`
	Template model.TemplateID `json:"template"`
	model.Resume
	PDFURL    *string   `json:"pdf_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (r ResumeRecord) Status() Status {
	if r.PDFURL == nil || *r.PDFURL == "" {
		return StatusDraft
	}
	return StatusReady
}

func (r ResumeRecord) MarshalJSON() ([]byte, error) {
	type alias ResumeRecord
	return json.Marshal(struct {
		alias
		Status Status `json:"status"`
	}{alias(r), r.Status()})
}
