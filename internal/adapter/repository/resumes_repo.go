package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-builder/internal/domain"
)

var ErrNotFound = errors.New("resume not found")

type ResumesRepo struct {
	pool *pgxpool.Pool
}

func NewResumesRepo(pool *pgxpool.Pool) *ResumesRepo {
	return &ResumesRepo{pool: pool}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonList(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// Create inserts a draft record. ID and CreatedAt are filled in when zero.
func (r *ResumesRepo) Create(ctx context.Context, rec *domain.ResumeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	lists := make([][]byte, 0, 5)
	for _, v := range []any{rec.TechnicalSkills, rec.Projects, rec.Experience, rec.Education, rec.Certifications} {
		b, err := jsonList(v)
		if err != nil {
			return fmt.Errorf("encode resume lists: %w", err)
		}
		lists = append(lists, b)
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO resumes
		(id, user_id, name, email, phone, template, summary, technical_skills, projects, experience, education, certifications, linkedin, github, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		rec.ID, rec.UserID, rec.Name, rec.Email, rec.Phone, string(rec.Template), rec.Summary,
		lists[0], lists[1], lists[2], lists[3], lists[4],
		nullable(rec.LinkedIn), nullable(rec.GitHub), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// AttachPDF sets the artifact URL on exactly one record.
func (r *ResumesRepo) AttachPDF(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE resumes SET pdf_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("attach pdf: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("attach pdf %s: %w", id, ErrNotFound)
	}
	return nil
}
