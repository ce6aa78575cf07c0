package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-builder/internal/domain"
)

// queryJSON runs a statement returning a single json value and decodes it
// into out.
func (r *ResumesRepo) queryJSON(ctx context.Context, out any, sql string, args ...any) error {
	var raw []byte
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// History returns every record of a user, newest first.
func (r *ResumesRepo) History(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	out := []domain.ResumeRecord{}
	err := r.queryJSON(ctx, &out,
		`SELECT coalesce(json_agg(row_to_json(r) ORDER BY r.created_at DESC), '[]')
		 FROM resumes r WHERE r.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("resume history: %w", err)
	}
	return out, nil
}
