package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-builder/internal/domain"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/model"
)

// These tests need a disposable Postgres; set TEST_DATABASE_URL to run them.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	if err := migration.RunMigrations(ctx, pool); err != nil {
		t.Fatal(err)
	}
	return pool
}

func TestResumesRepo(t *testing.T) {
	repo := NewResumesRepo(testPool(t))
	ctx := context.Background()
	user := "repo-test-" + uuid.NewString()

	if got, err := repo.History(ctx, user); err != nil || len(got) != 0 || got == nil {
		t.Fatalf("empty history = %#v, %v", got, err)
	}

	older := &domain.ResumeRecord{
		UserID:    user,
		Template:  model.Template1,
		Resume:    model.Resume{Name: "Ada", Email: "ada@example.com", Summary: "first"},
		CreatedAt: time.Now().Add(-time.Hour).UTC(),
	}
	newer := &domain.ResumeRecord{
		UserID:   user,
		Template: model.Template3,
		Resume: model.Resume{
			Name: "Ada", Email: "ada@example.com", Summary: "second", GitHub: "ada",
			Experience: []model.Experience{{Role: "Engineer", Points: model.Points{"shipped"}}},
		},
	}
	for _, rec := range []*domain.ResumeRecord{older, newer} {
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.AttachPDF(ctx, newer.ID, "https://cdn/x.pdf"); err != nil {
		t.Fatal(err)
	}
	if err := repo.AttachPDF(ctx, uuid.New(), "https://cdn/y.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("attach to missing record = %v", err)
	}

	got, err := repo.History(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("history order = %+v", got)
	}
	if got[0].Status() != domain.StatusReady || got[1].Status() != domain.StatusDraft {
		t.Errorf("statuses = %s %s", got[0].Status(), got[1].Status())
	}
	if got[0].GitHub != "ada" || got[1].LinkedIn != "" || got[0].Experience[0].Points[0] != "shipped" {
		t.Errorf("round trip = %+v", got[0])
	}
}
