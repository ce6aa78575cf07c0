package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_resumes",
		SQL: `
			CREATE TABLE IF NOT EXISTS resumes (
				id               UUID PRIMARY KEY,
				user_id          TEXT NOT NULL,
				name             TEXT NOT NULL,
				email            TEXT NOT NULL,
				phone            TEXT NOT NULL DEFAULT '',
				template         TEXT NOT NULL,
				summary          TEXT NOT NULL,
				technical_skills JSONB NOT NULL DEFAULT '[]'::jsonb,
				projects         JSONB NOT NULL DEFAULT '[]'::jsonb,
				experience       JSONB NOT NULL DEFAULT '[]'::jsonb,
				education        JSONB NOT NULL DEFAULT '[]'::jsonb,
				certifications   JSONB NOT NULL DEFAULT '[]'::jsonb,
				linkedin         TEXT,
				github           TEXT,
				pdf_url          TEXT,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
	{
		Name: "index_resumes_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS resumes_user_created_idx ON resumes (user_id, created_at DESC);`,
	},
}

// RunMigrations applies every step in order. Steps are written to be safe to
// re-run on each start.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("starting database migrations", "count", len(migrations))
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Debug("migration applied", "name", m.Name)
	}
	slog.Info("all migrations completed")
	return nil
}
