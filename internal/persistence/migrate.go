package persistence

import "context"

// Schema shared by both drivers. Composite fields (salary_ranges,
// recommended_skills) and string arrays (top_skills, key_trends, skills)
// are stored as JSON text and round-trip losslessly. The UNIQUE constraint
// on industry_insights.industry is the sole correctness mechanism for
// concurrent record creation.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS industry_insights (
		id TEXT PRIMARY KEY,
		industry TEXT NOT NULL UNIQUE,
		salary_ranges TEXT NOT NULL,
		growth_rate DOUBLE PRECISION NOT NULL,
		demand_level TEXT NOT NULL,
		top_skills TEXT NOT NULL,
		market_outlook TEXT NOT NULL,
		key_trends TEXT NOT NULL,
		recommended_skills TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		next_update TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		auth_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		experience INTEGER NOT NULL DEFAULT 0,
		bio TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_industry ON users (industry)`,
}

func runMigrations(ctx context.Context, db execer) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
