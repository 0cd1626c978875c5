package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"careerlens/internal/core"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// sqlDatabase implements Database over database/sql. Driver differences are
// confined to placeholder style and duplicate-key detection.
type sqlDatabase struct {
	db          *sql.DB
	rebind      func(string) string
	isDuplicate func(error) bool
	insights    *insightRepo
	users       *userRepo
}

func newSQLDatabase(db *sql.DB, rebind func(string) string, isDuplicate func(error) bool) *sqlDatabase {
	d := &sqlDatabase{db: db, rebind: rebind, isDuplicate: isDuplicate}
	d.insights = &insightRepo{d}
	d.users = &userRepo{d}
	return d
}

func (d *sqlDatabase) Insights() InsightRepository { return d.insights }
func (d *sqlDatabase) Users() UserRepository       { return d.users }

func (d *sqlDatabase) Migrate(ctx context.Context) error {
	return runMigrations(ctx, d.db)
}

func (d *sqlDatabase) Close() error {
	return d.db.Close()
}

// insightRepo persists industry insight records.
type insightRepo struct {
	d *sqlDatabase
}

func (r *insightRepo) Create(ctx context.Context, insight *core.IndustryInsight) error {
	salaryRanges, err := json.Marshal(insight.SalaryRanges)
	if err != nil {
		return fmt.Errorf("failed to marshal salary ranges: %w", err)
	}
	topSkills, err := json.Marshal(insight.TopSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal top skills: %w", err)
	}
	keyTrends, err := json.Marshal(insight.KeyTrends)
	if err != nil {
		return fmt.Errorf("failed to marshal key trends: %w", err)
	}
	recommendedSkills, err := json.Marshal(insight.RecommendedSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal recommended skills: %w", err)
	}

	query := r.d.rebind(`
	INSERT INTO industry_insights
	(id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, created_at, next_update)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.d.db.ExecContext(ctx, query,
		insight.ID,
		insight.Industry,
		string(salaryRanges),
		insight.GrowthRate,
		string(insight.DemandLevel),
		string(topSkills),
		string(insight.MarketOutlook),
		string(keyTrends),
		string(recommendedSkills),
		insight.CreatedAt,
		insight.NextUpdate,
	)
	if err != nil {
		if r.d.isDuplicate(err) {
			return fmt.Errorf("insight for industry %q: %w", insight.Industry, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

func (r *insightRepo) FindByIndustry(ctx context.Context, industry string) (*core.IndustryInsight, error) {
	query := r.d.rebind(`
	SELECT id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, created_at, next_update
	FROM industry_insights
	WHERE industry = ?`)

	row := r.d.db.QueryRowContext(ctx, query, industry)

	var insight core.IndustryInsight
	var salaryRanges, topSkills, keyTrends, recommendedSkills string
	var demandLevel, marketOutlook string

	err := row.Scan(
		&insight.ID,
		&insight.Industry,
		&salaryRanges,
		&insight.GrowthRate,
		&demandLevel,
		&topSkills,
		&marketOutlook,
		&keyTrends,
		&recommendedSkills,
		&insight.CreatedAt,
		&insight.NextUpdate,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("insight for industry %q: %w", industry, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan insight: %w", err)
	}

	insight.DemandLevel = core.DemandLevel(demandLevel)
	insight.MarketOutlook = core.MarketOutlook(marketOutlook)
	if err := json.Unmarshal([]byte(salaryRanges), &insight.SalaryRanges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal salary ranges: %w", err)
	}
	if err := json.Unmarshal([]byte(topSkills), &insight.TopSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal top skills: %w", err)
	}
	if err := json.Unmarshal([]byte(keyTrends), &insight.KeyTrends); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key trends: %w", err)
	}
	if err := json.Unmarshal([]byte(recommendedSkills), &insight.RecommendedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommended skills: %w", err)
	}

	return &insight, nil
}

// userRepo persists user profiles.
type userRepo struct {
	d *sqlDatabase
}

func (r *userRepo) Create(ctx context.Context, user *core.UserProfile) error {
	skills, err := json.Marshal(user.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	query := r.d.rebind(`
	INSERT INTO users
	(id, auth_id, email, name, industry, experience, bio, skills, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.d.db.ExecContext(ctx, query,
		user.ID,
		user.AuthID,
		user.Email,
		user.Name,
		user.Industry,
		user.Experience,
		user.Bio,
		string(skills),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if r.d.isDuplicate(err) {
			return fmt.Errorf("user %q: %w", user.AuthID, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*core.UserProfile, error) {
	return r.findOne(ctx, "id", id)
}

func (r *userRepo) FindByAuthID(ctx context.Context, authID string) (*core.UserProfile, error) {
	return r.findOne(ctx, "auth_id", authID)
}

func (r *userRepo) findOne(ctx context.Context, column, value string) (*core.UserProfile, error) {
	query := r.d.rebind(`
	SELECT id, auth_id, email, name, industry, experience, bio, skills, created_at, updated_at
	FROM users
	WHERE ` + column + ` = ?`)

	row := r.d.db.QueryRowContext(ctx, query, value)

	var user core.UserProfile
	var skills string

	err := row.Scan(
		&user.ID,
		&user.AuthID,
		&user.Email,
		&user.Name,
		&user.Industry,
		&user.Experience,
		&user.Bio,
		&skills,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %q: %w", value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if err := json.Unmarshal([]byte(skills), &user.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}

	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *core.UserProfile) error {
	skills, err := json.Marshal(user.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	query := r.d.rebind(`
	UPDATE users
	SET email = ?, name = ?, industry = ?, experience = ?, bio = ?, skills = ?, updated_at = ?
	WHERE id = ?`)

	res, err := r.d.db.ExecContext(ctx, query,
		user.Email,
		user.Name,
		user.Industry,
		user.Experience,
		user.Bio,
		string(skills),
		time.Now().UTC(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %q: %w", user.ID, ErrNotFound)
	}
	return nil
}

// rebindPositional rewrites ? placeholders to $1..$n for drivers that use
// numbered parameters.
func rebindPositional(query string) string {
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func rebindNone(query string) string { return query }
