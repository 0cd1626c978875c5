// Package persistence provides database abstraction for insight records and
// user profiles, with PostgreSQL and SQLite implementations.
package persistence

import (
	"context"
	"errors"

	"careerlens/internal/core"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an insert violates a uniqueness
	// constraint. The insight pipeline treats it as "somebody else won the
	// race" and re-reads the winning record.
	ErrDuplicateKey = errors.New("duplicate key")
)

// InsightRepository handles industry insight persistence. Create must
// enforce at-most-one record per industry at the storage level, returning
// ErrDuplicateKey on conflict; callers do not hold application-level locks.
type InsightRepository interface {
	// Create inserts a new insight record, failing with ErrDuplicateKey if
	// a record for the same industry already exists.
	Create(ctx context.Context, insight *core.IndustryInsight) error

	// FindByIndustry retrieves the insight record for an industry, or
	// ErrNotFound.
	FindByIndustry(ctx context.Context, industry string) (*core.IndustryInsight, error)
}

// UserRepository handles user profile persistence.
type UserRepository interface {
	// Create inserts a new user profile.
	Create(ctx context.Context, user *core.UserProfile) error

	// FindByID retrieves a profile by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*core.UserProfile, error)

	// FindByAuthID retrieves a profile by its auth provider identity, or
	// ErrNotFound.
	FindByAuthID(ctx context.Context, authID string) (*core.UserProfile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, user *core.UserProfile) error
}

// Database bundles the repositories behind one connection.
type Database interface {
	Insights() InsightRepository
	Users() UserRepository
	Migrate(ctx context.Context) error
	Close() error
}
