// Package insights turns untrusted model output into schema-valid industry
// insight records and guards their per-industry creation protocol.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"careerlens/internal/core"
	"careerlens/internal/logger"
	"careerlens/internal/persistence"
)

// Generator is the text-generation collaborator. Implementations are
// stateless from the service's point of view and safe to call concurrently.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates prompt building, generation, sanitization, parsing,
// normalization, and the uniqueness-guarded persistence of insight records.
type Service struct {
	gen Generator
	db  persistence.Database
	now func() time.Time
	log *slog.Logger
}

// NewService creates the insight service.
func NewService(gen Generator, db persistence.Database) *Service {
	return &Service{
		gen: gen,
		db:  db,
		now: time.Now,
		log: logger.Get(),
	}
}

// Generate runs the full pipeline for an industry without persisting
// anything. It returns ErrUpstreamUnavailable or ErrMalformedPayload for
// the two recoverable failure kinds; any other malformedness is absorbed
// by normalization.
func (s *Service) Generate(ctx context.Context, industry string) (core.InsightData, error) {
	raw, err := s.gen.GenerateText(ctx, BuildPrompt(industry))
	if err != nil {
		return core.DefaultInsightData(), fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	decoded, err := Decode(StripFences(raw))
	if err != nil {
		return core.DefaultInsightData(), err
	}

	return Normalize(decoded), nil
}

// GetOrCreate returns the persisted insight record for an industry,
// creating it on first miss. Generation and parse failures are absorbed:
// the record is created with all-default content rather than left absent.
// When a concurrent caller wins the creation race, the locally computed
// payload is discarded and the winning record returned; the storage-level
// uniqueness constraint is the sole correctness mechanism.
func (s *Service) GetOrCreate(ctx context.Context, industry string) (*core.IndustryInsight, error) {
	if industry == "" {
		return nil, fmt.Errorf("industry is required")
	}

	existing, err := s.db.Insights().FindByIndustry(ctx, industry)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return nil, err
	}

	data, genErr := s.Generate(ctx, industry)
	if genErr != nil {
		s.log.Warn("insight generation failed, storing defaults",
			"industry", industry, "error", genErr.Error())
	}

	now := s.now().UTC()
	record := &core.IndustryInsight{
		ID:          uuid.NewString(),
		Industry:    industry,
		InsightData: data,
		CreatedAt:   now,
		NextUpdate:  now.Add(core.RefreshInterval),
	}

	err = s.db.Insights().Create(ctx, record)
	if errors.Is(err, persistence.ErrDuplicateKey) {
		// Lost the race; somebody else created the record between our
		// lookup and insert. Their version wins.
		return s.db.Insights().FindByIndustry(ctx, industry)
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Industry   string   `json:"industry"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

// UpdateProfile ensures an insight record exists for the submitted industry
// and then applies the profile fields to the user. The profile fields are
// updated even when the insight path fails; an existing record for the
// industry is never overwritten.
func (s *Service) UpdateProfile(ctx context.Context, user *core.UserProfile, upd ProfileUpdate) (*core.UserProfile, error) {
	if upd.Industry == "" {
		return nil, fmt.Errorf("industry is required")
	}

	if _, err := s.GetOrCreate(ctx, upd.Industry); err != nil {
		s.log.Error("failed to ensure industry insight",
			"industry", upd.Industry, "error", err.Error())
	}

	user.Industry = upd.Industry
	user.Experience = upd.Experience
	user.Bio = upd.Bio
	user.Skills = upd.Skills
	if user.Skills == nil {
		user.Skills = []string{}
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.db.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return user, nil
}
