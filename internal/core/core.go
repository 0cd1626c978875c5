package core

import "time"

// RefreshInterval is how far out NextUpdate is set when an insight record is
// created. It is advisory metadata for callers deciding when to regenerate;
// nothing in this service enforces it.
const RefreshInterval = 7 * 24 * time.Hour

// DemandLevel describes hiring demand for an industry.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

// MarketOutlook describes the overall market direction for an industry.
type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "Positive"
	OutlookNeutral  MarketOutlook = "Neutral"
	OutlookNegative MarketOutlook = "Negative"
)

// Cardinality caps applied during normalization.
const (
	MaxTopSkills       = 10
	MaxKeyTrends       = 10
	MaxSourcesPerSkill = 3
)

// DefaultSourceType is substituted when a learning source carries no type.
const DefaultSourceType = "Article"

// SalaryRange is one salary band for a role within an industry.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// LearningSource points at a resource for picking up a recommended skill.
type LearningSource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RecommendedSkill pairs a skill worth learning with up to
// MaxSourcesPerSkill learning sources.
type RecommendedSkill struct {
	Skill   string           `json:"skill"`
	Sources []LearningSource `json:"sources"`
}

// InsightData holds the normalized content fields of an industry insight.
// Every field is guaranteed schema-valid after normalization: enums are
// members of their sets, sequences respect their caps, and no field is
// ever absent.
type InsightData struct {
	SalaryRanges      []SalaryRange      `json:"salaryRanges"`
	GrowthRate        float64            `json:"growthRate"`
	DemandLevel       DemandLevel        `json:"demandLevel"`
	TopSkills         []string           `json:"topSkills"`
	MarketOutlook     MarketOutlook      `json:"marketOutlook"`
	KeyTrends         []string           `json:"keyTrends"`
	RecommendedSkills []RecommendedSkill `json:"recommendedSkills"`
}

// IndustryInsight is the persisted insight record. At most one record
// exists per industry; it is shared by every profile with that industry.
type IndustryInsight struct {
	ID       string `json:"id"`
	Industry string `json:"industry"`
	InsightData
	CreatedAt  time.Time `json:"createdAt"`
	NextUpdate time.Time `json:"nextUpdate"`
}

// UserProfile is the career profile of a single user. AuthID is the
// identity issued by the upstream auth provider; Industry links the
// profile to its shared IndustryInsight.
type UserProfile struct {
	ID         string    `json:"id"`
	AuthID     string    `json:"authId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Industry   string    `json:"industry"`
	Experience int       `json:"experience"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DefaultInsightData returns the neutral, all-defaults insight content used
// when generation or parsing fails. Sequences are empty but non-nil so the
// record always serializes with every field present.
func DefaultInsightData() InsightData {
	return InsightData{
		SalaryRanges:      []SalaryRange{},
		GrowthRate:        0,
		DemandLevel:       DemandMedium,
		TopSkills:         []string{},
		MarketOutlook:     OutlookNeutral,
		KeyTrends:         []string{},
		RecommendedSkills: []RecommendedSkill{},
	}
}

// ValidDemandLevel reports whether v is a member of the DemandLevel set.
func ValidDemandLevel(v string) bool {
	switch DemandLevel(v) {
	case DemandHigh, DemandMedium, DemandLow:
		return true
	}
	return false
}

// ValidMarketOutlook reports whether v is a member of the MarketOutlook set.
func ValidMarketOutlook(v string) bool {
	switch MarketOutlook(v) {
	case OutlookPositive, OutlookNeutral, OutlookNegative:
		return true
	}
	return false
}
