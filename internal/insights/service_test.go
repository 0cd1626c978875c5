package insights

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"careerlens/internal/core"
	"careerlens/internal/persistence"
)

// fakeGenerator returns a canned response or error and counts calls.
type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memDB is an in-memory Database with the same uniqueness semantics the SQL
// implementations enforce with constraints.
type memDB struct {
	mu       sync.Mutex
	insights map[string]*core.IndustryInsight
	users    map[string]*core.UserProfile
}

func newMemDB() *memDB {
	return &memDB{
		insights: map[string]*core.IndustryInsight{},
		users:    map[string]*core.UserProfile{},
	}
}

func (d *memDB) Insights() persistence.InsightRepository { return (*memInsightRepo)(d) }
func (d *memDB) Users() persistence.UserRepository       { return (*memUserRepo)(d) }
func (d *memDB) Migrate(ctx context.Context) error       { return nil }
func (d *memDB) Close() error                            { return nil }

type memInsightRepo memDB

func (r *memInsightRepo) Create(ctx context.Context, insight *core.IndustryInsight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.insights[insight.Industry]; exists {
		return persistence.ErrDuplicateKey
	}
	cp := *insight
	r.insights[insight.Industry] = &cp
	return nil
}

func (r *memInsightRepo) FindByIndustry(ctx context.Context, industry string) (*core.IndustryInsight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	insight, ok := r.insights[industry]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	cp := *insight
	return &cp, nil
}

type memUserRepo memDB

func (r *memUserRepo) Create(ctx context.Context, user *core.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*core.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) FindByAuthID(ctx context.Context, authID string) (*core.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.AuthID == authID {
			cp := *user
			return &cp, nil
		}
	}
	return nil, persistence.ErrNotFound
}

func (r *memUserRepo) Update(ctx context.Context, user *core.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return persistence.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

const validResponse = `{
	"salaryRanges": [{"role": "Engineer", "min": 80000, "max": 160000, "median": 120000, "location": "Remote"}],
	"growthRate": 7.5,
	"demandLevel": "High",
	"topSkills": ["Go", "SQL"],
	"marketOutlook": "Positive",
	"keyTrends": ["AI adoption"],
	"recommendedSkills": [{"skill": "Go", "sources": [{"name": "Tour", "type": "Course", "url": "https://go.dev/tour"}]}]
}`

func newTestService(gen Generator, db persistence.Database) *Service {
	svc := NewService(gen, db)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGenerate(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + validResponse + "\n```"}
	svc := newTestService(gen, nil)

	data, err := svc.Generate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if data.DemandLevel != core.DemandHigh || data.GrowthRate != 7.5 {
		t.Errorf("unexpected data: %+v", data)
	}
	if len(data.SalaryRanges) != 1 {
		t.Errorf("expected 1 salary range, got %d", len(data.SalaryRanges))
	}
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(gen, nil)

	data, err := svc.Generate(context.Background(), "tech")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if data.DemandLevel != core.DemandMedium {
		t.Errorf("expected default data on failure, got %+v", data)
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I am unable to provide that analysis."}
	svc := newTestService(gen, nil)

	data, err := svc.Generate(context.Background(), "tech")
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("error = %v, want ErrMalformedPayload", err)
	}
	if data.GrowthRate != 0 || data.MarketOutlook != core.OutlookNeutral {
		t.Errorf("expected default data on malformed response, got %+v", data)
	}
}

func TestGetOrCreate_MissCreatesRecord(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	db := newMemDB()
	svc := newTestService(gen, db)

	record, err := svc.GetOrCreate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if record.ID == "" {
		t.Error("record must carry a generated ID")
	}
	if record.Industry != "tech" {
		t.Errorf("industry = %q, want tech", record.Industry)
	}
	if got := record.NextUpdate.Sub(record.CreatedAt); got != core.RefreshInterval {
		t.Errorf("NextUpdate - CreatedAt = %v, want %v", got, core.RefreshInterval)
	}

	stored, err := db.Insights().FindByIndustry(context.Background(), "tech")
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.ID != record.ID {
		t.Errorf("stored ID %q != returned ID %q", stored.ID, record.ID)
	}
}

func TestGetOrCreate_HitSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	db := newMemDB()
	svc := newTestService(gen, db)

	first, err := svc.GetOrCreate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("first GetOrCreate failed: %v", err)
	}
	second, err := svc.GetOrCreate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("hit returned a different record: %q vs %q", first.ID, second.ID)
	}
	if gen.callCount() != 1 {
		t.Errorf("generator called %d times, want 1", gen.callCount())
	}
}

func TestGetOrCreate_FailureStoresDefaults(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	db := newMemDB()
	svc := newTestService(gen, db)

	record, err := svc.GetOrCreate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("GetOrCreate must absorb generation failure, got %v", err)
	}
	if record.DemandLevel != core.DemandMedium || record.MarketOutlook != core.OutlookNeutral {
		t.Errorf("expected default content, got %+v", record.InsightData)
	}
	if len(record.SalaryRanges) != 0 {
		t.Errorf("expected empty salary ranges, got %+v", record.SalaryRanges)
	}
	if _, err := db.Insights().FindByIndustry(context.Background(), "tech"); err != nil {
		t.Errorf("default record must still be persisted: %v", err)
	}
}

func TestGetOrCreate_EmptyIndustry(t *testing.T) {
	svc := newTestService(&fakeGenerator{response: validResponse}, newMemDB())
	if _, err := svc.GetOrCreate(context.Background(), ""); err == nil {
		t.Error("expected error for empty industry")
	}
}

// racingInsightRepo simulates losing the creation race: the first Create
// sneaks in a competing record before reporting the duplicate.
type racingInsightRepo struct {
	persistence.InsightRepository
	winner *core.IndustryInsight
	raced  bool
}

func (r *racingInsightRepo) Create(ctx context.Context, insight *core.IndustryInsight) error {
	if !r.raced {
		r.raced = true
		if err := r.InsightRepository.Create(ctx, r.winner); err != nil {
			return err
		}
	}
	return r.InsightRepository.Create(ctx, insight)
}

type racingDB struct {
	*memDB
	repo *racingInsightRepo
}

func (d *racingDB) Insights() persistence.InsightRepository { return d.repo }

func TestGetOrCreate_LostRaceReturnsWinner(t *testing.T) {
	mem := newMemDB()
	winner := &core.IndustryInsight{
		ID:          "winner-id",
		Industry:    "tech",
		InsightData: core.DefaultInsightData(),
		CreatedAt:   time.Now().UTC(),
		NextUpdate:  time.Now().UTC().Add(core.RefreshInterval),
	}
	db := &racingDB{memDB: mem, repo: &racingInsightRepo{
		InsightRepository: mem.Insights(),
		winner:            winner,
	}}
	svc := newTestService(&fakeGenerator{response: validResponse}, db)

	record, err := svc.GetOrCreate(context.Background(), "tech")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if record.ID != "winner-id" {
		t.Errorf("expected the winning record, got ID %q", record.ID)
	}
}

func TestGetOrCreate_ConcurrentCallersShareOneRecord(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	db := newMemDB()
	svc := newTestService(gen, db)

	const callers = 16
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record, err := svc.GetOrCreate(context.Background(), "tech")
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			ids[i] = record.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("caller %d got record %q, caller 0 got %q", i, ids[i], ids[0])
		}
	}
	if len(db.insights) != 1 {
		t.Errorf("expected exactly one stored record, got %d", len(db.insights))
	}
}

func TestUpdateProfile(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	db := newMemDB()
	svc := newTestService(gen, db)

	user := &core.UserProfile{ID: "u1", AuthID: "auth-1", Email: "a@b.c"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user, ProfileUpdate{
		Industry:   "tech",
		Experience: 5,
		Bio:        "gopher",
		Skills:     []string{"Go"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Industry != "tech" || updated.Experience != 5 || updated.Bio != "gopher" {
		t.Errorf("profile fields not applied: %+v", updated)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("UpdatedAt must be set")
	}

	if _, err := db.Insights().FindByIndustry(context.Background(), "tech"); err != nil {
		t.Errorf("insight record must exist after profile update: %v", err)
	}

	stored, err := db.Users().FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Industry != "tech" {
		t.Errorf("stored industry = %q, want tech", stored.Industry)
	}
}

func TestUpdateProfile_InsightFailureStillUpdatesUser(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	db := newMemDB()
	svc := newTestService(gen, db)

	user := &core.UserProfile{ID: "u1", AuthID: "auth-1"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user, ProfileUpdate{Industry: "tech"})
	if err != nil {
		t.Fatalf("UpdateProfile must not fail on insight errors: %v", err)
	}
	if updated.Industry != "tech" {
		t.Errorf("industry = %q, want tech", updated.Industry)
	}
	if updated.Skills == nil {
		t.Error("nil skills must be normalized to an empty slice")
	}
}

func TestUpdateProfile_EmptyIndustry(t *testing.T) {
	svc := newTestService(&fakeGenerator{response: validResponse}, newMemDB())
	user := &core.UserProfile{ID: "u1"}
	if _, err := svc.UpdateProfile(context.Background(), user, ProfileUpdate{}); err == nil {
		t.Error("expected error for empty industry")
	}
}

func TestUpdateProfile_ExistingInsightNotOverwritten(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	db := newMemDB()
	svc := newTestService(gen, db)

	existing := &core.IndustryInsight{
		ID:          "pre-existing",
		Industry:    "tech",
		InsightData: core.DefaultInsightData(),
	}
	if err := db.Insights().Create(context.Background(), existing); err != nil {
		t.Fatalf("seed insight: %v", err)
	}
	user := &core.UserProfile{ID: "u1"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), user, ProfileUpdate{Industry: "tech"}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	record, err := db.Insights().FindByIndustry(context.Background(), "tech")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if record.ID != "pre-existing" {
		t.Errorf("existing record was replaced: %q", record.ID)
	}
	if gen.callCount() != 0 {
		t.Errorf("generator called %d times for an existing industry, want 0", gen.callCount())
	}
}
