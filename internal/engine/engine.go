// Package engine owns the in-memory collections and implements every
// operation behind the route table. All mutations serialize on one mutex and
// write through to the store before returning.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AvinashMishraaa/Talentflow/internal/config"
	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/migrate"
	"github.com/AvinashMishraaa/Talentflow/internal/seed"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

// Storage keys for the persisted collections.
const (
	keyJobs        = "tf_jobs"
	keyCandidates  = "tf_candidates"
	keyAssessments = "tf_assessments"
	keyTimelines   = "tf_timelines"
	keyNotes       = "tf_notes"
	keyAssigned    = "tf_assigned"
	keySeedVersion = "tf_seed_version"
)

func submissionKey(jobID int) string {
	return fmt.Sprintf("tf_assessment_submit_%d", jobID)
}

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Engine holds the session dataset. Construct one per process with New and
// pass it by reference; operations lazily initialize the dataset exactly once.
type Engine struct {
	Store  *store.Store
	Config *config.Config
	Now    func() time.Time

	initOnce sync.Once

	mu          sync.Mutex
	jobs        []domain.Job
	candidates  []domain.Candidate
	assessments []domain.Assessment
	timelines   map[int][]domain.TimelineEntry
	notes       map[int][]domain.Note
	assigned    map[int][]domain.Assignment
}

func New(st *store.Store, cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		Store:  st,
		Config: cfg,
		Now:    time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) nowMs() int64 {
	return e.now().UnixMilli()
}

// EnsureInitialized loads or seeds the dataset. It is safe under concurrent
// first callers: the gate runs at most once and later callers block until it
// finishes. Initialization never fails the request; an unexpected failure
// degrades to a synchronous fast-tier load with fresh defaults.
func (e *Engine) EnsureInitialized(ctx context.Context) {
	e.initOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Named("engine").Errorw("initialization failed, falling back to sync load", "panic", r)
				e.initializeSync()
			}
		}()
		e.initialize(ctx)
	})
}

func (e *Engine) initialize(ctx context.Context) {
	log := zap.S().Named("engine")

	e.jobs = store.LoadJSON[[]domain.Job](ctx, e.Store, keyJobs, nil)
	e.candidates = store.LoadJSON[[]domain.Candidate](ctx, e.Store, keyCandidates, nil)
	e.assessments = store.LoadJSON[[]domain.Assessment](ctx, e.Store, keyAssessments, nil)
	e.timelines = store.LoadJSON[map[int][]domain.TimelineEntry](ctx, e.Store, keyTimelines, nil)
	e.notes = store.LoadJSON[map[int][]domain.Note](ctx, e.Store, keyNotes, nil)
	e.assigned = store.LoadJSON[map[int][]domain.Assignment](ctx, e.Store, keyAssigned, nil)
	version := store.LoadJSON[int](ctx, e.Store, keySeedVersion, 0)

	if e.needsSeed(version) {
		log.Infow("generating seed data", "jobs", e.Config.Seed.Jobs, "candidatesPerJob", e.Config.Seed.CandidatesPerJob)
		e.generate()
		e.persistAll(ctx)
	}

	res := migrate.Run(e.candidates, e.timelines)
	if res.CandidatesChanged {
		store.SaveJSON(ctx, e.Store, keyCandidates, e.candidates)
	}
	if res.TimelinesChanged {
		store.SaveJSON(ctx, e.Store, keyTimelines, e.timelines)
	}
	if res.Changed() {
		log.Infow("migrated legacy stage values")
	}
}

// initializeSync is the degraded-durability path: fast-tier reads only, fresh
// generation for anything missing, no persistence guarantees.
func (e *Engine) initializeSync() {
	gen := seed.Generator{Now: e.Now}
	e.jobs = store.LoadJSONSync[[]domain.Job](e.Store, keyJobs, nil)
	if e.jobs == nil {
		e.jobs = gen.GenerateJobs(e.Config.Seed.Jobs)
	}
	e.candidates = store.LoadJSONSync[[]domain.Candidate](e.Store, keyCandidates, nil)
	if e.candidates == nil {
		e.candidates = gen.GenerateCandidates(e.jobs, e.Config.Seed.CandidatesPerJob)
	}
	e.assessments = store.LoadJSONSync[[]domain.Assessment](e.Store, keyAssessments, nil)
	if e.assessments == nil {
		e.assessments = gen.GenerateAssessments(e.jobs)
	}
	e.timelines = store.LoadJSONSync(e.Store, keyTimelines, map[int][]domain.TimelineEntry{})
	e.notes = store.LoadJSONSync(e.Store, keyNotes, map[int][]domain.Note{})
	e.assigned = store.LoadJSONSync(e.Store, keyAssigned, map[int][]domain.Assignment{})
}

// needsSeed reports whether the persisted dataset must be regenerated as a
// set: any collection absent or malformed, or a seed version mismatch.
func (e *Engine) needsSeed(version int) bool {
	return e.jobs == nil ||
		e.candidates == nil ||
		e.assessments == nil ||
		e.timelines == nil ||
		e.notes == nil ||
		e.assigned == nil ||
		version != seed.Version
}

func (e *Engine) generate() {
	gen := seed.Generator{Now: e.Now}
	e.jobs = gen.GenerateJobs(e.Config.Seed.Jobs)
	e.candidates = gen.GenerateCandidates(e.jobs, e.Config.Seed.CandidatesPerJob)
	e.assessments = gen.GenerateAssessments(e.jobs)
	e.timelines = gen.InitialTimelines(e.candidates)
	e.notes = map[int][]domain.Note{}
	e.assigned = map[int][]domain.Assignment{}
}

func (e *Engine) persistAll(ctx context.Context) {
	store.SaveJSON(ctx, e.Store, keyJobs, e.jobs)
	store.SaveJSON(ctx, e.Store, keyCandidates, e.candidates)
	store.SaveJSON(ctx, e.Store, keyAssessments, e.assessments)
	store.SaveJSON(ctx, e.Store, keyTimelines, e.timelines)
	store.SaveJSON(ctx, e.Store, keyNotes, e.notes)
	store.SaveJSON(ctx, e.Store, keyAssigned, e.assigned)
	store.SaveJSON(ctx, e.Store, keySeedVersion, seed.Version)
}

// Reseed regenerates the dataset unconditionally and persists it. Used by the
// CLI seed command.
func (e *Engine) Reseed(ctx context.Context) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generate()
	e.persistAll(ctx)
}

// Notifications derives synthetic notification items from the first five
// candidates. Read-only.
func (e *Engine) Notifications(ctx context.Context) []domain.Notification {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.candidates)
	if n > 5 {
		n = 5
	}
	items := make([]domain.Notification, 0, n)
	for _, c := range e.candidates[:n] {
		items = append(items, domain.Notification{
			ID:   fmt.Sprintf("n-%d", c.ID),
			Text: fmt.Sprintf("%s applied to Job #%d", c.Name, c.JobID),
		})
	}
	return items
}

// Stats computes dashboard counts over the current collections.
func (e *Engine) Stats(ctx context.Context) domain.Stats {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	var active int
	for _, j := range e.jobs {
		if j.Status == "active" {
			active++
		}
	}
	return domain.Stats{
		ActiveJobs:   active,
		ArchivedJobs: len(e.jobs) - active,
		Candidates:   len(e.candidates),
		Assessments:  len(e.assessments),
	}
}
