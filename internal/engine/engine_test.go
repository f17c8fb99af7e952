package engine_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AvinashMishraaa/Talentflow/internal/config"
	"github.com/AvinashMishraaa/Talentflow/internal/db"
	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/engine"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

type testEnv struct {
	Engine *engine.Engine
	Store  *store.Store
	Ctx    context.Context
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed.Jobs = 10
	cfg.Seed.CandidatesPerJob = 3
	return cfg
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	durable, err := store.NewSQLiteTier(conn)
	if err != nil {
		t.Fatalf("sqlite tier: %v", err)
	}
	st := store.New(store.FileTier{Dir: filepath.Join(dir, "kv")}, durable)
	eng := engine.New(st, testConfig())
	eng.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return testEnv{Engine: eng, Store: st, Ctx: context.Background()}
}

func TestSeedOnFirstUse(t *testing.T) {
	env := newTestEnv(t)
	stats := env.Engine.Stats(env.Ctx)
	if stats.ActiveJobs+stats.ArchivedJobs != 10 {
		t.Fatalf("jobs = %d, want 10", stats.ActiveJobs+stats.ArchivedJobs)
	}
	if stats.Candidates != 30 {
		t.Fatalf("candidates = %d, want 30", stats.Candidates)
	}
	if stats.Assessments != 30 {
		t.Fatalf("assessments = %d, want 30", stats.Assessments)
	}
	// Every candidate references a seeded job.
	jobs := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})
	known := map[int]bool{}
	for _, j := range jobs.Data {
		known[j.ID] = true
	}
	candidates := env.Engine.ListCandidates(env.Ctx, engine.CandidateListOptions{PageSize: 100})
	for _, c := range candidates.Data {
		if !known[c.JobID] {
			t.Fatalf("candidate %d references unknown job %d", c.ID, c.JobID)
		}
	}
}

func TestSeedSurvivesRestart(t *testing.T) {
	env := newTestEnv(t)
	first := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})

	// A second engine over the same store must load, not regenerate.
	created := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Marker Role"})
	eng2 := engine.New(env.Store, testConfig())
	eng2.Now = env.Engine.Now
	second := eng2.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})
	if second.Total != first.Total+1 {
		t.Fatalf("second engine sees %d jobs, want %d", second.Total, first.Total+1)
	}
	if _, err := eng2.GetJob(env.Ctx, created.ID); err != nil {
		t.Fatalf("marker job lost across restart: %v", err)
	}
}

func TestListJobsFilters(t *testing.T) {
	env := newTestEnv(t)
	all := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})

	archived := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Status: "archived", PageSize: 100})
	for _, j := range archived.Data {
		if j.Status != "archived" {
			t.Fatalf("status filter leaked job %d (%s)", j.ID, j.Status)
		}
	}
	active := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Status: "active", PageSize: 100})
	if archived.Total+active.Total != all.Total {
		t.Fatalf("status partitions do not sum: %d + %d != %d", archived.Total, active.Total, all.Total)
	}

	urgent := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Tag: "Urgent", PageSize: 100})
	if urgent.Total == 0 {
		t.Fatal("seed should contain Urgent jobs")
	}

	search := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Search: "backend", PageSize: 100})
	for _, j := range search.Data {
		if j.Title == "" {
			t.Fatal("empty title in search result")
		}
	}
	if search.Total == 0 {
		t.Fatal("case-insensitive search should match Backend Developer jobs")
	}

	desc := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Order: "desc", PageSize: 100})
	for i := 1; i < len(desc.Data); i++ {
		if desc.Data[i].Order > desc.Data[i-1].Order {
			t.Fatal("desc ordering violated")
		}
	}
}

func TestPaginationInvariants(t *testing.T) {
	env := newTestEnv(t)
	page := env.Engine.ListCandidates(env.Ctx, engine.CandidateListOptions{Page: 2, PageSize: 7})
	if page.Page != 2 || page.PageSize != 7 {
		t.Fatalf("echo fields: page=%d pageSize=%d", page.Page, page.PageSize)
	}
	if page.Total != 30 {
		t.Fatalf("total = %d, want 30", page.Total)
	}
	wantPages := (30 + 6) / 7
	if page.TotalPages != wantPages {
		t.Fatalf("totalPages = %d, want %d", page.TotalPages, wantPages)
	}
	if len(page.Data) != 7 {
		t.Fatalf("page 2 len = %d, want 7", len(page.Data))
	}

	// Filter first, then paginate: a stage filter with 5 matches and
	// pageSize 20 reports totalPages 1.
	stage := env.Engine.ListCandidates(env.Ctx, engine.CandidateListOptions{Stage: domain.StageHired, PageSize: 20})
	if stage.Total != 5 {
		t.Fatalf("hired total = %d, want 5", stage.Total)
	}
	if stage.TotalPages != 1 {
		t.Fatalf("hired totalPages = %d, want 1", stage.TotalPages)
	}

	// Out-of-range pages return empty data, not an error.
	far := env.Engine.ListCandidates(env.Ctx, engine.CandidateListOptions{Page: 99, PageSize: 7})
	if len(far.Data) != 0 || far.Total != 30 {
		t.Fatalf("far page: len=%d total=%d", len(far.Data), far.Total)
	}

	// Empty result sets still report one page.
	none := env.Engine.ListCandidates(env.Ctx, engine.CandidateListOptions{Search: "no-such-person"})
	if none.Total != 0 || none.TotalPages != 1 {
		t.Fatalf("empty: total=%d totalPages=%d", none.Total, none.TotalPages)
	}
}

func TestCreateJobDefaultsAndSlug(t *testing.T) {
	env := newTestEnv(t)
	job := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{})
	if job.Title != "Untitled Job" || job.Status != "active" {
		t.Fatalf("defaults: %+v", job)
	}
	if job.Tags == nil {
		t.Fatal("tags should default to empty, not nil")
	}
	if job.Slug != "untitled-job" {
		t.Fatalf("slug = %s", job.Slug)
	}

	a := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Staff Engineer"})
	b := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Staff Engineer"})
	c := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Staff Engineer"})
	if a.Slug != "staff-engineer" || b.Slug != "staff-engineer-1" || c.Slug != "staff-engineer-2" {
		t.Fatalf("slug suffixes: %s %s %s", a.Slug, b.Slug, c.Slug)
	}
}

func TestCreateJobAssignsNextOrder(t *testing.T) {
	env := newTestEnv(t)
	before := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})
	job := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Tail Role"})
	if job.Order != before.Total+1 {
		t.Fatalf("order = %d, want %d", job.Order, before.Total+1)
	}
}

func TestUpdateJob(t *testing.T) {
	env := newTestEnv(t)
	job := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Platform Engineer"})

	title := "Infra Engineer"
	updated, err := env.Engine.UpdateJob(env.Ctx, job.ID, engine.JobPatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || updated.Slug != "infra-engineer" {
		t.Fatalf("title change: %+v", updated)
	}

	bad := "paused"
	if _, err := env.Engine.UpdateJob(env.Ctx, job.ID, engine.JobPatch{Status: &bad}); err == nil {
		t.Fatal("invalid status should fail")
	}
	archived := "archived"
	updated, err = env.Engine.UpdateJob(env.Ctx, job.ID, engine.JobPatch{Status: &archived})
	if err != nil || updated.Status != "archived" {
		t.Fatalf("archive: %v %+v", err, updated)
	}

	if _, err := env.Engine.UpdateJob(env.Ctx, 99999, engine.JobPatch{Title: &title}); err != engine.ErrNotFound {
		t.Fatalf("missing job: %v", err)
	}
}

func TestUpdateJobSameTitleKeepsSlug(t *testing.T) {
	env := newTestEnv(t)
	job := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Site Reliability Engineer"})
	same := job.Title
	updated, err := env.Engine.UpdateJob(env.Ctx, job.ID, engine.JobPatch{Title: &same})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != job.Slug {
		t.Fatalf("slug changed from %s to %s", job.Slug, updated.Slug)
	}
}

func TestReorderJobs(t *testing.T) {
	env := newTestEnv(t)

	byOrder := func() []int {
		page := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 100})
		ids := make([]int, len(page.Data))
		for i, j := range page.Data {
			if j.Order != i+1 {
				t.Fatalf("order not dense at %d: %d", i, j.Order)
			}
			ids[i] = j.ID
		}
		return ids
	}

	before := byOrder()
	if err := env.Engine.ReorderJobs(env.Ctx, 1, 3); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	after := byOrder()
	// [a b c d ...] with from=1 to=3 becomes [b a c d ...]: the moved job
	// is inserted before the job that held order 3.
	if after[0] != before[1] || after[1] != before[0] || after[2] != before[2] {
		t.Fatalf("reorder permutation wrong: before=%v after=%v", before, after)
	}

	// Unknown fromOrder is a validation error and leaves orders untouched.
	if err := env.Engine.ReorderJobs(env.Ctx, 9999, 1); err == nil {
		t.Fatal("unknown fromOrder should fail")
	}
	unchanged := byOrder()
	for i := range after {
		if unchanged[i] != after[i] {
			t.Fatalf("failed reorder mutated state: %v vs %v", unchanged, after)
		}
	}

	// Moving to an order past the end appends.
	if err := env.Engine.ReorderJobs(env.Ctx, 1, 9999); err != nil {
		t.Fatalf("reorder to end: %v", err)
	}
	final := byOrder()
	if final[len(final)-1] != after[0] {
		t.Fatalf("job should move to the end: %v", final)
	}
}

func TestSlugExists(t *testing.T) {
	env := newTestEnv(t)
	job := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Security Analyst"})
	if !env.Engine.SlugExists(env.Ctx, "security-analyst", 0) {
		t.Fatal("slug should exist")
	}
	if env.Engine.SlugExists(env.Ctx, "security-analyst", job.ID) {
		t.Fatal("excluding the owning job should hide the slug")
	}
	if env.Engine.SlugExists(env.Ctx, "never-used-slug", 0) {
		t.Fatal("unknown slug should not exist")
	}
}

func TestCreateCandidateDefaults(t *testing.T) {
	env := newTestEnv(t)
	c, err := env.Engine.CreateCandidate(env.Ctx, engine.CandidateCreateOptions{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Unnamed Candidate" || c.Stage != domain.StageApplied {
		t.Fatalf("defaults: %+v", c)
	}
	first := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 1})
	if c.JobID != first.Data[0].ID {
		t.Fatalf("jobId = %d, want first job %d", c.JobID, first.Data[0].ID)
	}

	if _, err := env.Engine.CreateCandidate(env.Ctx, engine.CandidateCreateOptions{Stage: "bogus"}); err == nil {
		t.Fatal("invalid stage should fail")
	}
}

func TestStageChangeAppendsTimeline(t *testing.T) {
	env := newTestEnv(t)
	c, err := env.Engine.CreateCandidate(env.Ctx, engine.CandidateCreateOptions{Name: "Pat Doe", Stage: domain.StageApplied})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	baseline := len(env.Engine.Timeline(env.Ctx, c.ID))

	screen := domain.StageScreen
	updated, err := env.Engine.UpdateCandidate(env.Ctx, c.ID, engine.CandidatePatch{Stage: &screen})
	if err != nil || updated.Stage != screen {
		t.Fatalf("move: %v %+v", err, updated)
	}
	timeline := env.Engine.Timeline(env.Ctx, c.ID)
	if len(timeline) != baseline+1 {
		t.Fatalf("timeline len = %d, want %d", len(timeline), baseline+1)
	}
	last := timeline[len(timeline)-1]
	if last.From == nil || *last.From != domain.StageApplied || last.To != screen {
		t.Fatalf("entry: %+v", last)
	}

	// Same-stage patch does not append.
	if _, err := env.Engine.UpdateCandidate(env.Ctx, c.ID, engine.CandidatePatch{Stage: &screen}); err != nil {
		t.Fatalf("idempotent move: %v", err)
	}
	if got := len(env.Engine.Timeline(env.Ctx, c.ID)); got != baseline+1 {
		t.Fatalf("same-stage patch appended: len = %d", got)
	}

	// Name-only patch does not append either.
	name := "Pat Q. Doe"
	if _, err := env.Engine.UpdateCandidate(env.Ctx, c.ID, engine.CandidatePatch{Name: &name}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := len(env.Engine.Timeline(env.Ctx, c.ID)); got != baseline+1 {
		t.Fatalf("rename appended timeline entry: len = %d", got)
	}

	bad := "bogus"
	if _, err := env.Engine.UpdateCandidate(env.Ctx, c.ID, engine.CandidatePatch{Stage: &bad}); err == nil {
		t.Fatal("invalid stage should fail")
	}
	if _, err := env.Engine.UpdateCandidate(env.Ctx, 99999, engine.CandidatePatch{Name: &name}); err != engine.ErrNotFound {
		t.Fatalf("missing candidate: %v", err)
	}
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.Engine.CreateCandidate(env.Ctx, engine.CandidateCreateOptions{Name: "Note Target"})
	if got := env.Engine.Notes(env.Ctx, c.ID); len(got) != 0 {
		t.Fatalf("new candidate has %d notes", len(got))
	}
	n1 := env.Engine.AddNote(env.Ctx, c.ID, "strong phone screen")
	n2 := env.Engine.AddNote(env.Ctx, c.ID, "schedule tech round")
	if n1.ID == "" || n1.ID == n2.ID {
		t.Fatalf("note ids: %q %q", n1.ID, n2.ID)
	}
	notes := env.Engine.Notes(env.Ctx, c.ID)
	if len(notes) != 2 || notes[0].Text != "strong phone screen" || notes[1].Text != "schedule tech round" {
		t.Fatalf("notes: %+v", notes)
	}
}

func TestAssignAssessment(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.Engine.CreateCandidate(env.Ctx, engine.CandidateCreateOptions{Name: "Assignee"})
	assessments := env.Engine.ListAssessments(env.Ctx)
	target := assessments[0]

	if err := env.Engine.AssignAssessment(env.Ctx, target.ID, 0); err == nil {
		t.Fatal("candidateId 0 should fail")
	}
	if err := env.Engine.AssignAssessment(env.Ctx, target.ID, c.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Duplicate pair is a silent no-op.
	if err := env.Engine.AssignAssessment(env.Ctx, target.ID, c.ID); err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	list := env.Engine.Assignments(env.Ctx, c.ID)
	if len(list) != 1 {
		t.Fatalf("assignments = %d, want 1", len(list))
	}
	if list[0].Name != target.Name {
		t.Fatalf("assignment name = %q, want %q", list[0].Name, target.Name)
	}

	// Unknown assessment ids still resolve with a placeholder name.
	if err := env.Engine.AssignAssessment(env.Ctx, 424242, c.ID); err != nil {
		t.Fatalf("assign unknown: %v", err)
	}
	list = env.Engine.Assignments(env.Ctx, c.ID)
	if list[1].Name != "Assessment 424242" {
		t.Fatalf("placeholder name = %q", list[1].Name)
	}
}

func TestReplaceAssessmentForJob(t *testing.T) {
	env := newTestEnv(t)
	jobs := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 1})
	jobID := jobs.Data[0].ID

	existing := env.Engine.AssessmentsForJob(env.Ctx, jobID)
	if len(existing) == 0 {
		t.Fatal("seed should give the job assessments")
	}
	replaced := env.Engine.ReplaceAssessmentForJob(env.Ctx, jobID, domain.Assessment{Name: "Custom Screen"})
	if replaced.ID != existing[0].ID {
		t.Fatalf("PUT should keep the existing id: got %d want %d", replaced.ID, existing[0].ID)
	}
	if replaced.JobID != jobID || replaced.Name != "Custom Screen" {
		t.Fatalf("replaced: %+v", replaced)
	}

	// A job with no assessments gets a fresh one.
	fresh := env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Brand New Role"})
	created := env.Engine.ReplaceAssessmentForJob(env.Ctx, fresh.ID, domain.Assessment{Name: "First Pass"})
	if created.ID == 0 || created.CreatedAt == 0 {
		t.Fatalf("upsert insert: %+v", created)
	}
	got := env.Engine.AssessmentsForJob(env.Ctx, fresh.ID)
	if len(got) != 1 || got[0].Name != "First Pass" {
		t.Fatalf("after insert: %+v", got)
	}
}

func TestSubmissions(t *testing.T) {
	env := newTestEnv(t)
	jobs := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{PageSize: 1})
	jobID := jobs.Data[0].ID

	if got := env.Engine.Submissions(env.Ctx, jobID); len(got) != 0 {
		t.Fatalf("fresh job has %d submissions", len(got))
	}
	s1 := env.Engine.SubmitAssessment(env.Ctx, jobID, 7, map[string]any{"q1": 0})
	s2 := env.Engine.SubmitAssessment(env.Ctx, jobID, 8, map[string]any{"q1": 2})
	if s1.ID == s2.ID {
		t.Fatal("submission ids should be unique")
	}
	got := env.Engine.Submissions(env.Ctx, jobID)
	if len(got) != 2 {
		t.Fatalf("submissions = %d, want 2", len(got))
	}
	if got[0].CandidateID != 7 || got[1].CandidateID != 8 {
		t.Fatalf("submission order: %+v", got)
	}
}

func TestNotifications(t *testing.T) {
	env := newTestEnv(t)
	items := env.Engine.Notifications(env.Ctx)
	if len(items) != 5 {
		t.Fatalf("notifications = %d, want 5", len(items))
	}
	for _, n := range items {
		if n.ID == "" || n.Text == "" {
			t.Fatalf("empty notification: %+v", n)
		}
	}
}

func TestReseedDiscardsEdits(t *testing.T) {
	env := newTestEnv(t)
	env.Engine.CreateJob(env.Ctx, engine.JobCreateOptions{Title: "Doomed Role"})
	env.Engine.Reseed(env.Ctx)
	page := env.Engine.ListJobs(env.Ctx, engine.JobListOptions{Search: "doomed", PageSize: 100})
	if page.Total != 0 {
		t.Fatal("reseed should drop created jobs")
	}
	stats := env.Engine.Stats(env.Ctx)
	if stats.ActiveJobs+stats.ArchivedJobs != 10 {
		t.Fatalf("jobs after reseed = %d, want 10", stats.ActiveJobs+stats.ArchivedJobs)
	}
}
