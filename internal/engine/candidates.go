package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

const defaultCandidatePageSize = 40

// CandidateListOptions filter and page the candidates collection.
type CandidateListOptions struct {
	Stage    string
	Search   string // matches name or email, case-insensitive
	JobID    int    // 0 means no filter
	Page     int
	PageSize int
}

// CandidateCreateOptions are parameters for creating a candidate.
type CandidateCreateOptions struct {
	Name  string
	Email string
	Stage string
	JobID int
}

// CandidatePatch merges into an existing candidate. Nil fields are left
// untouched.
type CandidatePatch struct {
	Name  *string
	Email *string
	Stage *string
	JobID *int
}

func (e *Engine) ListCandidates(ctx context.Context, opts CandidateListOptions) Page[domain.Candidate] {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	list := make([]domain.Candidate, 0, len(e.candidates))
	search := strings.ToLower(opts.Search)
	for _, c := range e.candidates {
		if opts.Stage != "" && c.Stage != opts.Stage {
			continue
		}
		if opts.JobID != 0 && c.JobID != opts.JobID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		list = append(list, c)
	}
	return paginate(list, opts.Page, opts.PageSize, defaultCandidatePageSize)
}

func (e *Engine) GetCandidate(ctx context.Context, id int) (domain.Candidate, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.candidateIndex(id)
	if idx < 0 {
		return domain.Candidate{}, ErrNotFound
	}
	return e.candidates[idx], nil
}

func (e *Engine) CreateCandidate(ctx context.Context, opts CandidateCreateOptions) (domain.Candidate, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = "Unnamed Candidate"
	}
	stage := opts.Stage
	if stage == "" {
		stage = domain.StageApplied
	}
	if !domain.ValidStage(stage) {
		return domain.Candidate{}, fmt.Errorf("%w: unknown stage %q", ErrValidation, stage)
	}
	jobID := opts.JobID
	if jobID == 0 && len(e.jobs) > 0 {
		jobID = e.jobs[0].ID
	}
	maxID := 0
	for _, c := range e.candidates {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	candidate := domain.Candidate{
		ID:        maxID + 1,
		Name:      name,
		Email:     opts.Email,
		Stage:     stage,
		JobID:     jobID,
		CreatedAt: e.nowMs(),
	}
	e.candidates = append(e.candidates, candidate)
	store.SaveJSON(ctx, e.Store, keyCandidates, e.candidates)
	return candidate, nil
}

// UpdateCandidate merges the patch. When the stage actually changes, exactly
// one timeline entry is appended recording the transition.
func (e *Engine) UpdateCandidate(ctx context.Context, id int, patch CandidatePatch) (domain.Candidate, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.candidateIndex(id)
	if idx < 0 {
		return domain.Candidate{}, ErrNotFound
	}
	candidate := e.candidates[idx]
	previousStage := candidate.Stage
	if patch.Name != nil {
		candidate.Name = *patch.Name
	}
	if patch.Email != nil {
		candidate.Email = *patch.Email
	}
	if patch.JobID != nil {
		candidate.JobID = *patch.JobID
	}
	if patch.Stage != nil {
		if !domain.ValidStage(*patch.Stage) {
			return domain.Candidate{}, fmt.Errorf("%w: unknown stage %q", ErrValidation, *patch.Stage)
		}
		candidate.Stage = *patch.Stage
	}
	e.candidates[idx] = candidate

	if candidate.Stage != previousStage {
		from := previousStage
		list := e.timelines[id]
		list = append(list, domain.TimelineEntry{
			ID:   fmt.Sprintf("%d-%d", id, len(list)+1),
			At:   e.nowMs(),
			From: &from,
			To:   candidate.Stage,
		})
		e.timelines[id] = list
		store.SaveJSON(ctx, e.Store, keyTimelines, e.timelines)
	}
	store.SaveJSON(ctx, e.Store, keyCandidates, e.candidates)
	return candidate, nil
}

// Timeline returns the candidate's stage history, oldest first. Unknown
// candidates yield an empty list.
func (e *Engine) Timeline(ctx context.Context, id int) []domain.TimelineEntry {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.TimelineEntry{}, e.timelines[id]...)
}

// Notes returns the candidate's notes in creation order.
func (e *Engine) Notes(ctx context.Context, id int) []domain.Note {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Note{}, e.notes[id]...)
}

func (e *Engine) AddNote(ctx context.Context, id int, text string) domain.Note {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	note := domain.Note{
		ID:   uuid.NewString(),
		At:   e.nowMs(),
		Text: text,
	}
	e.notes[id] = append(e.notes[id], note)
	store.SaveJSON(ctx, e.Store, keyNotes, e.notes)
	return note
}

func (e *Engine) candidateIndex(id int) int {
	for i, c := range e.candidates {
		if c.ID == id {
			return i
		}
	}
	return -1
}
