package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

// AssessmentCreateOptions are parameters for creating an assessment.
type AssessmentCreateOptions struct {
	Name      string
	JobID     int
	Level     string
	Tags      []string
	Questions []domain.Question
}

// AssessmentPatch merges into an existing assessment. Nil fields are left
// untouched.
type AssessmentPatch struct {
	Name      *string
	JobID     *int
	Level     *string
	Tags      *[]string
	Questions *[]domain.Question
}

func (e *Engine) ListAssessments(ctx context.Context) []domain.Assessment {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Assessment{}, e.assessments...)
}

// AssessmentsForJob returns only assessments saved for the given job, empty if
// none exist.
func (e *Engine) AssessmentsForJob(ctx context.Context, jobID int) []domain.Assessment {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	list := []domain.Assessment{}
	for _, a := range e.assessments {
		if a.JobID == jobID {
			list = append(list, a)
		}
	}
	return list
}

func (e *Engine) CreateAssessment(ctx context.Context, opts AssessmentCreateOptions) domain.Assessment {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	name := opts.Name
	if name == "" {
		name = "New Assessment"
	}
	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}
	questions := opts.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	assessment := domain.Assessment{
		ID:        e.nextAssessmentID(),
		JobID:     opts.JobID,
		Name:      name,
		Level:     opts.Level,
		Tags:      tags,
		Questions: questions,
		CreatedAt: e.nowMs(),
	}
	e.assessments = append(e.assessments, assessment)
	store.SaveJSON(ctx, e.Store, keyAssessments, e.assessments)
	return assessment
}

func (e *Engine) UpdateAssessment(ctx context.Context, id int, patch AssessmentPatch) (domain.Assessment, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, a := range e.assessments {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Assessment{}, ErrNotFound
	}
	assessment := e.assessments[idx]
	if patch.Name != nil {
		assessment.Name = *patch.Name
	}
	if patch.JobID != nil {
		assessment.JobID = *patch.JobID
	}
	if patch.Level != nil {
		assessment.Level = *patch.Level
	}
	if patch.Tags != nil {
		assessment.Tags = *patch.Tags
	}
	if patch.Questions != nil {
		assessment.Questions = *patch.Questions
	}
	e.assessments[idx] = assessment
	store.SaveJSON(ctx, e.Store, keyAssessments, e.assessments)
	return assessment, nil
}

// ReplaceAssessmentForJob fully overwrites the single assessment associated
// with a job, inserting it when none exists (PUT semantics).
func (e *Engine) ReplaceAssessmentForJob(ctx context.Context, jobID int, assessment domain.Assessment) domain.Assessment {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	assessment.JobID = jobID
	idx := -1
	for i, a := range e.assessments {
		if a.JobID == jobID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		if assessment.ID == 0 {
			assessment.ID = e.assessments[idx].ID
		}
		e.assessments[idx] = assessment
	} else {
		if assessment.ID == 0 {
			assessment.ID = e.nextAssessmentID()
		}
		if assessment.CreatedAt == 0 {
			assessment.CreatedAt = e.nowMs()
		}
		e.assessments = append(e.assessments, assessment)
	}
	store.SaveJSON(ctx, e.Store, keyAssessments, e.assessments)
	return assessment
}

// SubmitAssessment appends a submission record to the per-job submission log,
// which lives under its own storage key.
func (e *Engine) SubmitAssessment(ctx context.Context, jobID int, candidateID int, answers map[string]any) domain.Submission {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	key := submissionKey(jobID)
	list := store.LoadJSON(ctx, e.Store, key, []domain.Submission{})
	submission := domain.Submission{
		ID:          uuid.NewString(),
		At:          e.nowMs(),
		CandidateID: candidateID,
		Answers:     answers,
	}
	list = append(list, submission)
	store.SaveJSON(ctx, e.Store, key, list)
	return submission
}

// Submissions returns the submission log for a job.
func (e *Engine) Submissions(ctx context.Context, jobID int) []domain.Submission {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return store.LoadJSON(ctx, e.Store, submissionKey(jobID), []domain.Submission{})
}

// AssignAssessment links the assessment to a candidate. Re-assigning an
// already-assigned pair is a no-op.
func (e *Engine) AssignAssessment(ctx context.Context, assessmentID, candidateID int) error {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	if candidateID == 0 {
		return fmt.Errorf("%w: candidateId required", ErrValidation)
	}
	for _, a := range e.assigned[candidateID] {
		if a.AssessmentID == assessmentID {
			return nil
		}
	}
	e.assigned[candidateID] = append(e.assigned[candidateID], domain.Assignment{
		AssessmentID: assessmentID,
		At:           e.nowMs(),
	})
	store.SaveJSON(ctx, e.Store, keyAssigned, e.assigned)
	return nil
}

// Assignments returns the candidate's assignment list enriched with each
// assessment's name.
func (e *Engine) Assignments(ctx context.Context, candidateID int) []domain.AssignmentDetail {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.assigned[candidateID]
	detailed := make([]domain.AssignmentDetail, 0, len(list))
	for _, item := range list {
		name := fmt.Sprintf("Assessment %d", item.AssessmentID)
		for _, a := range e.assessments {
			if a.ID == item.AssessmentID {
				name = a.Name
				break
			}
		}
		detailed = append(detailed, domain.AssignmentDetail{
			AssessmentID: item.AssessmentID,
			Name:         name,
			At:           item.At,
		})
	}
	return detailed
}

func (e *Engine) nextAssessmentID() int {
	maxID := 0
	for _, a := range e.assessments {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}
