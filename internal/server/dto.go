package server

import (
	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/engine"
)

// Request payloads

type CreateJobRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Status      string   `json:"status,omitempty" enum:"active,archived"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateJobRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	Status      *string   `json:"status,omitempty" enum:"active,archived"`
	Tags        *[]string `json:"tags,omitempty"`
}

type ReorderJobsRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

type CreateCandidateRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Stage string `json:"stage,omitempty"`
	JobID int    `json:"jobId,omitempty"`
}

type UpdateCandidateRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Stage *string `json:"stage,omitempty"`
	JobID *int    `json:"jobId,omitempty"`
}

type CreateNoteRequest struct {
	Text string `json:"text,omitempty"`
}

type CreateAssessmentRequest struct {
	Name      string            `json:"name,omitempty"`
	JobID     int               `json:"jobId,omitempty"`
	Level     string            `json:"level,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Questions []domain.Question `json:"questions,omitempty"`
}

type UpdateAssessmentRequest struct {
	Name      *string            `json:"name,omitempty"`
	Level     *string            `json:"level,omitempty"`
	Tags      *[]string          `json:"tags,omitempty"`
	Questions *[]domain.Question `json:"questions,omitempty"`
}

type PutAssessmentRequest struct {
	Name      string            `json:"name,omitempty"`
	Level     string            `json:"level,omitempty"`
	Tags      []string          `json:"tags,omitempty"`
	Questions []domain.Question `json:"questions,omitempty"`
}

type SubmitAssessmentRequest struct {
	CandidateID int            `json:"candidateId,omitempty"`
	Answers     map[string]any `json:"answers,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

type AssignAssessmentRequest struct {
	CandidateID int `json:"candidateId"`
}

// Response payloads

type SlugCheckResponse struct {
	Exists bool `json:"exists"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func jobPatch(req UpdateJobRequest) engine.JobPatch {
	return engine.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Status:      req.Status,
		Tags:        req.Tags,
	}
}

func candidatePatch(req UpdateCandidateRequest) engine.CandidatePatch {
	return engine.CandidatePatch{
		Name:  req.Name,
		Email: req.Email,
		Stage: req.Stage,
		JobID: req.JobID,
	}
}

func assessmentPatch(req UpdateAssessmentRequest) engine.AssessmentPatch {
	return engine.AssessmentPatch{
		Name:      req.Name,
		Level:     req.Level,
		Tags:      req.Tags,
		Questions: req.Questions,
	}
}
