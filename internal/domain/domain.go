package domain

// Candidate pipeline stages, in funnel order.
const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

// StageLegacyInterview is rewritten to StageTech by the migration runner.
const StageLegacyInterview = "interview"

// Stages lists the valid pipeline stages in order.
var Stages = []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

func ValidStage(s string) bool {
	for _, stage := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// Timestamps are Unix epoch milliseconds throughout, matching the wire format
// the presentation layer stores and renders.

type Job struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Status      string   `json:"status" enum:"active,archived"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
	CreatedAt   int64    `json:"createdAt"`
}

type Candidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Stage     string `json:"stage" enum:"applied,screen,tech,offer,hired,rejected"`
	JobID     int    `json:"jobId"`
	CreatedAt int64  `json:"createdAt"`
}

// TimelineEntry records one stage change. From is nil only on the synthetic
// entry seeded when the candidate is first generated.
type TimelineEntry struct {
	ID   string  `json:"id"`
	At   int64   `json:"at"`
	From *string `json:"from"`
	To   string  `json:"to"`
}

type Note struct {
	ID   string `json:"id"`
	At   int64  `json:"at"`
	Text string `json:"text"`
}

type Assessment struct {
	ID        int        `json:"id"`
	JobID     int        `json:"jobId,omitempty"`
	Name      string     `json:"name"`
	Level     string     `json:"level,omitempty"`
	Tags      []string   `json:"tags"`
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"createdAt"`
}

type Question struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Text        string              `json:"text"`
	Options     []string            `json:"options,omitempty"`
	AnswerIndex *int                `json:"answerIndex,omitempty"`
	Required    bool                `json:"required"`
	Validation  *QuestionValidation `json:"validation,omitempty"`
	Conditional *QuestionCondition  `json:"conditional,omitempty"`
}

type QuestionValidation struct {
	MaxLength int  `json:"maxLength,omitempty"`
	Min       *int `json:"min,omitempty"`
	Max       *int `json:"max,omitempty"`
}

// QuestionCondition shows a question only when another answer matches.
type QuestionCondition struct {
	QuestionID string `json:"questionId"`
	Equals     string `json:"equals"`
}

// Assignment links an assessment to a candidate. Unique per
// (candidate, assessment) pair.
type Assignment struct {
	AssessmentID int   `json:"assessmentId"`
	At           int64 `json:"at"`
}

// AssignmentDetail is an assignment enriched with the assessment name.
type AssignmentDetail struct {
	AssessmentID int    `json:"assessmentId"`
	Name         string `json:"name"`
	At           int64  `json:"at"`
}

// Submission is one completed assessment run for a job.
type Submission struct {
	ID          string         `json:"id"`
	At          int64          `json:"at"`
	CandidateID int            `json:"candidateId,omitempty"`
	Answers     map[string]any `json:"answers,omitempty"`
}

type Notification struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Stats struct {
	ActiveJobs   int `json:"activeJobs"`
	ArchivedJobs int `json:"archivedJobs"`
	Candidates   int `json:"candidates"`
	Assessments  int `json:"assessments"`
}
