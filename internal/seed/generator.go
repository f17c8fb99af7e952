package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
)

// Version stamps the shape of generated sample data. Bump it when the
// generators change shape so persisted datasets are regenerated on load.
const Version = 3

const (
	dayMs     = 86_400_000
	halfDayMs = 43_200_000
	twoDaysMs = 172_800_000
)

// Generator produces deterministic sample data. Content depends only on the
// inputs and the injected clock: two calls with the same arguments yield
// structurally identical output.
type Generator struct {
	Now func() time.Time
}

func (g Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// GenerateJobs cycles the job catalog over count slots. Every 7th job
// (0-indexed) is archived, every 3rd is tagged Urgent, and order forms the
// dense permutation 1..count.
func (g Generator) GenerateJobs(count int) []domain.Job {
	now := g.now().UnixMilli()
	jobs := make([]domain.Job, 0, count)
	for i := 0; i < count; i++ {
		tpl := jobCatalog[i%len(jobCatalog)]
		title := fmt.Sprintf("%s %d", tpl.Title, i+1)
		status := "active"
		if i%7 == 0 {
			status = "archived"
		}
		tags := []string{"Remote"}
		if i%3 == 0 {
			tags = append(tags, "Urgent")
		}
		jobs = append(jobs, domain.Job{
			ID:          i + 1,
			Title:       title,
			Slug:        domain.Slugify(title),
			Description: tpl.Description,
			Skills:      tpl.Skills,
			Status:      status,
			Tags:        tags,
			Order:       i + 1,
			CreatedAt:   now - int64(i)*dayMs,
		})
	}
	return jobs
}

// GenerateCandidates partitions len(jobs)*perJob candidates evenly across the
// jobs: candidate i belongs to job i/perJob. Stages round-robin over the
// pipeline enum and createdAt decreases strictly with the index.
func (g Generator) GenerateCandidates(jobs []domain.Job, perJob int) []domain.Candidate {
	if len(jobs) == 0 || perJob <= 0 {
		return []domain.Candidate{}
	}
	now := g.now().UnixMilli()
	count := len(jobs) * perJob
	candidates := make([]domain.Candidate, 0, count)
	for i := 0; i < count; i++ {
		candidates = append(candidates, domain.Candidate{
			ID:        i + 1,
			Name:      firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Stage:     domain.Stages[i%len(domain.Stages)],
			JobID:     jobs[i/perJob].ID,
			CreatedAt: now - int64(i)*halfDayMs,
		})
	}
	return candidates
}

// GenerateAssessments produces exactly three assessments per job (Beginner,
// Intermediate, Advanced) from the question bank matching the job's base
// title, or the default bank for titles without one.
func (g Generator) GenerateAssessments(jobs []domain.Job) []domain.Assessment {
	now := g.now().UnixMilli()
	assessments := make([]domain.Assessment, 0, len(jobs)*len(assessmentLevels))
	for _, job := range jobs {
		bank := bankForTitle(job.Title)
		for li, level := range assessmentLevels {
			id := len(assessments) + 1
			assessments = append(assessments, domain.Assessment{
				ID:        id,
				JobID:     job.ID,
				Name:      fmt.Sprintf("%s %s Assessment", baseTitle(job.Title), level),
				Level:     level,
				Tags:      []string{level},
				Questions: bankQuestions(bank, li),
				CreatedAt: now - int64(id)*twoDaysMs,
			})
		}
	}
	return assessments
}

// InitialTimelines synthesizes the first timeline entry for every candidate,
// with a nil from-stage.
func (g Generator) InitialTimelines(candidates []domain.Candidate) map[int][]domain.TimelineEntry {
	now := g.now().UnixMilli()
	timelines := make(map[int][]domain.TimelineEntry, len(candidates))
	for _, c := range candidates {
		timelines[c.ID] = []domain.TimelineEntry{{
			ID:   fmt.Sprintf("%d-0", c.ID),
			At:   now - dayMs,
			From: nil,
			To:   c.Stage,
		}}
	}
	return timelines
}

// baseTitle strips the numeric suffix generated jobs carry, so "Backend
// Developer 12" selects the "Backend Developer" bank.
func baseTitle(title string) string {
	return strings.TrimSpace(strings.TrimRight(title, "0123456789 "))
}

func bankForTitle(title string) []bankQuestion {
	if bank, ok := questionBanks[baseTitle(title)]; ok {
		return bank
	}
	return defaultBank
}

// bankQuestions materializes the bank for one level. Levels rotate the bank so
// the three assessments of a job start at different questions.
func bankQuestions(bank []bankQuestion, level int) []domain.Question {
	questions := make([]domain.Question, 0, len(bank))
	offset := (level * 3) % len(bank)
	for i := range bank {
		q := bank[(offset+i)%len(bank)]
		answer := q.Answer
		questions = append(questions, domain.Question{
			ID:          fmt.Sprintf("q%d", i+1),
			Type:        "single",
			Text:        q.Text,
			Options:     q.Options,
			AnswerIndex: &answer,
			Required:    true,
		})
	}
	return questions
}
