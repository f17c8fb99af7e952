package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/store"
)

const defaultJobPageSize = 20

// JobListOptions filter and page the jobs collection.
type JobListOptions struct {
	Search   string
	Status   string
	Tag      string
	Order    string // "asc" (default) or "desc" by order
	Page     int
	PageSize int
}

// JobCreateOptions are parameters for creating a job.
type JobCreateOptions struct {
	Title       string
	Status      string
	Tags        []string
	Description string
	Skills      []string
}

// JobPatch merges into an existing job. Nil fields are left untouched.
type JobPatch struct {
	Title       *string
	Status      *string
	Tags        *[]string
	Description *string
	Skills      *[]string
}

func (e *Engine) ListJobs(ctx context.Context, opts JobListOptions) Page[domain.Job] {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	list := make([]domain.Job, 0, len(e.jobs))
	search := strings.ToLower(opts.Search)
	for _, j := range e.jobs {
		if opts.Status != "" && j.Status != opts.Status {
			continue
		}
		if opts.Tag != "" && !containsString(j.Tags, opts.Tag) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(j.Title), search) {
			continue
		}
		list = append(list, j)
	}
	if opts.Order == "desc" {
		sort.Slice(list, func(i, k int) bool { return list[i].Order > list[k].Order })
	} else {
		sort.Slice(list, func(i, k int) bool { return list[i].Order < list[k].Order })
	}
	return paginate(list, opts.Page, opts.PageSize, defaultJobPageSize)
}

func (e *Engine) GetJob(ctx context.Context, id int) (domain.Job, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.jobIndex(id)
	if idx < 0 {
		return domain.Job{}, ErrNotFound
	}
	return e.jobs[idx], nil
}

func (e *Engine) CreateJob(ctx context.Context, opts JobCreateOptions) domain.Job {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	title := opts.Title
	if title == "" {
		title = "Untitled Job"
	}
	status := opts.Status
	if status == "" {
		status = "active"
	}
	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}
	maxID := 0
	for _, j := range e.jobs {
		if j.ID > maxID {
			maxID = j.ID
		}
	}
	job := domain.Job{
		ID:          maxID + 1,
		Title:       title,
		Slug:        e.uniqueSlug(title, 0),
		Description: opts.Description,
		Skills:      opts.Skills,
		Status:      status,
		Tags:        tags,
		Order:       len(e.jobs) + 1,
		CreatedAt:   e.nowMs(),
	}
	e.jobs = append(e.jobs, job)
	store.SaveJSON(ctx, e.Store, keyJobs, e.jobs)
	return job
}

func (e *Engine) UpdateJob(ctx context.Context, id int, patch JobPatch) (domain.Job, error) {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.jobIndex(id)
	if idx < 0 {
		return domain.Job{}, ErrNotFound
	}
	job := e.jobs[idx]
	if patch.Title != nil && *patch.Title != "" && *patch.Title != job.Title {
		job.Title = *patch.Title
		job.Slug = e.uniqueSlug(job.Title, id)
	}
	if patch.Status != nil {
		if *patch.Status != "active" && *patch.Status != "archived" {
			return domain.Job{}, fmt.Errorf("%w: status must be active or archived", ErrValidation)
		}
		job.Status = *patch.Status
	}
	if patch.Tags != nil {
		job.Tags = *patch.Tags
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Skills != nil {
		job.Skills = *patch.Skills
	}
	e.jobs[idx] = job
	store.SaveJSON(ctx, e.Store, keyJobs, e.jobs)
	return job, nil
}

// ReorderJobs moves the job at fromOrder to toOrder and renumbers every order
// densely 1..N. The new ordering is computed on a scratch copy and committed
// only at the end, so a caller that bails out beforehand (the failure
// injector) leaves the permutation untouched.
func (e *Engine) ReorderJobs(ctx context.Context, fromOrder, toOrder int) error {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()

	scratch := make([]domain.Job, len(e.jobs))
	copy(scratch, e.jobs)
	sort.Slice(scratch, func(i, k int) bool { return scratch[i].Order < scratch[k].Order })

	fromIdx := -1
	for i, j := range scratch {
		if j.Order == fromOrder {
			fromIdx = i
			break
		}
	}
	if fromIdx < 0 {
		return fmt.Errorf("%w: no job at order %d", ErrValidation, fromOrder)
	}
	moved := scratch[fromIdx]
	scratch = append(scratch[:fromIdx], scratch[fromIdx+1:]...)

	toIdx := len(scratch)
	for i, j := range scratch {
		if j.Order == toOrder {
			toIdx = i
			break
		}
	}
	scratch = append(scratch[:toIdx], append([]domain.Job{moved}, scratch[toIdx:]...)...)
	for i := range scratch {
		scratch[i].Order = i + 1
	}

	e.jobs = scratch
	store.SaveJSON(ctx, e.Store, keyJobs, e.jobs)
	return nil
}

// SlugExists reports whether any job other than excludeID carries the slug.
// Used by callers for pre-validation of title edits.
func (e *Engine) SlugExists(ctx context.Context, slug string, excludeID int) bool {
	e.EnsureInitialized(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slugTaken(strings.ToLower(slug), excludeID)
}

func (e *Engine) jobIndex(id int) int {
	for i, j := range e.jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) slugTaken(slug string, excludeID int) bool {
	for _, j := range e.jobs {
		if j.ID == excludeID {
			continue
		}
		existing := j.Slug
		if existing == "" {
			existing = domain.Slugify(j.Title)
		}
		if existing == slug {
			return true
		}
	}
	return false
}

// uniqueSlug derives a slug from title, disambiguating collisions with a
// numeric suffix. Jobs matching excludeID are ignored so re-slugging a job
// against itself stays stable.
func (e *Engine) uniqueSlug(title string, excludeID int) string {
	base := domain.Slugify(title)
	slug := base
	for i := 1; e.slugTaken(slug, excludeID); i++ {
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return slug
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
