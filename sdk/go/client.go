package talentflowsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Talentflow HTTP API client.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Job represents the API job model.
type Job struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	Order       int      `json:"order"`
	CreatedAt   int64    `json:"createdAt"`
}

// Candidate represents the API candidate model.
type Candidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Stage     string `json:"stage"`
	JobID     int    `json:"jobId"`
	CreatedAt int64  `json:"createdAt"`
}

// TimelineEntry is one stage transition for a candidate.
type TimelineEntry struct {
	ID   string  `json:"id"`
	At   int64   `json:"at"`
	From *string `json:"from"`
	To   string  `json:"to"`
}

// Assessment represents the API assessment model (partial).
type Assessment struct {
	ID        int      `json:"id"`
	JobID     int      `json:"jobId"`
	Name      string   `json:"name"`
	Level     string   `json:"level,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt int64    `json:"createdAt"`
}

// Stats holds dashboard counts.
type Stats struct {
	ActiveJobs   int `json:"activeJobs"`
	ArchivedJobs int `json:"archivedJobs"`
	Candidates   int `json:"candidates"`
	Assessments  int `json:"assessments"`
}

// Page wraps paginated list responses.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// JobListOptions filter the jobs listing.
type JobListOptions struct {
	Search   string
	Status   string
	Tag      string
	Order    string
	Page     int
	PageSize int
}

// Jobs returns a page of jobs.
func (c *Client) Jobs(ctx context.Context, opts JobListOptions) (Page[Job], error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Page > 0 {
		q.Set("page", fmt.Sprint(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", fmt.Sprint(opts.PageSize))
	}
	var resp Page[Job]
	err := c.do(ctx, http.MethodGet, withQuery("jobs", q), nil, &resp)
	return resp, err
}

// CreateJob creates a job.
func (c *Client) CreateJob(ctx context.Context, title string, tags []string) (Job, error) {
	body := map[string]any{
		"title": title,
		"tags":  tags,
	}
	var resp Job
	err := c.do(ctx, http.MethodPost, "jobs", body, &resp)
	return resp, err
}

// ReorderJobs moves the job at fromOrder before toOrder.
func (c *Client) ReorderJobs(ctx context.Context, jobID, fromOrder, toOrder int) error {
	body := map[string]any{
		"fromOrder": fromOrder,
		"toOrder":   toOrder,
	}
	endpoint := fmt.Sprintf("jobs/%d/reorder", jobID)
	return c.do(ctx, http.MethodPatch, endpoint, body, nil)
}

// CandidateListOptions filter the candidates listing.
type CandidateListOptions struct {
	Search   string
	Stage    string
	JobID    int
	Page     int
	PageSize int
}

// Candidates returns a page of candidates.
func (c *Client) Candidates(ctx context.Context, opts CandidateListOptions) (Page[Candidate], error) {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Stage != "" {
		q.Set("stage", opts.Stage)
	}
	if opts.JobID > 0 {
		q.Set("jobId", fmt.Sprint(opts.JobID))
	}
	if opts.Page > 0 {
		q.Set("page", fmt.Sprint(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", fmt.Sprint(opts.PageSize))
	}
	var resp Page[Candidate]
	err := c.do(ctx, http.MethodGet, withQuery("candidates", q), nil, &resp)
	return resp, err
}

// MoveCandidate changes a candidate's pipeline stage.
func (c *Client) MoveCandidate(ctx context.Context, id int, stage string) (Candidate, error) {
	body := map[string]any{"stage": stage}
	var resp Candidate
	endpoint := fmt.Sprintf("candidates/%d", id)
	err := c.do(ctx, http.MethodPatch, endpoint, body, &resp)
	return resp, err
}

// Timeline returns the stage history for a candidate.
func (c *Client) Timeline(ctx context.Context, id int) ([]TimelineEntry, error) {
	var resp []TimelineEntry
	endpoint := fmt.Sprintf("candidates/%d/timeline", id)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// JobAssessments returns the assessments saved for a job.
func (c *Client) JobAssessments(ctx context.Context, jobID int) ([]Assessment, error) {
	var resp []Assessment
	endpoint := fmt.Sprintf("assessments/job/%d", jobID)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// SubmitAssessment records an assessment submission for a job.
func (c *Client) SubmitAssessment(ctx context.Context, jobID, candidateID int, answers map[string]any) error {
	body := map[string]any{
		"candidateId": candidateID,
		"answers":     answers,
	}
	endpoint := fmt.Sprintf("assessments/job/%d/submit", jobID)
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// Stats returns dashboard counts.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var resp Stats
	err := c.do(ctx, http.MethodGet, "stats", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func withQuery(endpoint string, q url.Values) string {
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
