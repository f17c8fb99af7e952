package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
	"github.com/AvinashMishraaa/Talentflow/internal/engine"
	"github.com/AvinashMishraaa/Talentflow/internal/sim"
)

// Config for the HTTP API handler.
type Config struct {
	Engine   *engine.Engine
	BasePath string
	Sim      sim.Config
	Auth     AuthConfig
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_found"`
	Message string         `json:"message" example:"job not found"`
	Details map[string]any `json:"details,omitempty" jsonschema:"type=object,additionalProperties=true"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the Talentflow API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	basePath := cfg.BasePath
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, nil)
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(msg), "validation") {
			// Schema/request validation errors should be 400 bad_request
			status = http.StatusBadRequest
		}
		var details map[string]any
		if len(errs) > 0 {
			details = map[string]any{"errors": errs}
		}
		return newAPIError(status, "", msg, details)
	}

	router := chi.NewRouter()
	router.Use(sim.Middleware(cfg.Sim))
	router.Use(newAuthMiddleware(cfg.Auth))
	router.Handle("/metrics", promhttp.Handler())

	hcfg := huma.DefaultConfig("Talentflow API", "1.0.0")
	hcfg.OpenAPIPath = "/openapi"
	hcfg.DocsPath = "" // custom Swagger UI below
	api := humachi.New(router, hcfg)
	var group huma.API = api
	if basePath != "" {
		group = huma.NewGroup(api, basePath)
	}

	registerDocs(router, basePath)
	registerHealth(group)
	registerJobs(group, cfg.Engine)
	registerCandidates(group, cfg.Engine)
	registerAssessments(group, cfg.Engine)
	registerNotifications(group, cfg.Engine)
	registerStats(group, cfg.Engine)
	registerDevAuth(group, cfg.Auth)
	registerOpenAPI(router, api, basePath)

	return router, nil
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, engine.ErrValidation):
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": err.Error()})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerJobs(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/jobs",
		Summary:     "List jobs",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Search   string `query:"search"`
		Status   string `query:"status"`
		Tag      string `query:"tag"`
		Order    string `query:"order"`
		Page     int    `query:"page"`
		PageSize int    `query:"pageSize"`
	}) (*struct {
		Body engine.Page[domain.Job] `json:"body"`
	}, error) {
		page := e.ListJobs(ctx, engine.JobListOptions{
			Search:   input.Search,
			Status:   input.Status,
			Tag:      input.Tag,
			Order:    input.Order,
			Page:     input.Page,
			PageSize: input.PageSize,
		})
		return &struct {
			Body engine.Page[domain.Job] `json:"body"`
		}{Body: page}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-job",
		Method:        http.MethodPost,
		Path:          "/jobs",
		Summary:       "Create job",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body CreateJobRequest `json:"body"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		job := e.CreateJob(ctx, engine.JobCreateOptions{
			Title:       input.Body.Title,
			Status:      input.Body.Status,
			Tags:        input.Body.Tags,
			Description: input.Body.Description,
			Skills:      input.Body.Skills,
		})
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: job}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-job",
		Method:      http.MethodPatch,
		Path:        "/jobs/{id}",
		Summary:     "Update job",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int              `path:"id"`
		Body UpdateJobRequest `json:"body"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		job, err := e.UpdateJob(ctx, input.ID, jobPatch(input.Body))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: job}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-jobs",
		Method:      http.MethodPatch,
		Path:        "/jobs/{id}/reorder",
		Summary:     "Reorder jobs",
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int                `path:"id"`
		Body ReorderJobsRequest `json:"body"`
	}) (*struct {
		Body OKResponse `json:"body"`
	}, error) {
		if err := e.ReorderJobs(ctx, input.Body.FromOrder, input.Body.ToOrder); err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body OKResponse `json:"body"`
		}{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "check-job-slug",
		Method:      http.MethodGet,
		Path:        "/jobs/slug/{slug}",
		Summary:     "Check slug availability",
	}, func(ctx context.Context, input *struct {
		Slug      string `path:"slug"`
		ExcludeID int    `query:"excludeId"`
	}) (*struct {
		Body SlugCheckResponse `json:"body"`
	}, error) {
		return &struct {
			Body SlugCheckResponse `json:"body"`
		}{Body: SlugCheckResponse{Exists: e.SlugExists(ctx, input.Slug, input.ExcludeID)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-job",
		Method:      http.MethodGet,
		Path:        "/jobs/{id}",
		Summary:     "Get job",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID int `path:"id"`
	}) (*struct {
		Body domain.Job `json:"body"`
	}, error) {
		job, err := e.GetJob(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Job `json:"body"`
		}{Body: job}, nil
	})
}

func registerCandidates(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-candidates",
		Method:      http.MethodGet,
		Path:        "/candidates",
		Summary:     "List candidates",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Search   string `query:"search"`
		Stage    string `query:"stage"`
		JobID    int    `query:"jobId"`
		Page     int    `query:"page"`
		PageSize int    `query:"pageSize"`
	}) (*struct {
		Body engine.Page[domain.Candidate] `json:"body"`
	}, error) {
		page := e.ListCandidates(ctx, engine.CandidateListOptions{
			Search:   input.Search,
			Stage:    input.Stage,
			JobID:    input.JobID,
			Page:     input.Page,
			PageSize: input.PageSize,
		})
		return &struct {
			Body engine.Page[domain.Candidate] `json:"body"`
		}{Body: page}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-candidate",
		Method:        http.MethodPost,
		Path:          "/candidates",
		Summary:       "Create candidate",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body CreateCandidateRequest `json:"body"`
	}) (*struct {
		Body domain.Candidate `json:"body"`
	}, error) {
		c, err := e.CreateCandidate(ctx, engine.CandidateCreateOptions{
			Name:  input.Body.Name,
			Email: input.Body.Email,
			Stage: input.Body.Stage,
			JobID: input.Body.JobID,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Candidate `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-candidate",
		Method:      http.MethodGet,
		Path:        "/candidates/{id}",
		Summary:     "Get candidate",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID int `path:"id"`
	}) (*struct {
		Body domain.Candidate `json:"body"`
	}, error) {
		c, err := e.GetCandidate(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Candidate `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-candidate",
		Method:      http.MethodPatch,
		Path:        "/candidates/{id}",
		Summary:     "Update candidate",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int                    `path:"id"`
		Body UpdateCandidateRequest `json:"body"`
	}) (*struct {
		Body domain.Candidate `json:"body"`
	}, error) {
		c, err := e.UpdateCandidate(ctx, input.ID, candidatePatch(input.Body))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Candidate `json:"body"`
		}{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "candidate-timeline",
		Method:      http.MethodGet,
		Path:        "/candidates/{id}/timeline",
		Summary:     "Candidate stage timeline",
	}, func(ctx context.Context, input *struct {
		ID int `path:"id"`
	}) (*struct {
		Body []domain.TimelineEntry `json:"body"`
	}, error) {
		return &struct {
			Body []domain.TimelineEntry `json:"body"`
		}{Body: e.Timeline(ctx, input.ID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "candidate-notes",
		Method:      http.MethodGet,
		Path:        "/candidates/{id}/notes",
		Summary:     "Candidate notes",
	}, func(ctx context.Context, input *struct {
		ID int `path:"id"`
	}) (*struct {
		Body []domain.Note `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Note `json:"body"`
		}{Body: e.Notes(ctx, input.ID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-candidate-note",
		Method:        http.MethodPost,
		Path:          "/candidates/{id}/notes",
		Summary:       "Add candidate note",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int               `path:"id"`
		Body CreateNoteRequest `json:"body"`
	}) (*struct {
		Body domain.Note `json:"body"`
	}, error) {
		return &struct {
			Body domain.Note `json:"body"`
		}{Body: e.AddNote(ctx, input.ID, input.Body.Text)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "candidate-assignments",
		Method:      http.MethodGet,
		Path:        "/candidates/{id}/assignments",
		Summary:     "Assessments assigned to candidate",
	}, func(ctx context.Context, input *struct {
		ID int `path:"id"`
	}) (*struct {
		Body []domain.AssignmentDetail `json:"body"`
	}, error) {
		return &struct {
			Body []domain.AssignmentDetail `json:"body"`
		}{Body: e.Assignments(ctx, input.ID)}, nil
	})
}

func registerAssessments(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-assessments",
		Method:      http.MethodGet,
		Path:        "/assessments",
		Summary:     "List assessments",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Assessment `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Assessment `json:"body"`
		}{Body: e.ListAssessments(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-assessment",
		Method:        http.MethodPost,
		Path:          "/assessments",
		Summary:       "Create assessment",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body CreateAssessmentRequest `json:"body"`
	}) (*struct {
		Body domain.Assessment `json:"body"`
	}, error) {
		a := e.CreateAssessment(ctx, engine.AssessmentCreateOptions{
			Name:      input.Body.Name,
			JobID:     input.Body.JobID,
			Level:     input.Body.Level,
			Tags:      input.Body.Tags,
			Questions: input.Body.Questions,
		})
		return &struct {
			Body domain.Assessment `json:"body"`
		}{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-assessment",
		Method:      http.MethodPatch,
		Path:        "/assessments/{id}",
		Summary:     "Update assessment",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int                     `path:"id"`
		Body UpdateAssessmentRequest `json:"body"`
	}) (*struct {
		Body domain.Assessment `json:"body"`
	}, error) {
		a, err := e.UpdateAssessment(ctx, input.ID, assessmentPatch(input.Body))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Assessment `json:"body"`
		}{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "assign-assessment",
		Method:        http.MethodPost,
		Path:          "/assessments/{id}/assign",
		Summary:       "Assign assessment to candidate",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   int                     `path:"id"`
		Body AssignAssessmentRequest `json:"body"`
	}) (*struct {
		Body OKResponse `json:"body"`
	}, error) {
		if err := e.AssignAssessment(ctx, input.ID, input.Body.CandidateID); err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body OKResponse `json:"body"`
		}{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "job-assessments",
		Method:      http.MethodGet,
		Path:        "/assessments/job/{jobId}",
		Summary:     "Assessments for a job",
	}, func(ctx context.Context, input *struct {
		JobID int `path:"jobId"`
	}) (*struct {
		Body []domain.Assessment `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Assessment `json:"body"`
		}{Body: e.AssessmentsForJob(ctx, input.JobID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-job-assessment",
		Method:      http.MethodPut,
		Path:        "/assessments/job/{jobId}",
		Summary:     "Create or replace assessment for a job",
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		JobID int                  `path:"jobId"`
		Body  PutAssessmentRequest `json:"body"`
	}) (*struct {
		Body domain.Assessment `json:"body"`
	}, error) {
		a := e.ReplaceAssessmentForJob(ctx, input.JobID, domain.Assessment{
			JobID:     input.JobID,
			Name:      input.Body.Name,
			Level:     input.Body.Level,
			Tags:      input.Body.Tags,
			Questions: input.Body.Questions,
		})
		return &struct {
			Body domain.Assessment `json:"body"`
		}{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "submit-assessment",
		Method:        http.MethodPost,
		Path:          "/assessments/job/{jobId}/submit",
		Summary:       "Submit assessment answers",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		JobID int                     `path:"jobId"`
		Body  SubmitAssessmentRequest `json:"body"`
	}) (*struct {
		Body domain.Submission `json:"body"`
	}, error) {
		sub := e.SubmitAssessment(ctx, input.JobID, input.Body.CandidateID, input.Body.Answers)
		return &struct {
			Body domain.Submission `json:"body"`
		}{Body: sub}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "job-submissions",
		Method:      http.MethodGet,
		Path:        "/assessments/job/{jobId}/submissions",
		Summary:     "Submissions for a job",
	}, func(ctx context.Context, input *struct {
		JobID int `path:"jobId"`
	}) (*struct {
		Body []domain.Submission `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Submission `json:"body"`
		}{Body: e.Submissions(ctx, input.JobID)}, nil
	})
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerNotifications(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/notifications",
		Summary:     "Derived notifications",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []domain.Notification `json:"body"`
	}, error) {
		return &struct {
			Body []domain.Notification `json:"body"`
		}{Body: e.Notifications(ctx)}, nil
	})
}

func registerStats(api huma.API, e *engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Dashboard counts",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body domain.Stats `json:"body"`
	}, error) {
		return &struct {
			Body domain.Stats `json:"body"`
		}{Body: e.Stats(ctx)}, nil
	})
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string) {
	var spec []byte
	specPath := path.Join("/", basePath, "openapi.json")
	r.Get(specPath, func(w http.ResponseWriter, r *http.Request) {
		if spec == nil {
			spec, _ = json.Marshal(api.OpenAPI())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", basePath, "openapi.json")
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Talentflow API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}
