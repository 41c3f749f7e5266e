package profiler

import (
	"context"
	"strings"
	"time"
)

// Job statuses.
const (
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Job records one scrape-and-extract run: the pages fetched, the aggregate
// text handed to the model, the resulting profile and its verdict.
type Job struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	UserID        string            `json:"user_id"`
	Status        string            `json:"status"`
	Error         string            `json:"error,omitempty"`
	Profile       *Profile          `json:"profile,omitempty"`
	Verdict       Verdict           `json:"verdict"`
	Aggregate     string            `json:"-"`
	Pages         []string          `json:"pages"`
	StatusCodes   map[string]int    `json:"status_codes,omitempty"`
	ContentHashes map[string]string `json:"content_hashes,omitempty"`
	StartedAt     time.Time         `json:"started_at"`
	CompletedAt   time.Time         `json:"completed_at"`
}

// Validate returns an error if the job is missing required fields.
func (j *Job) Validate() error {
	if j.ID == "" {
		return Errorf(EINVALID, "Job ID required.")
	}
	if j.URL == "" {
		return Errorf(EINVALID, "Job URL required.")
	}
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed:
	default:
		return Errorf(EINVALID, "Invalid job status.")
	}
	return nil
}

// JobService persists completed and failed jobs.
type JobService interface {
	// CreateJob stores a finished job. Returns EINVALID if the job fails
	// validation, ECONFLICT if the ID already exists.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID returns a stored job or ENOTFOUND.
	FindJobByID(ctx context.Context, id string) (*Job, error)
}

// JobRunner executes the full pipeline for one target URL.
type JobRunner interface {
	// Run crawls url, extracts a profile and returns the finished job.
	// The returned job is populated even on failure; the error describes
	// why the pipeline stopped.
	Run(ctx context.Context, url, userID string) (*Job, error)
}

// PersonaAnswer is one question/answer pair collected from a user session,
// grouped by questionnaire section.
type PersonaAnswer struct {
	SessionID string    `json:"session_id"`
	Section   string    `json:"section"`
	Field     string    `json:"field"`
	Answer    string    `json:"answer"`
	Quality   string    `json:"quality,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate returns an error if the answer is missing required fields.
func (a *PersonaAnswer) Validate() error {
	if strings.TrimSpace(a.SessionID) == "" {
		return Errorf(EINVALID, "Session ID required.")
	}
	if strings.TrimSpace(a.Section) == "" {
		return Errorf(EINVALID, "Section required.")
	}
	if strings.TrimSpace(a.Field) == "" {
		return Errorf(EINVALID, "Field required.")
	}
	return nil
}

// PersonaService persists persona questionnaire answers keyed by session.
type PersonaService interface {
	// UpsertAnswers inserts or updates answers. An existing
	// (session, section, field) row is overwritten with the new answer.
	UpsertAnswers(ctx context.Context, answers []*PersonaAnswer) error

	// FindAnswers returns all answers stored for a session and section.
	FindAnswers(ctx context.Context, sessionID, section string) ([]*PersonaAnswer, error)
}
