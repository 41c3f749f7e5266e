package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/MelvilleC99/profiler"
)

// Compile-time interface verification.
var _ profiler.JobService = (*JobService)(nil)

// JobService implements profiler.JobService using SQLite. Profile and crawl
// traces are stored as JSON columns; jobs are written once and never
// updated.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob stores a finished job.
func (s *JobService) CreateJob(ctx context.Context, job *profiler.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	profile, err := marshalJSON(job.Profile)
	if err != nil {
		return err
	}
	pages, err := marshalJSON(job.Pages)
	if err != nil {
		return err
	}
	statusCodes, err := marshalJSON(job.StatusCodes)
	if err != nil {
		return err
	}
	hashes, err := marshalJSON(job.ContentHashes)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scrape_jobs (id, url, user_id, status, error, profile,
			is_valid, verdict_message, completion_rate,
			pages, status_codes, content_hashes, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.URL, job.UserID, job.Status, job.Error, profile,
		job.Verdict.IsValid, job.Verdict.Message, job.Verdict.CompletionRate,
		pages, statusCodes, hashes,
		job.StartedAt.UTC().Format(time.RFC3339),
		job.CompletedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return profiler.Errorf(profiler.ECONFLICT, "job %q already exists", job.ID)
		}
		return err
	}

	return nil
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*profiler.Job, error) {
	var job profiler.Job
	var profile, pages, statusCodes, hashes string
	var startedAt, completedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, user_id, status, error, profile,
			is_valid, verdict_message, completion_rate,
			pages, status_codes, content_hashes, started_at, completed_at
		FROM scrape_jobs
		WHERE id = ?
	`, id).Scan(&job.ID, &job.URL, &job.UserID, &job.Status, &job.Error, &profile,
		&job.Verdict.IsValid, &job.Verdict.Message, &job.Verdict.CompletionRate,
		&pages, &statusCodes, &hashes, &startedAt, &completedAt)

	if err == sql.ErrNoRows {
		return nil, profiler.Errorf(profiler.ENOTFOUND, "job %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(profile, &job.Profile); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(pages, &job.Pages); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(statusCodes, &job.StatusCodes); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(hashes, &job.ContentHashes); err != nil {
		return nil, err
	}

	if job.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if job.CompletedAt, err = parseRFC3339(completedAt, "completed_at"); err != nil {
		return nil, err
	}

	return &job, nil
}

func marshalJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalJSON(s string, v any) error {
	if s == "" || s == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}
