package crawl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/MelvilleC99/profiler"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Extractor turns aggregated text into a profile. Implemented by
// extract.Extractor.
type Extractor interface {
	Extract(ctx context.Context, text string, emails []string) (*profiler.Profile, error)
}

var _ profiler.JobRunner = (*Runner)(nil)

// Runner executes the full pipeline for one URL: crawl, aggregate, extract,
// validate, persist. Persistence and artifact failures are logged and do
// not fail the job.
type Runner struct {
	Crawler    *Crawler
	Aggregator *Aggregator
	Extractor  Extractor
	Jobs       profiler.JobService
	Artifacts  profiler.ArtifactWriter
	Logger     *slog.Logger

	// Now is the clock used for job timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Run executes a job against url. The returned job is populated even when
// the pipeline fails; the error says why it stopped. Every finished job is
// persisted through Jobs.
func (r *Runner) Run(ctx context.Context, url, userID string) (*profiler.Job, error) {
	job := &profiler.Job{
		ID:        uuid.New().String(),
		URL:       url,
		UserID:    userID,
		StartedAt: r.now(),
	}

	set, err := r.Crawler.Crawl(ctx, url)
	if set != nil {
		r.recordPages(ctx, job, set)
	}
	if err != nil {
		return r.fail(ctx, job, err)
	}

	agg, err := r.Aggregator.Aggregate(set)
	if err != nil {
		return r.fail(ctx, job, err)
	}
	job.Aggregate = agg.Text
	r.writeArtifact(ctx, "aggregate", job.ID, func() error {
		return r.Artifacts.WriteAggregate(ctx, job.ID, agg.Text)
	})

	profile, err := r.Extractor.Extract(ctx, agg.Text, agg.Emails)
	if err != nil {
		return r.fail(ctx, job, err)
	}

	job.Profile = profile
	job.Verdict = profiler.Validate(profile)
	job.Status = profiler.JobStatusCompleted
	job.CompletedAt = r.now()

	r.writeArtifact(ctx, "profile", job.ID, func() error {
		return r.Artifacts.WriteProfile(ctx, job.ID, profile)
	})
	r.persist(ctx, job)

	return job, nil
}

// recordPages captures the crawl trace on the job and stores each page's
// raw HTML as an artifact.
func (r *Runner) recordPages(ctx context.Context, job *profiler.Job, set *profiler.CrawlSet) {
	job.StatusCodes = make(map[string]int, set.Len())
	job.ContentHashes = make(map[string]string, set.Len())
	for _, page := range set.Pages {
		job.Pages = append(job.Pages, page.URL)
		job.StatusCodes[page.URL] = page.StatusCode
		if !page.OK {
			continue
		}
		job.ContentHashes[page.URL] = strconv.FormatUint(xxhash.Sum64String(page.HTML), 16)
		page := page
		r.writeArtifact(ctx, "raw html", job.ID, func() error {
			return r.Artifacts.WriteRawHTML(ctx, job.ID, page.URL, page.HTML)
		})
	}
}

func (r *Runner) fail(ctx context.Context, job *profiler.Job, cause error) (*profiler.Job, error) {
	job.Status = profiler.JobStatusFailed
	job.Error = profiler.ErrorMessage(cause)
	job.CompletedAt = r.now()
	r.persist(ctx, job)
	return job, cause
}

func (r *Runner) persist(ctx context.Context, job *profiler.Job) {
	if r.Jobs == nil {
		return
	}
	if err := r.Jobs.CreateJob(ctx, job); err != nil {
		r.logger().Warn("persist job failed", slog.String("job_id", job.ID), slog.Any("error", err))
	}
}

func (r *Runner) writeArtifact(ctx context.Context, kind, jobID string, write func() error) {
	if r.Artifacts == nil {
		return
	}
	if err := write(); err != nil {
		r.logger().Warn("write artifact failed",
			slog.String("kind", kind),
			slog.String("job_id", jobID),
			slog.Any("error", err))
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
