package mock

import (
	"context"

	"github.com/MelvilleC99/profiler"
)

var _ profiler.JobService = (*JobService)(nil)

// JobService is a mock implementation of profiler.JobService.
type JobService struct {
	CreateJobFn    func(ctx context.Context, job *profiler.Job) error
	FindJobByIDFn  func(ctx context.Context, id string) (*profiler.Job, error)
}

func (s *JobService) CreateJob(ctx context.Context, job *profiler.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*profiler.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

var _ profiler.JobRunner = (*JobRunner)(nil)

// JobRunner is a mock implementation of profiler.JobRunner.
type JobRunner struct {
	RunFn func(ctx context.Context, url, userID string) (*profiler.Job, error)
}

func (r *JobRunner) Run(ctx context.Context, url, userID string) (*profiler.Job, error) {
	return r.RunFn(ctx, url, userID)
}
