package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/MelvilleC99/profiler"
	"github.com/MelvilleC99/profiler/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() *profiler.Job {
	p := profiler.NewProfile()
	p.Set(profiler.SectionCompanySnapshot, "founded", profiler.FieldValue{Str: "2012"})
	p.Set(profiler.SectionContactInfo, "social_media", profiler.FieldValue{List: []string{"https://twitter.com/acme"}})

	return &profiler.Job{
		ID:      "job-1",
		URL:     "https://acme.io",
		UserID:  "user-1",
		Status:  profiler.JobStatusCompleted,
		Profile: p,
		Verdict: profiler.Verdict{IsValid: true, Message: "ok", CompletionRate: 0.42},
		Pages:   []string{"https://acme.io", "https://acme.io/about"},
		StatusCodes: map[string]int{
			"https://acme.io":       200,
			"https://acme.io/about": 200,
		},
		ContentHashes: map[string]string{
			"https://acme.io": "a1b2c3",
		},
		StartedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 8, 1, 12, 1, 30, 0, time.UTC),
	}
}

func TestJobService_CreateJob(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a completed job", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(MustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateJob(ctx, testJob()))

		got, err := svc.FindJobByID(ctx, "job-1")
		require.NoError(t, err)

		assert.Equal(t, "https://acme.io", got.URL)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, profiler.JobStatusCompleted, got.Status)
		assert.True(t, got.Verdict.IsValid)
		assert.InDelta(t, 0.42, got.Verdict.CompletionRate, 0.001)
		assert.Equal(t, []string{"https://acme.io", "https://acme.io/about"}, got.Pages)
		assert.Equal(t, 200, got.StatusCodes["https://acme.io/about"])
		assert.Equal(t, "a1b2c3", got.ContentHashes["https://acme.io"])
		assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), got.StartedAt)
		require.NotNil(t, got.Profile)
		assert.Equal(t, "2012", got.Profile.Get(profiler.SectionCompanySnapshot, "founded").Str)
		assert.Equal(t, []string{"https://twitter.com/acme"}, got.Profile.Get(profiler.SectionContactInfo, "social_media").List)
	})

	t.Run("stores failed jobs without a profile", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(MustOpenDB(t))
		ctx := context.Background()

		job := testJob()
		job.Status = profiler.JobStatusFailed
		job.Error = "homepage fetch failed"
		job.Profile = nil
		job.Verdict = profiler.Verdict{}
		require.NoError(t, svc.CreateJob(ctx, job))

		got, err := svc.FindJobByID(ctx, job.ID)
		require.NoError(t, err)

		assert.Equal(t, profiler.JobStatusFailed, got.Status)
		assert.Equal(t, "homepage fetch failed", got.Error)
		assert.Nil(t, got.Profile)
		assert.False(t, got.Verdict.IsValid)
	})

	t.Run("rejects duplicate IDs with ECONFLICT", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(MustOpenDB(t))
		ctx := context.Background()

		require.NoError(t, svc.CreateJob(ctx, testJob()))
		err := svc.CreateJob(ctx, testJob())

		assert.Equal(t, profiler.ECONFLICT, profiler.ErrorCode(err))
	})

	t.Run("rejects invalid jobs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(MustOpenDB(t))

		err := svc.CreateJob(context.Background(), &profiler.Job{ID: "x", Status: profiler.JobStatusCompleted})

		assert.Equal(t, profiler.EINVALID, profiler.ErrorCode(err))
	})
}

func TestJobService_FindJobByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown IDs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(MustOpenDB(t))

		_, err := svc.FindJobByID(context.Background(), "missing")

		assert.Equal(t, profiler.ENOTFOUND, profiler.ErrorCode(err))
	})
}
