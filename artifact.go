package profiler

import "context"

// ArtifactWriter stores per-job debug artifacts: the raw HTML of each page,
// the aggregate text sent to the model, and the final profile. Artifact
// failures never fail a job.
type ArtifactWriter interface {
	// WriteRawHTML stores the fetched HTML of one page under the job.
	WriteRawHTML(ctx context.Context, jobID, pageURL, html string) error

	// WriteAggregate stores the cleaned aggregate text for a job.
	WriteAggregate(ctx context.Context, jobID, text string) error

	// WriteProfile stores the extracted profile as JSON.
	WriteProfile(ctx context.Context, jobID string, p *Profile) error
}
