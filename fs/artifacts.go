// Package fs stores per-job debug artifacts on the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MelvilleC99/profiler"
)

// Ensure ArtifactStore implements profiler.ArtifactWriter at compile time.
var _ profiler.ArtifactWriter = (*ArtifactStore)(nil)

// ArtifactStore writes each job's artifacts under baseDir/<jobID>/:
// one HTML file per fetched page, the aggregate text and the profile JSON.
type ArtifactStore struct {
	baseDir string
}

// NewArtifactStore creates an ArtifactStore rooted at baseDir.
func NewArtifactStore(baseDir string) *ArtifactStore {
	return &ArtifactStore{baseDir: baseDir}
}

// WriteRawHTML stores the fetched HTML of one page.
func (s *ArtifactStore) WriteRawHTML(_ context.Context, jobID, pageURL, html string) error {
	return s.write(jobID, pageFileName(pageURL), []byte(html))
}

// WriteAggregate stores the cleaned aggregate text.
func (s *ArtifactStore) WriteAggregate(_ context.Context, jobID, text string) error {
	return s.write(jobID, "aggregate.txt", []byte(text))
}

// WriteProfile stores the extracted profile as indented JSON.
func (s *ArtifactStore) WriteProfile(_ context.Context, jobID string, p *profiler.Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return s.write(jobID, "profile.json", data)
}

func (s *ArtifactStore) write(jobID, name string, data []byte) error {
	dir := filepath.Join(s.baseDir, jobID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0644)
}

// pageFileName derives a stable file name from a page URL. The homepage
// becomes index.html; other pages use their sanitized path.
func pageFileName(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "page.html"
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index.html"
	}
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, path)
	return sanitized + ".html"
}
