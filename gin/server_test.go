package gin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/MelvilleC99/profiler"
	pgin "github.com/MelvilleC99/profiler/gin"
	"github.com/MelvilleC99/profiler/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(runner profiler.JobRunner, jobs profiler.JobService, personas profiler.PersonaService) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(pgin.NewServer(runner, jobs, personas, logger).Handler())
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	server := newTestServer(nil, nil, nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("runs a job and returns it", func(t *testing.T) {
		t.Parallel()

		runner := &mock.JobRunner{
			RunFn: func(_ context.Context, url, userID string) (*profiler.Job, error) {
				assert.Equal(t, "https://acme.io", url)
				assert.Equal(t, "user-1", userID)
				return &profiler.Job{ID: "job-1", URL: url, UserID: userID, Status: profiler.JobStatusCompleted}, nil
			},
		}

		server := newTestServer(runner, nil, nil)
		defer server.Close()

		resp, body := postJSON(t, server.URL+"/api/v1/scrape", `{"url": "https://acme.io", "user_id": "user-1"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		job := body["job"].(map[string]any)
		assert.Equal(t, "job-1", job["id"])
		assert.Equal(t, "completed", job["status"])
	})

	t.Run("requires a url", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(nil, nil, nil)
		defer server.Close()

		resp, _ := postJSON(t, server.URL+"/api/v1/scrape", `{"user_id": "user-1"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns the failed job alongside the error", func(t *testing.T) {
		t.Parallel()

		runner := &mock.JobRunner{
			RunFn: func(_ context.Context, url, userID string) (*profiler.Job, error) {
				return &profiler.Job{ID: "job-1", URL: url, Status: profiler.JobStatusFailed, Error: "homepage fetch failed"},
					profiler.Errorf(profiler.EUNAVAILABLE, "homepage fetch failed")
			},
		}

		server := newTestServer(runner, nil, nil)
		defer server.Close()

		resp, body := postJSON(t, server.URL+"/api/v1/scrape", `{"url": "https://acme.io"}`)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "homepage fetch failed", body["error"])
		job := body["job"].(map[string]any)
		assert.Equal(t, "failed", job["status"])
	})
}

func TestServer_GetJob(t *testing.T) {
	t.Parallel()

	t.Run("returns a stored job", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*profiler.Job, error) {
				return &profiler.Job{ID: id, URL: "https://acme.io", Status: profiler.JobStatusCompleted}, nil
			},
		}

		server := newTestServer(nil, jobs, nil)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/v1/jobs/job-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("maps ENOTFOUND to 404", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*profiler.Job, error) {
				return nil, profiler.Errorf(profiler.ENOTFOUND, "job %q not found", id)
			},
		}

		server := newTestServer(nil, jobs, nil)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/v1/jobs/missing")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Persona(t *testing.T) {
	t.Parallel()

	t.Run("normalizes field and quality pairs", func(t *testing.T) {
		t.Parallel()

		var got []*profiler.PersonaAnswer
		personas := &mock.PersonaService{
			UpsertAnswersFn: func(_ context.Context, answers []*profiler.PersonaAnswer) error {
				got = answers
				return nil
			},
		}

		server := newTestServer(nil, nil, personas)
		defer server.Close()

		resp, body := postJSON(t, server.URL+"/api/v1/persona/sections/brand_identity", `{
			"session_id": "sess-1",
			"tone": "warm and direct",
			"tone_quality": "high",
			"audience": "plant managers"
		}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 2, body["count"])

		require.Len(t, got, 2)
		sort.Slice(got, func(i, j int) bool { return got[i].Field < got[j].Field })
		assert.Equal(t, "audience", got[0].Field)
		assert.Equal(t, "plant managers", got[0].Answer)
		assert.Empty(t, got[0].Quality)
		assert.Equal(t, "tone", got[1].Field)
		assert.Equal(t, "high", got[1].Quality)
		assert.Equal(t, "brand_identity", got[1].Section)
		assert.Equal(t, "sess-1", got[1].SessionID)
	})

	t.Run("requires a session_id", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(nil, nil, &mock.PersonaService{})
		defer server.Close()

		resp, _ := postJSON(t, server.URL+"/api/v1/persona/sections/brand_identity", `{"tone": "warm"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects payloads with no answers", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(nil, nil, &mock.PersonaService{})
		defer server.Close()

		resp, _ := postJSON(t, server.URL+"/api/v1/persona/sections/brand_identity", `{"session_id": "sess-1"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns stored answers for a section", func(t *testing.T) {
		t.Parallel()

		personas := &mock.PersonaService{
			FindAnswersFn: func(_ context.Context, sessionID, section string) ([]*profiler.PersonaAnswer, error) {
				assert.Equal(t, "sess-1", sessionID)
				assert.Equal(t, "brand_identity", section)
				return []*profiler.PersonaAnswer{{SessionID: sessionID, Section: section, Field: "tone", Answer: "warm"}}, nil
			},
		}

		server := newTestServer(nil, nil, personas)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/v1/persona/sections/brand_identity?session_id=sess-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body bytes.Buffer
		_, _ = body.ReadFrom(resp.Body)
		assert.Contains(t, body.String(), `"tone"`)
	})
}
