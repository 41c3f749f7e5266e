package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/MelvilleC99/profiler/cmd/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainRun(t *testing.T) {
	t.Parallel()

	t.Run("help prints usage without error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "profiler")
		assert.Contains(t, stdout.String(), "scrape")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("no command returns an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

}

func TestMainRun_MissingCredentials(t *testing.T) {
	t.Setenv("SCRAPERAPI_KEY", "")

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "profiler.db")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"scrape", "https://acme.io"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "SCRAPERAPI_KEY")
}

func TestNewMain(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	assert.NotEmpty(t, m.DBPath)
}
