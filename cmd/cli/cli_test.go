package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v "github.com/keshon/suggestions/internal/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.Execute()
	return out.String(), err
}

func writeEvents(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestEventsCommand(t *testing.T) {
	dir := writeEvents(t, map[string]string{
		"ready.yaml":         "options:\n  status: hi\n",
		"messageCreate.yaml": "",
		"notes.txt":          "ignored",
	})

	out, err := execute(t, "events", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "messageCreate")
	assert.NotContains(t, out, "notes")
	assert.Contains(t, out, "2 loaded, 0 failed")
}

func TestEventsCommandReportsFailures(t *testing.T) {
	dir := writeEvents(t, map[string]string{
		"ready.yaml":   "",
		"unknown.yaml": "",
	})

	out, err := execute(t, "events", "--dir", dir)
	assert.EqualError(t, err, "1 event file(s) failed to load")
	assert.Contains(t, out, "unknown.yaml")
	assert.Contains(t, out, "1 loaded, 1 failed")
}

func TestEventsCommandMissingDir(t *testing.T) {
	_, err := execute(t, "events", "--dir", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCommandsCommand(t *testing.T) {
	out, err := execute(t, "commands")
	require.NoError(t, err)
	for _, want := range []string{"info", "botinfo", "ping", "help", "reload", "toggle", "2 per 5s", "guarded, dm"} {
		assert.Contains(t, out, want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, v.String()+"\n", out)
}
