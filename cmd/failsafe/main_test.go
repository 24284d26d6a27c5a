package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/failsafe/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0600))
	return path
}

func TestRun_RejectsConflictingFlags(t *testing.T) {
	script := writeScript(t, "")

	err := newApp().RunContext(context.Background(), []string{"failsafe", "--script", script, "--recover", "--users", "3"})
	require.ErrorIs(t, err, interfaces.ErrValidation)

	err = newApp().RunContext(context.Background(), []string{"failsafe", "--script", script, "--user", "2"})
	require.ErrorIs(t, err, interfaces.ErrValidation)
}

func TestRun_RejectsUnknownFormat(t *testing.T) {
	err := newApp().RunContext(context.Background(), []string{"failsafe", "--format", "dogecoin"})
	require.Error(t, err)
}

func TestRun_ScriptedSingleUser(t *testing.T) {
	tmpDir := t.TempDir()
	// hand-off screen, then acknowledgment of the revealed material
	script := writeScript(t, "# rehearsal\n\n\n")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.RunContext(context.Background(), []string{
		"failsafe", "--script", script, "--users", "1", "--accounts", "2", "--tmp-dir", tmpDir,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "The following screen is meant for user 1 (of 1)")
	assert.Contains(t, out.String(), "All done")

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is left behind")
}

func TestRun_ScriptRunsOutOfAnswers(t *testing.T) {
	script := writeScript(t, "")

	err := newApp().RunContext(context.Background(), []string{"failsafe", "--script", script, "--users", "2", "--threshold", "2", "--accounts", "1", "--tmp-dir", t.TempDir()})
	require.ErrorIs(t, err, interfaces.ErrInterrupted)
}
