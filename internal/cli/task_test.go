package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/config"
	"github.com/rcliao/companion/internal/model"
)

type exitCode int

// runCLI executes the root command and returns stdout and the exit code.
func runCLI(t *testing.T, args ...string) (out string, code int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)

	osExit = func(c int) { panic(exitCode(c)) }
	defer func() {
		osExit = os.Exit
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			out, code = stdout.String(), int(c)
		}
	}()

	require.NoError(t, RootCmd.Execute())
	return stdout.String(), 0
}

func testDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfig, filepath.Join(dir, "config.toml"))
	t.Setenv(config.EnvDB, "")
	t.Cleanup(func() {
		dbPath = ""
		formatFlag = "json"
	})
	return filepath.Join(dir, "companion.db")
}

func TestTaskAddThenList(t *testing.T) {
	db := testDB(t)

	out, code := runCLI(t, "--db", db, "task", "add", "Buy", "milk", "-p", "high")
	require.Equal(t, 0, code)
	var added model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "Buy milk", added.Title)
	assert.Equal(t, "high", added.Priority)
	assert.NotEmpty(t, added.ID)

	out, code = runCLI(t, "--db", db, "task", "list")
	require.Equal(t, 0, code)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, added.ID, tasks[0].ID)
	assert.Nil(t, current)
}

func TestCommandErrorClosesSession(t *testing.T) {
	db := testDB(t)

	_, code := runCLI(t, "--db", db, "task", "toggle", "01HMISSING")
	assert.Equal(t, 1, code)
	assert.Nil(t, current)

	// The store reopens cleanly after the failed command.
	out, code := runCLI(t, "--db", db, "task", "stats")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"total": 0`)
}
