package execcap

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/search-popup/internal/manifest"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("skipping: sh not available")
	}
}

func TestQueryStaticAndFallbacks(t *testing.T) {
	c, err := FromManifest(manifest.Capability{
		Name:    "Notes",
		Query:   &manifest.QuerySpec{Static: "notes v1"},
		Command: manifest.CommandSpec{Run: []string{"true"}},
	})
	require.NoError(t, err)
	got, err := c.Query(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "notes v1", got)

	c, err = FromManifest(manifest.Capability{Name: "Bare", Command: manifest.CommandSpec{Run: []string{"true"}}})
	require.NoError(t, err)
	got, _ = c.Query(context.Background())
	assert.Equal(t, "Bare", got)

	c, err = FromManifest(manifest.Capability{Name: "Described", Description: "does things", Command: manifest.CommandSpec{Run: []string{"true"}}})
	require.NoError(t, err)
	got, _ = c.Query(context.Background())
	assert.Equal(t, "does things", got)
}

func TestFromManifestRequiresCommand(t *testing.T) {
	_, err := FromManifest(manifest.Capability{Name: "x"})
	assert.ErrorIs(t, err, manifest.ErrInvalid)
}

func TestQueryRunsProgram(t *testing.T) {
	requireShell(t)
	c, err := FromManifest(manifest.Capability{
		Name:    "Printer",
		Query:   &manifest.QuerySpec{Run: []string{"sh", "-c", "printf '  printer 2  \n'"}},
		Command: manifest.CommandSpec{Run: []string{"true"}},
	})
	require.NoError(t, err)
	got, err := c.Query(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "printer 2", got)
}

func TestCommandPassesTextAsArgument(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	c, err := FromManifest(manifest.Capability{
		Name:    "Writer",
		Command: manifest.CommandSpec{Run: []string{"sh", "-c", `printf '%s' "$1" > "$0"`, out}},
	})
	require.NoError(t, err)
	require.NoError(t, c.Command(context.Background(), "  hello world "))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "  hello world ", string(data))
}

func TestCommandPassesTextOnStdin(t *testing.T) {
	requireShell(t)
	out := filepath.Join(t.TempDir(), "stdin.txt")
	c, err := FromManifest(manifest.Capability{
		Name:    "Piper",
		Command: manifest.CommandSpec{Run: []string{"sh", "-c", `cat > "$0"`, out}, Stdin: true},
	})
	require.NoError(t, err)
	require.NoError(t, c.Command(context.Background(), "piped"))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "piped", string(data))
}

func TestCommandReportsStderrOnFailure(t *testing.T) {
	requireShell(t)
	c, err := FromManifest(manifest.Capability{
		Name:    "Broken",
		Command: manifest.CommandSpec{Run: []string{"sh", "-c", "echo nope >&2; exit 3", "sh"}},
	})
	require.NoError(t, err)
	err = c.Command(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited 3")
	assert.Contains(t, err.Error(), "nope")
}

func TestCommandStopsWhenContextExpires(t *testing.T) {
	requireShell(t)
	c, err := FromManifest(manifest.Capability{
		Name:    "Sleeper",
		Command: manifest.CommandSpec{Run: []string{"sleep", "5"}},
	})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = c.Command(ctx, "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
