package cmd

import (
	"bytes"
	"testing"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	require.NoError(t, root.Execute())
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := config.Version, config.GitCommit
	t.Cleanup(func() {
		config.Version, config.GitCommit = origVersion, origCommit
	})

	config.Version = "1.4.0"
	config.GitCommit = "abc123"

	out := runCommand(t, "version")

	assert.Contains(t, out, config.InstitutionName)
	assert.Contains(t, out, "Version:    1.4.0")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version:")
	assert.Contains(t, out, "Platform:")
}

func TestVersionCommandDefaults(t *testing.T) {
	out := runCommand(t, "version")

	assert.Contains(t, out, "Version:    "+config.Version)
	assert.Contains(t, out, "Git commit: "+config.GitCommit)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestHelpListsCommands(t *testing.T) {
	out := runCommand(t, "--help")

	assert.Contains(t, out, "serve")
	assert.Contains(t, out, "migrate")
	assert.Contains(t, out, "version")
}
