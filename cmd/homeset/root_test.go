package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/homeset/pkg/paths"
	"github.com/arthur-debert/homeset/pkg/testutil"
)

// runCommand executes the root command in-process and returns its output
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flags are package globals; reset between runs
	verbosity = 0
	dryRun = false
	formatFlag = "text"
	sourceFlag = ""
	homeFlag = ""
	userFlag = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func testEnv(t *testing.T) (source, home string) {
	t.Helper()
	dir := t.TempDir()
	source = filepath.Join(dir, "dotfiles")
	home = filepath.Join(dir, "home", "alice")
	testutil.MkDir(t, source)
	testutil.MkDir(t, home)
	t.Setenv(paths.EnvAccountsDir, filepath.Join(dir, "accounts"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return source, home
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "homeset version")
}

func TestGenconfigCommand(t *testing.T) {
	source, home := testEnv(t)

	out, err := runCommand(t, "genconfig",
		"--source", source, "--home", home, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy = 'link'")
	assert.Contains(t, out, "target_user = 'alice'")
}

func TestDocsCommand(t *testing.T) {
	out, err := runCommand(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "homeset")
}

func TestLinkCommandEndToEnd(t *testing.T) {
	source, home := testEnv(t)
	testutil.WriteFile(t, filepath.Join(source, "kitty", "kitty.conf"), "font_size 12", 0644)

	out, err := runCommand(t, "link", "--format", "text",
		"--source", source, "--home", home, "--user", "alice")
	require.NoError(t, err)

	assert.Contains(t, out, "kitty")
	testutil.AssertSymlinkTo(t, filepath.Join(home, ".config", "kitty"), filepath.Join(source, "kitty"))
}

func TestSyncCommandEndToEnd(t *testing.T) {
	source, home := testEnv(t)
	testutil.WriteFile(t, filepath.Join(source, "kitty", "kitty.conf"), "font_size 12", 0644)

	_, err := runCommand(t, "sync", "--format", "text",
		"--source", source, "--home", home, "--user", "alice")
	require.NoError(t, err)

	testutil.AssertFileContent(t, filepath.Join(home, ".config", "kitty", "kitty.conf"), "font_size 12")
}

func TestLinkRequiresTargetUser(t *testing.T) {
	source, home := testEnv(t)

	_, err := runCommand(t, "link", "--source", source, "--home", home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_user")
}

func TestLinkFatalWhenHomeMissing(t *testing.T) {
	source, _ := testEnv(t)
	testutil.WriteFile(t, filepath.Join(source, "kitty", "kitty.conf"), "font_size 12", 0644)

	_, err := runCommand(t, "link", "--source", source,
		"--home", filepath.Join(source, "no-such-home"), "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TARGET_HOME_MISSING")
}
