package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/treetax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	configDir := filepath.Join(tmpDir, ".config", "treetax")
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "Config directory should exist")
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	logDir := filepath.Join(tmpDir, ".local", "share", "treetax", "logs")
	info, err = os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "Log directory should exist")

	// second call succeeds
	require.NoError(t, EnsureDirs(tmpDir))
}

// TestTouchDir_FileInTheWay verifies that a file with the directory
// name is reported.
func TestTouchDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

// TestEnsureConfigFile verifies the default config is written once and
// is never overwritten.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	custom := []byte("log:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data, "Existing config should be kept")
}

// TestConfigYAML_MatchesDefaults verifies the embedded template
// describes the default configuration.
func TestConfigYAML_MatchesDefaults(t *testing.T) {
	var cfg config.Config
	err := yaml.Unmarshal([]byte(ConfigYAML), &cfg)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Build.FastaExt, cfg.Build.FastaExt)
	assert.Equal(t, def.Build.WithSQLite, cfg.Build.WithSQLite)
}

// TestPending_Commit verifies a pending file appears only after
// commit.
func TestPending_Commit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	p, err := CreatePending(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path())
	assert.Equal(t, dir, filepath.Dir(p.TempPath()))

	_, err = p.Write([]byte("hello"))
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	require.NoError(t, p.Commit())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.NoFileExists(t, p.TempPath())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// abort after commit keeps the file
	p.Abort()
	assert.FileExists(t, path)
}

// TestPendingSet_Abort verifies nothing is left after abort.
func TestPendingSet_Abort(t *testing.T) {
	dir := t.TempDir()

	var set PendingSet
	for _, name := range []string{"a", "b"} {
		p, err := set.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		_, err = p.Write([]byte(name))
		require.NoError(t, err)
	}
	set.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestPendingSet_Commit verifies all files are committed.
func TestPendingSet_Commit(t *testing.T) {
	dir := t.TempDir()

	var set PendingSet
	for _, name := range []string{"a", "b"} {
		_, err := set.Create(filepath.Join(dir, name))
		require.NoError(t, err)
	}
	require.NoError(t, set.Commit())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name())
	assert.Equal(t, "b", entries[1].Name())
}

// TestCreatePending_MissingDir verifies the error for a missing
// directory.
func TestCreatePending_MissingDir(t *testing.T) {
	_, err := CreatePending(filepath.Join(t.TempDir(), "no", "file"))
	assert.Error(t, err)
}
