package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/treetax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	home     string
	treePath string
	fastaDir string
	out      string
	logPath  string
}

// newFixture sets a temporary HOME and writes a small tree with its
// FASTA files.
func newFixture(t *testing.T) fixture {
	t.Helper()
	res := fixture{home: t.TempDir(), out: t.TempDir()}
	t.Setenv("HOME", res.home)
	t.Cleanup(closeLog)

	in := t.TempDir()
	res.treePath = filepath.Join(in, "tree.nwk")
	res.fastaDir = filepath.Join(in, "fasta")
	res.logPath = filepath.Join(in, "treetax.log")
	require.NoError(t, os.WriteFile(res.treePath, []byte("((A,B)AB,C)life;\n"), 0644))
	require.NoError(t, os.Mkdir(res.fastaDir, 0755))
	for _, n := range []string{"A", "B", "C"} {
		path := filepath.Join(res.fastaDir, n+".fasta")
		require.NoError(t, os.WriteFile(path, []byte(">seq1\nACGT\n"), 0644))
	}
	return res
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(append(args, "--log-file", f.logPath))
	err := cmd.Execute()
	closeLog()
	return buf.String(), err
}

func (f fixture) build(t *testing.T, extra ...string) (string, error) {
	args := []string{"build",
		"-n", filepath.Join(f.out, "db"),
		"-w", f.treePath,
		"-f", f.fastaDir,
		"--no-progress",
	}
	return f.run(t, append(args, extra...)...)
}

// TestBuildCmd verifies files, printed command and bootstrap side
// effects.
func TestBuildCmd(t *testing.T) {
	f := newFixture(t)

	out, err := f.build(t)
	require.NoError(t, err)

	prefix := filepath.Join(f.out, "db")
	for _, suffix := range []string{".fasta", "_nodes.dmp", "_names.dmp",
		"_seqid2taxid.map"} {
		assert.FileExists(t, prefix+suffix)
	}
	assert.NoFileExists(t, prefix+".sqlite")

	exp := "centrifuge-build --conversion-table " + prefix + "_seqid2taxid.map" +
		" --taxonomy-tree " + prefix + "_nodes.dmp" +
		" --name-table " + prefix + "_names.dmp " +
		prefix + ".fasta " + prefix + "\n"
	assert.Equal(t, exp, out)

	assert.FileExists(t, config.ConfigFilePath(f.home))
	assert.DirExists(t, config.LogDir(f.home))

	log, err := os.ReadFile(f.logPath)
	require.NoError(t, err)
	assert.Contains(t, string(log), "Build complete")
}

// TestBuildCmd_SQLite verifies the sqlite flag and its environment
// variable.
func TestBuildCmd_SQLite(t *testing.T) {
	f := newFixture(t)
	_, err := f.build(t, "--sqlite")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.out, "db.sqlite"))

	f = newFixture(t)
	t.Setenv("TREETAX_BUILD_WITH_SQLITE", "true")
	_, err = f.build(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.out, "db.sqlite"))
}

// TestBuildCmd_Ext verifies a custom FASTA extension.
func TestBuildCmd_Ext(t *testing.T) {
	f := newFixture(t)
	entries, err := os.ReadDir(f.fastaDir)
	require.NoError(t, err)
	for _, e := range entries {
		old := filepath.Join(f.fastaDir, e.Name())
		require.NoError(t, os.Rename(old, strings.TrimSuffix(old, ".fasta")+".fa"))
	}

	_, err = f.build(t)
	require.Error(t, err)

	_, err = f.build(t, "--ext", "fa")
	require.NoError(t, err)
}

// TestBuildCmd_MissingTaxon verifies the command fails without
// creating files.
func TestBuildCmd_MissingTaxon(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.fastaDir, "C.fasta")))

	out, err := f.build(t)
	require.Error(t, err)
	assert.Empty(t, out)

	entries, err := os.ReadDir(f.out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestBuildCmd_RequiredFlags verifies required flags.
func TestBuildCmd_RequiredFlags(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "build", "-n", filepath.Join(f.out, "db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
