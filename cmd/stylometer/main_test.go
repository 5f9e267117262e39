package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylometer/internal/merror"
	"stylometer/internal/similarity"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDemo(t *testing.T) {
	out, err := runCLI(t, "demo")
	require.NoError(t, err)
	assert.Equal(t, "scores for source1: [-16.394, -9.92, -14.315, -1.386, -3.584]\n"+
		"scores for source2: [-17.087, -15.008, -16.394, -1.386, -1.386]\n"+
		"mystery is more likely to have come from source1\n", out)
}

func TestBuildShowClassifyHistory(t *testing.T) {
	ws := t.TempDir()
	docs := t.TempDir()
	src1 := writeFile(t, docs, "nyt.txt", "It is interesting that she is interested.")
	src2 := writeFile(t, docs, "globe.txt", "I am very, very excited about this!")
	mystery := writeFile(t, docs, "mystery.txt", "Is he interested? No, but I am.")

	out, err := runCLI(t, "-w", ws, "build", "source1", src1)
	require.NoError(t, err)
	assert.Contains(t, out, "text model name: source1")

	_, err = runCLI(t, "-w", ws, "build", "source2", "--text", "I am very, very excited about this!")
	require.NoError(t, err)
	_, err = runCLI(t, "-w", ws, "build", "source2-files", src2)
	require.NoError(t, err)

	out, err = runCLI(t, "-w", ws, "show")
	require.NoError(t, err)
	assert.Equal(t, "source1\nsource2\nsource2-files\n", out)

	out, err = runCLI(t, "-w", ws, "show", "source1", "--from-catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Model: source1")
	assert.Contains(t, out, "word lengths")

	out, err = runCLI(t, "-w", ws, "classify", "mystery", "source1", "source2", "--unknown-file", mystery, "--json", "--save-report")
	require.NoError(t, err)
	var result similarity.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "source1", result.Winner)
	assert.Equal(t, similarity.Vector{-16.394, -9.92, -14.315, -1.386, -3.584}, result.Candidates[0].Scores)

	reports, err := filepath.Glob(filepath.Join(ws, "reports", "*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	out, err = runCLI(t, "-w", ws, "classify", "mystery", "source1", "source2", "--unknown-text", "Is he interested? No, but I am.")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "mystery is more likely to have come from source1\n"), out)

	out, err = runCLI(t, "-w", ws, "history", "-n", "0")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "source1 vs source2"))
}

func TestBuildErrors(t *testing.T) {
	ws := t.TempDir()

	_, err := runCLI(t, "-w", ws, "build", "empty")
	assert.Error(t, err)

	_, err = runCLI(t, "-w", ws, "build", "ghost", filepath.Join(ws, "missing.txt"))
	assert.ErrorIs(t, err, merror.ErrUnavailable)

	_, err = runCLI(t, "-w", ws, "build", "partial", filepath.Join(ws, "missing.txt"), "--keep-going", "--text", "Still here.")
	require.NoError(t, err)

	_, err = runCLI(t, "-w", ws, "build", "a/b", "--text", "x")
	assert.ErrorIs(t, err, merror.ErrInvalidName)
}

func TestClassifyMissingModel(t *testing.T) {
	ws := t.TempDir()
	_, err := runCLI(t, "-w", ws, "build", "source1", "--text", "It is what it is.")
	require.NoError(t, err)

	_, err = runCLI(t, "-w", ws, "classify", "source1", "source1", "ghost")
	assert.ErrorIs(t, err, merror.ErrUnavailable)
}
