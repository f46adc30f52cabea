package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRenderAndInspect(t *testing.T) {
	in := writeInput(t, "people.json", `[{"name": "Ann", "age": 31}, {"name": "Bob", "age": 40}]`)
	out := filepath.Join(t.TempDir(), "people.xlsx")

	_, stderr, err := execute(t, "render", in, "-o", out, "--sheet-name", "People")
	require.NoError(t, err)
	assert.Contains(t, stderr, "workbook written")
	assert.FileExists(t, out)

	stdout, _, err := execute(t, "inspect", out)
	require.NoError(t, err)
	var cells struct {
		BookName string `json:"book_name"`
		Sheets   []struct {
			Name string `json:"name"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &cells))
	assert.Equal(t, "people.xlsx", cells.BookName)
	require.Len(t, cells.Sheets, 1)
	assert.Equal(t, "People", cells.Sheets[0].Name)
}

func TestRenderQuiet(t *testing.T) {
	in := writeInput(t, "rows.yaml", "- a: 1\n")
	out := filepath.Join(t.TempDir(), "rows.xlsx")

	_, stderr, err := execute(t, "render", in, "-o", out, "-q")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestPlan(t *testing.T) {
	in := writeInput(t, "rows.yaml", "- a: 1\n  b: x\n")

	stdout, _, err := execute(t, "plan", in, "--orientation", "vertical")
	require.NoError(t, err)
	var plan struct {
		Sheets []struct {
			Name   string `json:"name"`
			Tables []struct {
				Orientation string `json:"orientation"`
			} `json:"tables"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	require.Len(t, plan.Sheets, 1)
	assert.Equal(t, "Sheet1", plan.Sheets[0].Name)
	assert.Equal(t, "vertical", plan.Sheets[0].Tables[0].Orientation)

	stdout, _, err = execute(t, "plan", in, "--output-format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sheets:")
}

func TestCommandErrors(t *testing.T) {
	in := writeInput(t, "rows.json", `[{"a": 1}]`)
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"plan", filepath.Join(t.TempDir(), "none.json")}},
		{"bad orientation", []string{"plan", in, "--orientation", "diagonal"}},
		{"bad input format", []string{"plan", in, "--format", "toml"}},
		{"bad output format", []string{"plan", in, "--output-format", "csv"}},
		{"inspect missing", []string{"inspect", filepath.Join(t.TempDir(), "none.xlsx")}},
		{"no args", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
