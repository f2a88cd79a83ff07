package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("QDRANT_URL", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func documents(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cv := writeFile(t, dir, "cv.txt", "Python developer with SQL and Docker experience\n")
	job := writeFile(t, dir, "job.md", "Looking for a Python and SQL engineer\n")
	return cv, job
}

func TestMatchJSON(t *testing.T) {
	cv, job := documents(t)

	out, err := execute(t, "match", "--cv", cv, "--job", job, "--format", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, 61.9, result["score"])
	assert.Equal(t, "Moyen", result["similarity_level"])
	assert.Equal(t, "jaccard", result["method"])
}

func TestMatchTextReport(t *testing.T) {
	cv, job := documents(t)

	out, err := execute(t, "match", "--cv", cv, "--job", job)
	require.NoError(t, err)

	assert.Contains(t, out, "=== RAPPORT DE SIMILARITÉ ===")
	assert.Contains(t, out, "Score global: 61.90% (Moyen)")
	assert.Contains(t, out, "Méthode utilisée: jaccard")
}

func TestMatchWithSkillFlags(t *testing.T) {
	cv, job := documents(t)

	out, err := execute(t, "match", "--cv", cv, "--job", job, "-o", "json",
		"--cv-skill", "Python", "--job-skill", "Python,Kubernetes", "--jaccard")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	analysis := result["skill_analysis"].(map[string]any)
	assert.Equal(t, 50.0, analysis["skill_coverage"])
}

func TestMatchUsesConfigFile(t *testing.T) {
	cv, job := documents(t)
	cfg := writeFile(t, t.TempDir(), "matcher.yaml", `
matching:
  weight_global: 1
  weight_skills: 0
  weight_experience: 0
  weight_education: 0
`)

	out, err := execute(t, "--config", cfg, "match", "--cv", cv, "--job", job, "-o", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, 28.57, result["score"])
	assert.Equal(t, "Faible", result["similarity_level"])
}

func TestMatchErrors(t *testing.T) {
	cv, job := documents(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"match", "--cv", cv, "--job", job, "--format", "xml"}},
		{name: "missing job flag", args: []string{"match", "--cv", cv}},
		{name: "missing file", args: []string{"match", "--cv", cv, "--job", filepath.Join(t.TempDir(), "none.txt")}},
		{name: "unsupported format", args: []string{"match", "--cv", cv, "--job", writeFile(t, t.TempDir(), "job.docx", "x")}},
		{name: "missing config file", args: []string{"--config", "/nonexistent/matcher.yaml", "match", "--cv", cv, "--job", job}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestWarmRequiresAPIKey(t *testing.T) {
	_, err := execute(t, "warm")
	assert.ErrorIs(t, err, errEmbeddingDisabled)
}

func TestSkillNames(t *testing.T) {
	t.Parallel()

	names := skillNames([]string{"Terraform Cloud"})
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "Kubernetes")
	assert.Equal(t, "Terraform Cloud", names[len(names)-1])
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cv-matcher version: unknown\n", out)
}
