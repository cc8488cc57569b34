package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/riskcast/internal/model"
)

func fixturePath(t *testing.T) string {
	t.Helper()
	return filepath.Join("..", "..", "testdata", "project.yaml")
}

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProject_Fixture(t *testing.T) {
	project, err := LoadProject(fixturePath(t))
	require.NoError(t, err)

	assert.Equal(t, "rural electrification", project.Name())
	assert.Len(t, project.Stages(), 6)
	assert.Equal(t, 36, project.TotalBaseline())
	assert.Equal(t, 5, project.RiskCount())

	procurement := project.Stages()[3]
	assert.Equal(t, "Procurement", procurement.Name)
	require.Len(t, procurement.Risks, 2)
	assert.Equal(t, "supply_chain", procurement.Risks[0].Type)
	assert.Equal(t, model.SeverityCritical, procurement.Risks[0].Severity)
}

func TestLoadProject_NotFound(t *testing.T) {
	_, err := LoadProject("/nonexistent/project.yaml")
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadProject_MalformedYAML(t *testing.T) {
	path := writeProjectFile(t, "stages: [\n")

	_, err := LoadProject(path)
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeParseFailed, loadErr.Code)
}

func TestLoadProject_UnknownFieldRejected(t *testing.T) {
	// Typos must fail loudly instead of silently defaulting.
	path := writeProjectFile(t, `
stages:
  - id: 1
    name: Planning
    baseline: 6
    risks:
      - type: funding
        probability: 0.2
        impact_mn: 1
        impact_max: 3
        severity: high
`)

	_, err := LoadProject(path)
	require.Error(t, err)

	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeParseFailed, loadErr.Code)
	assert.Contains(t, loadErr.Message, "impact_mn")
}

func TestLoadProjectErrors_InvalidConfiguration(t *testing.T) {
	path := writeProjectFile(t, `
stages:
  - id: 1
    name: Planning
    baseline: 6
    risks:
      - type: funding
        probability: 0.2
        impact_min: 3
        impact_max: 1
        severity: high
`)

	project, errs, err := LoadProjectErrors(path)
	require.NoError(t, err)
	assert.Nil(t, project)
	require.Len(t, errs, 1)
	assert.Equal(t, model.ErrImpactInverted, errs[0].Code)
}

func TestLoadProject_InvalidConfigurationAsError(t *testing.T) {
	path := writeProjectFile(t, `
stages:
  - id: 1
    name: Planning
    baseline: 0
`)

	_, err := LoadProject(path)
	require.Error(t, err)

	var errs model.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, model.ErrBaselineTooSmall, errs[0].Code)
}
