package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/internal/domain"
)

func writePolicy(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))
}

func TestLoad_MissingFileYieldsDefault(t *testing.T) {
	p, err := New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy(), p)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, `
environment_url: https://org.crm.dynamics.com
solution: governance
publisher_prefix: sic_
recent_days: 14
include_ref_data: true
rules:
  - required-column
  - entity-icon
max_entities: 25
`)

	p, err := New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://org.crm.dynamics.com", p.EnvironmentURL)
	assert.Equal(t, "governance", p.Solution)
	assert.Equal(t, "sic_", p.PublisherPrefix)
	assert.Equal(t, 14, p.RecentDays)
	assert.True(t, p.IncludeRefData)
	assert.Equal(t, []domain.RuleID{domain.RuleRequiredColumn, domain.RuleEntityIcon}, p.Rules)
	assert.Equal(t, 25, p.MaxEntities)
	assert.Equal(t, domain.DefaultRequiredColumns, p.RequiredColumns,
		"omitted required_columns fall back to the default templates")
}

func TestLoad_RequiredColumnsKept(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, `
publisher_prefix: sic_
required_columns:
  - "{prefix}owner"
`)

	p, err := New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"{prefix}owner"}, p.RequiredColumns)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "publisher_prefix: [broken")

	_, err := New().Load(dir)
	assert.Error(t, err)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "publisher_prefix: noprefix")

	_, err := New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fileName)
}
