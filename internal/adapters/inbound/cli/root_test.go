package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/internal/domain"
	"github.com/schemaguard/schemaguard/internal/domain/rules"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmdForTest()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"version", "validate", "rules", "init", "mcp"} {
		assert.Contains(t, names, want)
	}
}

func TestRulesCmd_Table(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)

	for _, id := range domain.AllRuleIDs {
		assert.Contains(t, out, string(id))
	}
	assert.Contains(t, out, "MUST")
	assert.Contains(t, out, "SHOULD")
}

func TestRulesCmd_JSON(t *testing.T) {
	out, err := runCommand(t, "rules", "--json")
	require.NoError(t, err)

	var defs []rules.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, len(domain.AllRuleIDs))
}

func TestValidateCmd_MissingEnvironmentURL(t *testing.T) {
	_, err := runCommand(t, "validate", "--entities", "sic_proj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment URL")
}

func TestInitCmd_WritesPolicyAndRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	_, err = runCommand(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = runCommand(t, "init", dir, "--force")
	assert.NoError(t, err)
}
