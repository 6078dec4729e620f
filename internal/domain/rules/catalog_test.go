package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaguard/schemaguard/internal/domain"
)

func TestCatalogue_CoversAllRuleIDs(t *testing.T) {
	defs := Catalogue()
	require.Len(t, defs, len(domain.AllRuleIDs))
	for i, def := range defs {
		assert.Equal(t, domain.AllRuleIDs[i], def.ID)
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Action)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(domain.RuleRequiredColumn)
	require.True(t, ok)
	assert.Equal(t, "Required Column Existence", def.Name)
	assert.Equal(t, domain.SeverityMust, def.Severity)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestRun_GatesBySelection(t *testing.T) {
	// An entity violating both the icon rule and the required-column rule.
	in := Input{
		Entity:          entity("sic_proj"),
		Prefix:          "sic_",
		RequiredColumns: []string{"{prefix}updatedbyprocess"},
	}

	onlyIcon := Run([]domain.RuleID{domain.RuleEntityIcon}, in)
	require.Len(t, onlyIcon, 1)
	assert.Equal(t, domain.RuleEntityIcon, onlyIcon[0].Rule)

	both := Run([]domain.RuleID{domain.RuleEntityIcon, domain.RuleRequiredColumn}, in)
	assert.Len(t, both, 2)
}

func TestRun_CatalogueOrderNotSelectionOrder(t *testing.T) {
	in := Input{
		Entity:          entity("sic_proj"),
		Prefix:          "sic_",
		RequiredColumns: []string{"{prefix}updatedbyprocess"},
	}

	// Selection order is reversed; emission follows catalogue order.
	out := Run([]domain.RuleID{domain.RuleEntityIcon, domain.RuleRequiredColumn}, in)
	require.Len(t, out, 2)
	assert.Equal(t, domain.RuleRequiredColumn, out[0].Rule)
	assert.Equal(t, domain.RuleEntityIcon, out[1].Rule)
}
