package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemaguard/schemaguard/internal/domain"
)

func TestRenderReport_Compliant(t *testing.T) {
	out := RenderReport(&domain.ValidationResult{
		Metadata: domain.ResultMetadata{ScopeDescription: "entities:sic_proj", PublisherPrefix: "sic_"},
		Summary:  domain.ResultSummary{EntitiesChecked: 1, CompliantEntities: 1},
		Entities: []domain.EntityValidationResult{
			{LogicalName: "sic_proj", IsCompliant: true},
		},
	})

	assert.Contains(t, out, "COMPLIANT")
	assert.Contains(t, out, "All checked tables are compliant.")
	assert.NotContains(t, out, "Violations by rule")
}

func TestRenderReport_Violations(t *testing.T) {
	out := RenderReport(&domain.ValidationResult{
		Metadata: domain.ResultMetadata{
			ScopeDescription: "solution:governance",
			PublisherPrefix:  "sic_",
			CommitHash:       "0123456789abcdef0123456789abcdef01234567",
		},
		Summary: domain.ResultSummary{
			EntitiesChecked: 1, TotalViolations: 1, CriticalViolations: 1,
		},
		ViolationsSummary: []domain.ViolationSummary{{
			Rule:             "Required Column Existence",
			RuleID:           domain.RuleRequiredColumn,
			Severity:         domain.SeverityMust,
			TotalCount:       1,
			AffectedEntities: []string{"sic_proj"},
			Action:           "Add the missing column to the table.",
		}},
		Entities: []domain.EntityValidationResult{{
			LogicalName: "sic_proj",
			Violations: []domain.Violation{{
				Rule:     domain.RuleRequiredColumn,
				Severity: domain.SeverityMust,
				Entity:   "sic_proj",
				Message:  "table sic_proj lacks required column sic_updatedbyprocess",
			}},
		}},
	})

	assert.Contains(t, out, "1 critical")
	assert.Contains(t, out, "Required Column Existence")
	assert.Contains(t, out, "sic_proj")
	assert.Contains(t, out, "commit 0123456789ab", "hash is truncated to 12 characters")
	assert.NotContains(t, out, "COMPLIANT")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortHash("0123456789abcdef"))
	assert.Equal(t, "abc", shortHash("abc"))
}
