package rules

import (
	"fmt"
	"strings"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// checkRequiredColumns emits one entity-locus violation per required column
// template absent from the entity's full attribute set. Reference-data
// tables are exempt. Deliberately inspects the unfiltered set: a required
// column satisfies the policy even when the recency filter would hide it.
func checkRequiredColumns(def Definition, in Input) []domain.Violation {
	if in.Entity.IsRefData(in.Prefix) {
		return nil
	}

	present := make(map[string]bool, len(in.Unfiltered))
	for _, a := range in.Unfiltered {
		present[a.LogicalName] = true
	}

	var out []domain.Violation
	for _, tmpl := range in.RequiredColumns {
		want := strings.ReplaceAll(tmpl, domain.PrefixPlaceholder, in.Prefix)
		if present[want] {
			continue
		}
		out = append(out, violation(def, in.Entity.LogicalName, "",
			fmt.Sprintf("table %s lacks required column %s", in.Entity.LogicalName, want),
			"missing",
			want,
		))
	}
	return out
}

// checkEntityIcon flags custom tables without an icon.
func checkEntityIcon(def Definition, in Input) []domain.Violation {
	if !in.Entity.IsCustomEntity || in.Entity.HasIcon {
		return nil
	}
	return []domain.Violation{violation(def, in.Entity.LogicalName, "",
		fmt.Sprintf("table %s has no icon", in.Entity.LogicalName),
		"no icon",
		"icon assigned",
	)}
}
