package rules

import (
	"fmt"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// checkGlobalOptionSet flags choice columns whose option set is scoped to a
// single table. The global flag comes from a secondary metadata fetch via
// the injected lookup; a lookup error skips that one column so a flaky
// fetch never fails the run.
func checkGlobalOptionSet(def Definition, in Input) []domain.Violation {
	if in.OptionSetIsGlobal == nil {
		return nil
	}

	var out []domain.Violation
	for _, a := range in.Filtered {
		if a.Type != domain.AttributeTypePicklist {
			continue
		}
		global, err := in.OptionSetIsGlobal(a.LogicalName)
		if err != nil {
			continue
		}
		if global {
			continue
		}
		out = append(out, violation(def, in.Entity.LogicalName, a.LogicalName,
			fmt.Sprintf("choice column %s uses a local option set", a.LogicalName),
			"local option set",
			"global option set",
		))
	}
	return out
}
