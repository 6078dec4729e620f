package rules

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// checkPublisherPrefix flags in-scope columns whose logical name lacks the
// publisher prefix. The attribute filter already enforces this, so the check
// only fires when callers feed it an unfiltered set.
func checkPublisherPrefix(def Definition, in Input) []domain.Violation {
	var out []domain.Violation
	for _, a := range in.Filtered {
		if strings.HasPrefix(a.LogicalName, in.Prefix) {
			continue
		}
		out = append(out, violation(def, in.Entity.LogicalName, a.LogicalName,
			fmt.Sprintf("column %s lacks publisher prefix %s", a.LogicalName, in.Prefix),
			a.LogicalName,
			in.Prefix+a.LogicalName,
		))
	}
	return out
}

// checkLowercaseSchema flags columns whose schema name differs from its own
// lowercase form.
func checkLowercaseSchema(def Definition, in Input) []domain.Violation {
	var out []domain.Violation
	for _, a := range in.Filtered {
		schema := a.Schema()
		lower := strings.ToLower(schema)
		if schema == lower {
			continue
		}
		v := violation(def, in.Entity.LogicalName, a.LogicalName,
			fmt.Sprintf("schema name %s is not lowercase", schema),
			schema,
			lower,
		)
		v.Recommendation = fmt.Sprintf("rename to %s", suggestSnakeCase(schema, in.Prefix))
		out = append(out, v)
	}
	return out
}

// checkLookupNaming flags lookup columns whose name does not end in "id".
// The suffix check is case-sensitive: "ContactId" fails.
func checkLookupNaming(def Definition, in Input) []domain.Violation {
	var out []domain.Violation
	for _, a := range in.Filtered {
		if a.Type != domain.AttributeTypeLookup {
			continue
		}
		schema := a.Schema()
		if strings.HasSuffix(schema, "id") {
			continue
		}
		out = append(out, violation(def, in.Entity.LogicalName, a.LogicalName,
			fmt.Sprintf("lookup column %s does not end in \"id\"", schema),
			schema,
			strings.ToLower(schema)+suffixIfMissing(strings.ToLower(schema)),
		))
	}
	return out
}

func suffixIfMissing(lower string) string {
	if strings.HasSuffix(lower, "id") {
		return ""
	}
	return "id"
}

// suggestSnakeCase converts a cased schema name to a prefixed snake_case
// rename suggestion, e.g. "sic_ContactId" becomes "sic_contact_id".
func suggestSnakeCase(schema, prefix string) string {
	base := strings.TrimPrefix(schema, prefix)
	words := camelcase.Split(base)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return prefix + strings.Join(words, "_")
}
