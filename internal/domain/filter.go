package domain

import (
	"strings"
	"time"
)

// FilteredAttributes is the outcome of narrowing an entity's attribute set to
// the in-scope subset. Retained drives the naming and option-set rules plus
// the attributes-checked counter; the caller keeps the original list for the
// required-column check.
type FilteredAttributes struct {
	Retained       []AttributeDescriptor
	SystemExcluded int
	OldExcluded    int
}

// FilterAttributes excludes non-custom or unprefixed columns (counted as
// system columns), then columns older than recentDays (counted as old
// columns, 0 disables). A column with no creation timestamp cannot be aged
// and is retained.
func FilterAttributes(attrs []AttributeDescriptor, prefix string, recentDays int, now time.Time) FilteredAttributes {
	var out FilteredAttributes

	cutoff := now.AddDate(0, 0, -recentDays)
	for _, a := range attrs {
		if !a.IsCustomAttribute || !strings.HasPrefix(a.LogicalName, prefix) {
			out.SystemExcluded++
			continue
		}
		if recentDays > 0 && a.CreatedOn != nil && a.CreatedOn.Before(cutoff) {
			out.OldExcluded++
			continue
		}
		out.Retained = append(out.Retained, a)
	}

	return out
}
