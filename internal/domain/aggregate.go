package domain

import "sort"

// Aggregate groups violations by rule in first-seen order and builds the
// sorted per-rule summaries: MUST groups before SHOULD, then total count
// descending, ties kept in discovery order. Severity, action, and
// recommendation are copied from the group's first member; every rule uses a
// single fixed template, so all members agree.
func Aggregate(violations []Violation) []ViolationSummary {
	var order []RuleID
	groups := make(map[RuleID][]Violation)

	for _, v := range violations {
		if _, seen := groups[v.Rule]; !seen {
			order = append(order, v.Rule)
		}
		groups[v.Rule] = append(groups[v.Rule], v)
	}

	summaries := make([]ViolationSummary, 0, len(order))
	for _, id := range order {
		group := groups[id]
		first := group[0]

		s := ViolationSummary{
			Rule:           first.RuleName,
			RuleID:         id,
			Severity:       first.Severity,
			TotalCount:     len(group),
			Action:         first.Action,
			Recommendation: first.Recommendation,
		}

		seenEntities := make(map[string]bool)
		seenColumns := make(map[string]bool)
		for _, v := range group {
			if !seenEntities[v.Entity] {
				seenEntities[v.Entity] = true
				s.AffectedEntities = append(s.AffectedEntities, v.Entity)
			}
			if v.IsEntityLocus() {
				continue
			}
			col := v.Entity + "." + v.Attribute
			if !seenColumns[col] {
				seenColumns[col] = true
				s.AffectedColumns = append(s.AffectedColumns, col)
			}
		}

		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Severity != summaries[j].Severity {
			return summaries[i].Severity == SeverityMust
		}
		return summaries[i].TotalCount > summaries[j].TotalCount
	})

	return summaries
}
