package rules

import (
	"github.com/schemaguard/schemaguard/internal/domain"
)

// Definition is the fixed template of one catalogue rule. Severity, action,
// and recommendation never vary across the violations a rule emits.
type Definition struct {
	ID             domain.RuleID   `json:"id"`
	Name           string          `json:"name"`
	Severity       domain.Severity `json:"severity"`
	Description    string          `json:"description"`
	Action         string          `json:"action"`
	Recommendation string          `json:"recommendation,omitempty"`
}

type checkFunc func(def Definition, in Input) []domain.Violation

type rule struct {
	def   Definition
	check checkFunc
}

// catalogue lists the six checks in canonical order.
var catalogue = []rule{
	{
		def: Definition{
			ID:          domain.RulePublisherPrefix,
			Name:        "Publisher Prefix",
			Severity:    domain.SeverityMust,
			Description: "Every custom column carries the publisher prefix.",
			Action:      "Recreate the column with the publisher prefix.",
		},
		check: checkPublisherPrefix,
	},
	{
		def: Definition{
			ID:             domain.RuleLowercaseSchema,
			Name:           "Lowercase Schema Name",
			Severity:       domain.SeverityMust,
			Description:    "Schema names are all lowercase.",
			Action:         "Recreate the column with a lowercase schema name.",
			Recommendation: "Use lowercase snake_case names so logical and schema names stay identical.",
		},
		check: checkLowercaseSchema,
	},
	{
		def: Definition{
			ID:          domain.RuleLookupNaming,
			Name:        "Lookup Naming Convention",
			Severity:    domain.SeverityMust,
			Description: "Lookup columns end in \"id\".",
			Action:      "Recreate the lookup column with an \"id\" suffix.",
		},
		check: checkLookupNaming,
	},
	{
		def: Definition{
			ID:             domain.RuleGlobalOptionSet,
			Name:           "Global Option Set Scope",
			Severity:       domain.SeverityShould,
			Description:    "Choice columns reference a global option set.",
			Action:         "Migrate the column to a global option set.",
			Recommendation: "Local option sets cannot be shared across tables; prefer global definitions.",
		},
		check: checkGlobalOptionSet,
	},
	{
		def: Definition{
			ID:          domain.RuleRequiredColumn,
			Name:        "Required Column Existence",
			Severity:    domain.SeverityMust,
			Description: "Every non-reference table carries the mandated audit columns.",
			Action:      "Add the missing column to the table.",
		},
		check: checkRequiredColumns,
	},
	{
		def: Definition{
			ID:             domain.RuleEntityIcon,
			Name:           "Entity Icon Presence",
			Severity:       domain.SeverityShould,
			Description:    "Custom tables define an icon.",
			Action:         "Assign an icon to the table.",
			Recommendation: "Icons make custom tables recognizable in model-driven apps.",
		},
		check: checkEntityIcon,
	},
}

// Catalogue returns the rule definitions in canonical order.
func Catalogue() []Definition {
	defs := make([]Definition, len(catalogue))
	for i, r := range catalogue {
		defs[i] = r.def
	}
	return defs
}

// Lookup returns the definition for a rule id.
func Lookup(id domain.RuleID) (Definition, bool) {
	for _, r := range catalogue {
		if r.def.ID == id {
			return r.def, true
		}
	}
	return Definition{}, false
}

// Input carries everything the checks inspect for one entity. Filtered is
// the in-scope attribute subset; Unfiltered is the entity's full set and
// feeds only the required-column check. OptionSetIsGlobal is invoked once per
// choice column; a nil func or a returned error disables the option-set
// check for that column.
type Input struct {
	Entity            domain.EntityDescriptor
	Filtered          []domain.AttributeDescriptor
	Unfiltered        []domain.AttributeDescriptor
	Prefix            string
	RequiredColumns   []string
	OptionSetIsGlobal func(attributeLogicalName string) (bool, error)
}

// Run executes the selected rules against one entity in catalogue order and
// returns their violations.
func Run(selected []domain.RuleID, in Input) []domain.Violation {
	on := make(map[domain.RuleID]bool, len(selected))
	for _, id := range selected {
		on[id] = true
	}

	var out []domain.Violation
	for _, r := range catalogue {
		if !on[r.def.ID] {
			continue
		}
		out = append(out, r.check(r.def, in)...)
	}
	return out
}

// violation builds a finding from a rule's fixed template. attribute is ""
// for entity-locus findings.
func violation(def Definition, entity, attribute, message, current, expected string) domain.Violation {
	return domain.Violation{
		Rule:           def.ID,
		RuleName:       def.Name,
		Severity:       def.Severity,
		Entity:         entity,
		Attribute:      attribute,
		Message:        message,
		CurrentValue:   current,
		ExpectedValue:  expected,
		Action:         def.Action,
		Recommendation: def.Recommendation,
	}
}
