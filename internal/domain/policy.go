package domain

import (
	"fmt"
	"strings"
)

// Policy holds project-level governance configuration loaded from
// .schemaguard.yaml. Zero values mean "use the default".
type Policy struct {
	EnvironmentURL  string   `yaml:"environment_url"  json:"environment_url,omitempty"`
	Solution        string   `yaml:"solution"         json:"solution,omitempty"`
	PublisherPrefix string   `yaml:"publisher_prefix" json:"publisher_prefix,omitempty"`
	RecentDays      int      `yaml:"recent_days"      json:"recent_days,omitempty"`
	IncludeRefData  bool     `yaml:"include_ref_data" json:"include_ref_data,omitempty"`
	Rules           []RuleID `yaml:"rules"            json:"rules,omitempty"`
	MaxEntities     int      `yaml:"max_entities"     json:"max_entities,omitempty"`
	RequiredColumns []string `yaml:"required_columns" json:"required_columns,omitempty"`
}

// DefaultPolicy returns the policy used when no file is present.
func DefaultPolicy() Policy {
	return Policy{
		RequiredColumns: DefaultRequiredColumns,
	}
}

// Validate checks the policy for invalid values and returns a descriptive
// error.
func (p Policy) Validate() error {
	// 1. prefix, when set, must end with the platform's underscore separator
	if p.PublisherPrefix != "" && !strings.HasSuffix(p.PublisherPrefix, "_") {
		return fmt.Errorf("publisher_prefix %q must end with %q", p.PublisherPrefix, "_")
	}

	// 2. counters must be non-negative
	if p.RecentDays < 0 {
		return fmt.Errorf("recent_days must be >= 0 (got %d)", p.RecentDays)
	}
	if p.MaxEntities < 0 {
		return fmt.Errorf("max_entities must be >= 0 (got %d)", p.MaxEntities)
	}

	// 3. rules must name catalogue entries
	for _, id := range p.Rules {
		if !KnownRuleID(id) {
			return fmt.Errorf("unknown rule %q in rules (valid: %s)", id, joinRuleIDs(AllRuleIDs))
		}
	}

	// 4. required column templates must not be blank
	for i, tmpl := range p.RequiredColumns {
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("required_columns[%d] must not be empty", i)
		}
	}

	return nil
}

// Request builds a ValidationRequest from the policy, scoped to the named
// solution or explicit entity list.
func (p Policy) Request(solution string, entities []string) ValidationRequest {
	return ValidationRequest{
		SolutionName:    solution,
		EntityNames:     entities,
		PublisherPrefix: p.PublisherPrefix,
		RecentDays:      p.RecentDays,
		IncludeRefData:  p.IncludeRefData,
		SelectedRules:   p.Rules,
		MaxEntities:     p.MaxEntities,
		RequiredColumns: p.RequiredColumns,
	}
}

func joinRuleIDs(ids []RuleID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
