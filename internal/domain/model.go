package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity classifies how binding a rule is. MUST violations block CI,
// SHOULD violations are advisory.
type Severity string

const (
	SeverityMust   Severity = "MUST"
	SeverityShould Severity = "SHOULD"
)

// RuleID identifies one check in the rule catalogue.
type RuleID string

const (
	RulePublisherPrefix RuleID = "publisher-prefix"
	RuleLowercaseSchema RuleID = "lowercase-schema-name"
	RuleLookupNaming    RuleID = "lookup-naming"
	RuleGlobalOptionSet RuleID = "global-optionset"
	RuleRequiredColumn  RuleID = "required-column"
	RuleEntityIcon      RuleID = "entity-icon"
)

// AllRuleIDs enumerates the catalogue in its canonical order.
var AllRuleIDs = []RuleID{
	RulePublisherPrefix,
	RuleLowercaseSchema,
	RuleLookupNaming,
	RuleGlobalOptionSet,
	RuleRequiredColumn,
	RuleEntityIcon,
}

// PrefixPlaceholder is substituted with the publisher prefix in required
// column templates.
const PrefixPlaceholder = "{prefix}"

// DefaultRequiredColumns is the required-column template set used when a
// request specifies none.
var DefaultRequiredColumns = []string{PrefixPlaceholder + "updatedbyprocess"}

// ValidationRequest describes one validation run. Exactly one of SolutionName
// or EntityNames must be set.
type ValidationRequest struct {
	SolutionName    string   `json:"solution_name,omitempty"`
	EntityNames     []string `json:"entity_names,omitempty"`
	PublisherPrefix string   `json:"publisher_prefix"`
	RecentDays      int      `json:"recent_days"`
	IncludeRefData  bool     `json:"include_ref_data"`
	SelectedRules   []RuleID `json:"selected_rules,omitempty"`
	MaxEntities     int      `json:"max_entities"`
	RequiredColumns []string `json:"required_columns,omitempty"`
}

// Validate checks structural request invariants. It does not touch the
// metadata service.
func (r ValidationRequest) Validate() error {
	hasSolution := r.SolutionName != ""
	hasEntities := len(r.EntityNames) > 0

	switch {
	case hasSolution && hasEntities:
		return &InvalidRequestError{Reason: "solution and entity scopes are mutually exclusive"}
	case !hasSolution && !hasEntities:
		return &InvalidRequestError{Reason: "either a solution name or an explicit entity list is required"}
	}

	if r.PublisherPrefix == "" {
		return &InvalidRequestError{Reason: "publisher prefix must not be empty"}
	}
	if r.RecentDays < 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("recent_days must be >= 0 (got %d)", r.RecentDays)}
	}
	if r.MaxEntities < 0 {
		return &InvalidRequestError{Reason: fmt.Sprintf("max_entities must be >= 0 (got %d)", r.MaxEntities)}
	}
	for _, id := range r.SelectedRules {
		if !KnownRuleID(id) {
			return &InvalidRequestError{Reason: fmt.Sprintf("unknown rule %q", id)}
		}
	}
	return nil
}

// KnownRuleID reports whether id names a catalogue rule.
func KnownRuleID(id RuleID) bool {
	for _, known := range AllRuleIDs {
		if id == known {
			return true
		}
	}
	return false
}

// EffectiveRules returns the selected rule set, defaulting to the full
// catalogue when none were named.
func (r ValidationRequest) EffectiveRules() []RuleID {
	if len(r.SelectedRules) == 0 {
		return AllRuleIDs
	}
	return r.SelectedRules
}

// EffectiveRequiredColumns returns the required-column templates, defaulting
// to DefaultRequiredColumns.
func (r ValidationRequest) EffectiveRequiredColumns() []string {
	if len(r.RequiredColumns) == 0 {
		return DefaultRequiredColumns
	}
	return r.RequiredColumns
}

// ScopeDescription renders the request scope for report metadata and audit
// records.
func (r ValidationRequest) ScopeDescription() string {
	if r.SolutionName != "" {
		return "solution:" + r.SolutionName
	}
	return "entities:" + strings.Join(r.EntityNames, ",")
}

// SolutionRef identifies a resolved solution.
type SolutionRef struct {
	ID           uuid.UUID `json:"id"`
	UniqueName   string    `json:"unique_name"`
	FriendlyName string    `json:"friendly_name,omitempty"`
}

// EntityDescriptor is the metadata of one table as seen by the rule catalogue.
type EntityDescriptor struct {
	LogicalName    string    `json:"logical_name"`
	SchemaName     string    `json:"schema_name,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
	MetadataID     uuid.UUID `json:"metadata_id,omitempty"`
	IsCustomEntity bool      `json:"is_custom_entity"`
	HasIcon        bool      `json:"has_icon"`
}

// IsRefData reports whether the entity is a reference-data table under the
// prefix+"ref_" naming convention.
func (e EntityDescriptor) IsRefData(prefix string) bool {
	return IsRefDataName(e.LogicalName, prefix)
}

// IsRefDataName applies the reference-data naming convention to a bare
// logical name.
func IsRefDataName(logicalName, prefix string) bool {
	return strings.HasPrefix(logicalName, prefix+"ref_")
}

// AttributeType is the platform column type tag.
type AttributeType string

const (
	AttributeTypeString   AttributeType = "String"
	AttributeTypeMemo     AttributeType = "Memo"
	AttributeTypeInteger  AttributeType = "Integer"
	AttributeTypeDecimal  AttributeType = "Decimal"
	AttributeTypeMoney    AttributeType = "Money"
	AttributeTypeBoolean  AttributeType = "Boolean"
	AttributeTypeDateTime AttributeType = "DateTime"
	AttributeTypeLookup   AttributeType = "Lookup"
	AttributeTypePicklist AttributeType = "Picklist"
)

// AttributeDescriptor is the metadata of one column. LogicalName is always
// lowercase on the platform; SchemaName carries the author's casing.
type AttributeDescriptor struct {
	LogicalName       string        `json:"logical_name"`
	SchemaName        string        `json:"schema_name,omitempty"`
	Type              AttributeType `json:"type"`
	IsCustomAttribute bool          `json:"is_custom_attribute"`
	CreatedOn         *time.Time    `json:"created_on,omitempty"`
}

// Schema returns the cased schema name, falling back to the logical name for
// sources that do not carry one.
func (a AttributeDescriptor) Schema() string {
	if a.SchemaName != "" {
		return a.SchemaName
	}
	return a.LogicalName
}

// Violation is one policy finding. An empty Attribute means the violation is
// attached to the whole entity.
type Violation struct {
	Rule           RuleID   `json:"rule"`
	RuleName       string   `json:"rule_name"`
	Severity       Severity `json:"severity"`
	Entity         string   `json:"entity"`
	Attribute      string   `json:"attribute,omitempty"`
	Message        string   `json:"message"`
	CurrentValue   string   `json:"current_value,omitempty"`
	ExpectedValue  string   `json:"expected_value,omitempty"`
	Action         string   `json:"action"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// IsEntityLocus reports whether the violation targets the entity rather than
// a single attribute.
func (v Violation) IsEntityLocus() bool { return v.Attribute == "" }

// ViolationSummary is one aggregated rule group.
type ViolationSummary struct {
	Rule             string   `json:"rule"`
	RuleID           RuleID   `json:"rule_id"`
	Severity         Severity `json:"severity"`
	TotalCount       int      `json:"total_count"`
	AffectedEntities []string `json:"affected_entities"`
	AffectedColumns  []string `json:"affected_columns,omitempty"`
	Action           string   `json:"action"`
	Recommendation   string   `json:"recommendation,omitempty"`
}

// EntityValidationResult is the per-entity slice of a report.
type EntityValidationResult struct {
	LogicalName       string      `json:"logical_name"`
	DisplayName       string      `json:"display_name,omitempty"`
	IsCompliant       bool        `json:"is_compliant"`
	AttributesChecked int         `json:"attributes_checked"`
	Violations        []Violation `json:"violations,omitempty"`
}

// ResultMetadata stamps one validation run.
type ResultMetadata struct {
	GeneratedAt      time.Time `json:"generated_at"`
	ScopeDescription string    `json:"scope_description"`
	PublisherPrefix  string    `json:"publisher_prefix"`
	RecentDays       int       `json:"recent_days"`
	ExecutionTimeMs  int64     `json:"execution_time_ms"`
	CommitHash       string    `json:"commit_hash,omitempty"`
}

// ResultSummary holds the aggregate counters of a run.
type ResultSummary struct {
	EntitiesChecked    int `json:"entities_checked"`
	AttributesChecked  int `json:"attributes_checked"`
	TotalViolations    int `json:"total_violations"`
	CriticalViolations int `json:"critical_violations"`
	Warnings           int `json:"warnings"`
	CompliantEntities  int `json:"compliant_entities"`
}

// ResultStatistics counts what the filters excluded before any rule ran.
type ResultStatistics struct {
	SystemColumnsExcluded int `json:"system_columns_excluded"`
	OldColumnsExcluded    int `json:"old_columns_excluded"`
	RefDataTablesSkipped  int `json:"ref_data_tables_skipped"`
}

// ValidationResult is the full compliance report for one request.
type ValidationResult struct {
	Metadata          ResultMetadata           `json:"metadata"`
	Summary           ResultSummary            `json:"summary"`
	ViolationsSummary []ViolationSummary       `json:"violations_summary,omitempty"`
	Entities          []EntityValidationResult `json:"entities"`
	Statistics        ResultStatistics         `json:"statistics"`
}

// AuditRecord is emitted exactly once per validate call, success or failure.
type AuditRecord struct {
	Operation        string `json:"operation"`
	ScopeDescription string `json:"scope_description"`
	EntityCount      int    `json:"entity_count"`
	PublisherPrefix  string `json:"publisher_prefix"`
	RecentDays       int    `json:"recent_days"`
	TotalViolations  int    `json:"total_violations"`
	Error            string `json:"error,omitempty"`
	ExecutionTimeMs  int64  `json:"execution_time_ms"`
}
