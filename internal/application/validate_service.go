package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/schemaguard/schemaguard/internal/domain"
	"github.com/schemaguard/schemaguard/internal/domain/rules"
)

// ValidateService orchestrates the validation pipeline:
// resolve scope → fetch per-entity metadata → filter attributes → run rules →
// aggregate → assemble report. Metadata fetches run strictly sequentially to
// bound the request rate against the metadata service; callers may still run
// independent Validate calls concurrently since no state is shared across
// invocations.
type ValidateService struct {
	repo   domain.MetadataRepository
	audit  domain.AuditSink
	git    domain.GitInfo
	logger *zap.Logger
}

// NewValidateService creates a ValidateService. git may be nil; logger nil
// means no diagnostics.
func NewValidateService(repo domain.MetadataRepository, audit domain.AuditSink, git domain.GitInfo, logger *zap.Logger) *ValidateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidateService{repo: repo, audit: audit, git: git, logger: logger}
}

// Validate runs one compliance check and returns the full report. Fatal
// conditions (invalid request, solution not found) are audited once and
// returned; per-entity and per-attribute fetch failures are logged and
// recovered locally.
func (s *ValidateService) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		s.auditFailure(ctx, req, 0, start, err)
		return nil, err
	}

	candidates, refSkipped, err := s.resolveScope(ctx, req)
	if err != nil {
		s.auditFailure(ctx, req, 0, start, err)
		return nil, err
	}

	stats := domain.ResultStatistics{RefDataTablesSkipped: refSkipped}
	selected := req.EffectiveRules()

	var (
		entityResults []domain.EntityValidationResult
		allViolations []domain.Violation
		attrsChecked  int
	)

	for _, name := range candidates {
		desc, attrs, ok := s.fetchEntity(ctx, name)
		if !ok {
			continue
		}

		filtered := domain.FilterAttributes(attrs, req.PublisherPrefix, req.RecentDays, time.Now())
		stats.SystemColumnsExcluded += filtered.SystemExcluded
		stats.OldColumnsExcluded += filtered.OldExcluded
		attrsChecked += len(filtered.Retained)

		in := rules.Input{
			Entity:            *desc,
			Filtered:          filtered.Retained,
			Unfiltered:        attrs,
			Prefix:            req.PublisherPrefix,
			RequiredColumns:   req.EffectiveRequiredColumns(),
			OptionSetIsGlobal: s.optionSetLookup(ctx, desc.LogicalName),
		}
		violations := rules.Run(selected, in)

		entityResults = append(entityResults, domain.EntityValidationResult{
			LogicalName:       desc.LogicalName,
			DisplayName:       desc.DisplayName,
			IsCompliant:       len(violations) == 0,
			AttributesChecked: len(filtered.Retained),
			Violations:        violations,
		})
		allViolations = append(allViolations, violations...)
	}

	result := &domain.ValidationResult{
		Metadata: domain.ResultMetadata{
			GeneratedAt:      time.Now(),
			ScopeDescription: req.ScopeDescription(),
			PublisherPrefix:  req.PublisherPrefix,
			RecentDays:       req.RecentDays,
			ExecutionTimeMs:  time.Since(start).Milliseconds(),
			CommitHash:       s.commitHash(),
		},
		Summary:           summarize(entityResults, attrsChecked, allViolations),
		ViolationsSummary: domain.Aggregate(allViolations),
		Entities:          entityResults,
		Statistics:        stats,
	}

	s.audit.Record(ctx, domain.AuditRecord{
		Operation:        "validate_schema",
		ScopeDescription: req.ScopeDescription(),
		EntityCount:      len(entityResults),
		PublisherPrefix:  req.PublisherPrefix,
		RecentDays:       req.RecentDays,
		TotalViolations:  result.Summary.TotalViolations,
		ExecutionTimeMs:  result.Metadata.ExecutionTimeMs,
	})

	return result, nil
}

// resolveScope turns the request into the ordered candidate entity list plus
// the count of reference-data tables dropped on the way.
func (s *ValidateService) resolveScope(ctx context.Context, req domain.ValidationRequest) ([]string, int, error) {
	if req.SolutionName != "" {
		return s.resolveSolutionScope(ctx, req)
	}

	// Explicit scope: keep caller-supplied, prefix-matching names. No
	// existence check; unknown names are discovered and dropped during the
	// per-entity fetch.
	var names []string
	for _, n := range req.EntityNames {
		if strings.HasPrefix(n, req.PublisherPrefix) {
			names = append(names, n)
		}
	}
	if req.MaxEntities > 0 && len(names) > req.MaxEntities {
		names = names[:req.MaxEntities]
	}
	return names, 0, nil
}

func (s *ValidateService) resolveSolutionScope(ctx context.Context, req domain.ValidationRequest) ([]string, int, error) {
	sol, err := s.repo.ResolveSolution(ctx, req.SolutionName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, &domain.ScopeNotFoundError{Solution: req.SolutionName}
		}
		return nil, 0, fmt.Errorf("resolving solution %s: %w", req.SolutionName, err)
	}

	components, err := s.repo.ListEntityComponentIDs(ctx, sol.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("listing components of %s: %w", req.SolutionName, err)
	}

	var (
		names      []string
		refSkipped int
	)
	for _, id := range components {
		name, err := s.repo.ResolveEntityLogicalName(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unresolvable solution component",
				zap.String("component_id", id.String()),
				zap.Error(err))
			continue
		}
		if !strings.HasPrefix(name, req.PublisherPrefix) {
			continue
		}
		if !req.IncludeRefData && domain.IsRefDataName(name, req.PublisherPrefix) {
			refSkipped++
			continue
		}
		names = append(names, name)
		if req.MaxEntities > 0 && len(names) == req.MaxEntities {
			break
		}
	}
	return names, refSkipped, nil
}

// fetchEntity loads one entity's descriptor and attribute set. Either fetch
// failing drops the entity from the run entirely.
func (s *ValidateService) fetchEntity(ctx context.Context, name string) (*domain.EntityDescriptor, []domain.AttributeDescriptor, bool) {
	desc, err := s.repo.GetEntityDescriptor(ctx, name)
	if err != nil {
		s.logger.Warn("dropping entity: descriptor fetch failed",
			zap.String("entity", name), zap.Error(err))
		return nil, nil, false
	}
	attrs, err := s.repo.ListAttributes(ctx, name)
	if err != nil {
		s.logger.Warn("dropping entity: attribute fetch failed",
			zap.String("entity", name), zap.Error(err))
		return nil, nil, false
	}
	return desc, attrs, true
}

// optionSetLookup wraps the per-attribute option-set fetch so the rule layer
// stays free of transport concerns. Errors are logged here and surfaced to
// the rule, which skips the column.
func (s *ValidateService) optionSetLookup(ctx context.Context, entityName string) func(string) (bool, error) {
	return func(attributeName string) (bool, error) {
		global, err := s.repo.GetOptionSetGlobalFlag(ctx, entityName, attributeName)
		if err != nil {
			s.logger.Warn("option set fetch failed, skipping column",
				zap.String("entity", entityName),
				zap.String("attribute", attributeName),
				zap.Error(err))
			return false, err
		}
		return global, nil
	}
}

func (s *ValidateService) commitHash() string {
	if s.git == nil {
		return ""
	}
	return s.git.CommitHash(".")
}

func (s *ValidateService) auditFailure(ctx context.Context, req domain.ValidationRequest, entities int, start time.Time, err error) {
	s.audit.Record(ctx, domain.AuditRecord{
		Operation:        "validate_schema",
		ScopeDescription: req.ScopeDescription(),
		EntityCount:      entities,
		PublisherPrefix:  req.PublisherPrefix,
		RecentDays:       req.RecentDays,
		Error:            err.Error(),
		ExecutionTimeMs:  time.Since(start).Milliseconds(),
	})
}

func summarize(entities []domain.EntityValidationResult, attrsChecked int, violations []domain.Violation) domain.ResultSummary {
	sum := domain.ResultSummary{
		EntitiesChecked:   len(entities),
		AttributesChecked: attrsChecked,
		TotalViolations:   len(violations),
	}
	for _, v := range violations {
		if v.Severity == domain.SeverityMust {
			sum.CriticalViolations++
		} else {
			sum.Warnings++
		}
	}
	for _, e := range entities {
		if e.IsCompliant {
			sum.CompliantEntities++
		}
	}
	return sum
}
