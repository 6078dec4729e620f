package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/schemaguard/schemaguard/internal/domain"
)

// ZapSink implements domain.AuditSink by writing one structured log entry per
// validation call.
type ZapSink struct {
	logger *zap.Logger
}

// New creates a ZapSink. A nil logger records nothing.
func New(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Record(_ context.Context, rec domain.AuditRecord) {
	fields := []zap.Field{
		zap.String("operation", rec.Operation),
		zap.String("scope", rec.ScopeDescription),
		zap.Int("entity_count", rec.EntityCount),
		zap.String("publisher_prefix", rec.PublisherPrefix),
		zap.Int("recent_days", rec.RecentDays),
		zap.Int64("execution_time_ms", rec.ExecutionTimeMs),
	}

	if rec.Error != "" {
		fields = append(fields, zap.String("error", rec.Error))
		s.logger.Error("schema validation failed", fields...)
		return
	}

	fields = append(fields, zap.Int("total_violations", rec.TotalViolations))
	s.logger.Info("schema validation completed", fields...)
}
