package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/schemaguard/schemaguard/internal/domain"
)

func newObservedSink(t *testing.T) (*ZapSink, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	return New(zap.New(core)), logs
}

func TestRecord_Success(t *testing.T) {
	sink, logs := newObservedSink(t)

	sink.Record(context.Background(), domain.AuditRecord{
		Operation:        "validate_schema",
		ScopeDescription: "solution:governance",
		EntityCount:      3,
		PublisherPrefix:  "sic_",
		TotalViolations:  2,
		ExecutionTimeMs:  120,
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "schema validation completed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "solution:governance", fields["scope"])
	assert.Equal(t, int64(3), fields["entity_count"])
	assert.Equal(t, int64(2), fields["total_violations"])
}

func TestRecord_Failure(t *testing.T) {
	sink, logs := newObservedSink(t)

	sink.Record(context.Background(), domain.AuditRecord{
		Operation:        "validate_schema",
		ScopeDescription: "solution:ghost",
		Error:            "solution ghost not found",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "schema validation failed", entries[0].Message)
	assert.Equal(t, "solution ghost not found", entries[0].ContextMap()["error"])
}

func TestRecord_NilLoggerIsSafe(t *testing.T) {
	sink := New(nil)
	assert.NotPanics(t, func() {
		sink.Record(context.Background(), domain.AuditRecord{Operation: "validate_schema"})
	})
}
