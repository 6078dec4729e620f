package domain

import (
	"context"

	"github.com/google/uuid"
)

// MetadataRepository is the read-only accessor for remote schema metadata.
// Implementations must be safe for concurrent use; lookups that find nothing
// return an error wrapping ErrNotFound.
type MetadataRepository interface {
	ResolveSolution(ctx context.Context, uniqueName string) (SolutionRef, error)
	ListEntityComponentIDs(ctx context.Context, solutionID uuid.UUID) ([]uuid.UUID, error)
	ResolveEntityLogicalName(ctx context.Context, componentID uuid.UUID) (string, error)
	GetEntityDescriptor(ctx context.Context, logicalName string) (*EntityDescriptor, error)
	ListAttributes(ctx context.Context, logicalName string) ([]AttributeDescriptor, error)
	GetOptionSetGlobalFlag(ctx context.Context, entityName, attributeName string) (bool, error)
}

// AuditSink receives exactly one record per validation call.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord)
}

// PolicyLoader reads the project policy file.
type PolicyLoader interface {
	Load(projectPath string) (Policy, error)
}

// GitInfo resolves the commit hash of the repository under validation, for
// CI traceability. Implementations return "" when no repository is present.
type GitInfo interface {
	CommitHash(projectPath string) string
}
