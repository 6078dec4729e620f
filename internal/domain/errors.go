package domain

import "errors"

// ErrNotFound is returned by MetadataRepository implementations when a
// solution, component, or entity does not exist.
var ErrNotFound = errors.New("not found")

// InvalidRequestError reports a structurally invalid ValidationRequest.
// No partial result is produced.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// ScopeNotFoundError reports that the solution named by a SolutionScope
// request does not exist. This is the only metadata condition fatal to a run.
type ScopeNotFoundError struct {
	Solution string
}

func (e *ScopeNotFoundError) Error() string {
	return "solution " + e.Solution + " not found"
}
