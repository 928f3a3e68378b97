package services

import (
	"errors"
	"fmt"

	"docvault/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound marks a missing folder, flag, document or request.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict is returned when a transactional sequence was
	// aborted by a concurrent writer and can be retried.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

// notFoundError wraps ErrNotFound with the resource kind and id.
func notFoundError(resource string, id primitive.ObjectID) error {
	return fmt.Errorf("%s %s: %w", resource, id.Hex(), ErrNotFound)
}

// IsNotFound reports whether err stems from a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidationError rejects malformed input on a mutating operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Quota violation kinds.
const (
	QuotaViolationSize  = "size_exceeded"
	QuotaViolationCount = "count_exceeded"
)

// QuotaExceededError blocks an upload that would break the container policy.
// It carries the violated threshold and the offending value so callers can
// render an actionable message.
type QuotaExceededError struct {
	Class  models.ResourceClass
	Kind   string
	Limit  int64
	Actual int64
}

func (e *QuotaExceededError) Error() string {
	if e.Kind == QuotaViolationSize {
		return fmt.Sprintf("%s upload of %d bytes exceeds the %d MB size limit", e.Class, e.Actual, e.Limit)
	}
	return fmt.Sprintf("%s count %d has reached the limit of %d", e.Class, e.Actual, e.Limit)
}

// IsQuotaExceeded unwraps err into a QuotaExceededError if it is one.
func IsQuotaExceeded(err error) (*QuotaExceededError, bool) {
	var qe *QuotaExceededError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}

// InconsistentStateError reports that the blob store and the metadata store
// diverged for a document. The reconciliation sweep picks these up.
type InconsistentStateError struct {
	DocumentID primitive.ObjectID
	StorageKey string
	Cause      error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("blob and metadata diverged for document %s (key %s): %v",
		e.DocumentID.Hex(), e.StorageKey, e.Cause)
}

func (e *InconsistentStateError) Unwrap() error {
	return e.Cause
}
