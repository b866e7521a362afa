package record

import (
	"errors"
	"fmt"
)

// ValidationError reports a required field missing from user input.
// The operation aborts before anything is persisted; the caller
// re-prompts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation: %s", e.Message)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports an operation referencing a non-existent key.
// Never fatal: gets surface it as "nothing there", deletes treat it as
// already done, touch degrades to a logged no-op.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q not found", e.Collection, e.Key)
}

// NewNotFoundError creates a NotFoundError for a collection/key pair.
func NewNotFoundError(collection, key string) *NotFoundError {
	return &NotFoundError{Collection: collection, Key: key}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// StorageUnavailableError reports that the persistence layer failed to
// open or commit. No automatic retry; the caller decides whether to
// retry the user gesture. A write that cannot be confirmed must never
// advance the in-memory projection.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// NewStorageError wraps a persistence failure for operation op.
func NewStorageError(op string, err error) *StorageUnavailableError {
	return &StorageUnavailableError{Op: op, Err: err}
}

// IsStorageUnavailable reports whether err is (or wraps) a
// StorageUnavailableError.
func IsStorageUnavailable(err error) bool {
	var se *StorageUnavailableError
	return errors.As(err, &se)
}

// InvalidBackupError reports a malformed import payload. Import aborts
// before any wipe occurs; existing data is untouched.
type InvalidBackupError struct {
	Reason string
}

func (e *InvalidBackupError) Error() string {
	return fmt.Sprintf("invalid backup: %s", e.Reason)
}

// NewInvalidBackupError creates an InvalidBackupError with a reason.
func NewInvalidBackupError(reason string) *InvalidBackupError {
	return &InvalidBackupError{Reason: reason}
}

// IsInvalidBackup reports whether err is (or wraps) an
// InvalidBackupError.
func IsInvalidBackup(err error) bool {
	var ib *InvalidBackupError
	return errors.As(err, &ib)
}
