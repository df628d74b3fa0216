package domain

import (
	"errors"
	"fmt"
)

var (
	ErrImageNotFound      = errors.New("image not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrSourceMissing      = errors.New("source file not found")
	ErrCorruptImage       = errors.New("image data not decodable")
	ErrBackendUnavailable = errors.New("storage backend unavailable")
	ErrInvalidPath        = errors.New("invalid object path")

	// Both are backend-unavailable conditions; matching either also
	// matches ErrBackendUnavailable.
	ErrBucketNotFound = fmt.Errorf("storage bucket not found: %w", ErrBackendUnavailable)
	ErrAccessDenied   = fmt.Errorf("storage access denied: %w", ErrBackendUnavailable)
)

// ValidationError describes a user-correctable problem with an upload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
