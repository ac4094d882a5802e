package service

import (
	"errors"
	"fmt"
	"strings"

	"supplier-registry-backend/validation"
)

// Sentinel kinds for every way a submission can fail. The HTTP boundary
// maps kinds to statuses; only messages attached to validation-class kinds
// are ever surfaced to clients.
var (
	ErrRateLimited     = errors.New("too many submissions")
	ErrInvalidInput    = errors.New("invalid input")
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrStore           = errors.New("storage failure")
	ErrPersistence     = errors.New("persistence failure")
	ErrNotFound        = errors.New("supplier not found")
)

// Wrap preserves the kind of an underlying failure with operation context.
func Wrap(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

// IsKind reports whether err carries the given sentinel kind.
func IsKind(err, kind error) bool {
	return errors.Is(err, kind)
}

// ValidationError carries the full list of field violations from one
// validation pass.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// FileError names the slot a file check failed on and, for type failures,
// the allowed MIME set. Its message is safe to surface.
type FileError struct {
	Kind    error
	Slot    string
	Allowed []string
}

func (e *FileError) Error() string {
	switch e.Kind {
	case ErrFileTooLarge:
		return fmt.Sprintf("%s: file exceeds the %d MB limit", e.Slot, MaxFileBytes>>20)
	case ErrInvalidFileType:
		return fmt.Sprintf("%s: file type not allowed, expected one of: %s", e.Slot, strings.Join(e.Allowed, ", "))
	default:
		return fmt.Sprintf("%s: file rejected", e.Slot)
	}
}

func (e *FileError) Unwrap() error {
	return e.Kind
}
