// Package apperror declares the failure kinds shared by the store modules.
// Operations wrap one of these with context; callers classify with errors.Is.
package apperror

import "github.com/pkg/errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPermissionDenied  = errors.New("permission denied")
)

// Kind returns the sentinel err wraps, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrInvalidArgument,
		ErrAlreadyExists,
		ErrNotFound,
		ErrInsufficientStock,
		ErrPermissionDenied,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
