package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("Blog with this slug already exists")
	ErrDatabaseQuery = errors.New("database query failed")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDuplicateSlugError is a conflict that the API reports as 400, matching
// the rest of the validation failures on blog creation.
func NewDuplicateSlugError(slug string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrDuplicateSlug,
		Details:    slug,
		Field:      "slug",
	}
}

// NewDatabaseError wraps a store failure. Typed store errors (not found,
// duplicate slug, validation) pass through untouched; anything else is a 500
// whose cause is kept for server-side logging only.
func NewDatabaseError(operation, entity string, cause error) error {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%w: %w", ErrInternal, ErrDatabaseQuery),
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

func IsDuplicateSlugError(err error) bool {
	return errors.Is(err, ErrDuplicateSlug)
}

func IsDatabaseQueryError(err error) bool {
	return errors.Is(err, ErrDatabaseQuery)
}
