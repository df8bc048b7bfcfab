package custom_error

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

type ForeignKeyViolationError struct {
	message string
	code    string
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

type CheckViolationError struct {
	message string
	code    string
}

func (c *CheckViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", c.message, c.code)
}

// WrapDBError translates a raw PostgreSQL error code into a typed error
// handlers can switch on.
func WrapDBError(message, code string) error {
	switch code {
	case pqUniqueViolation:
		return &UniqueViolationError{message: message, code: code}
	case pqForeignKeyViolation:
		return &ForeignKeyViolationError{message: "Value is referenced by other resources: " + message, code: code}
	case pqCheckViolation:
		return &CheckViolationError{message: message, code: code}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint failure, optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
