package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is matched by every lookup that found no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by every write that violated a uniqueness or
	// reference rule.
	ErrConflict = errors.New("conflict")
)

// Error is a classified storage failure. Its message is fit to be shown to
// API clients.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.cause }

func notFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflict(cause error, format string, args ...any) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Driver messages for constraint violations, for errors the dialector did
// not translate.
var constraintMarkers = []string{
	"unique constraint failed",
	"foreign key constraint failed",
	"duplicate entry",
	"a foreign key constraint fails",
	"violates unique constraint",
	"violates foreign key constraint",
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range constraintMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// classify turns a constraint violation into a Conflict carrying the given
// detail and wraps anything else with op.
func classify(err error, op string, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if isConstraintViolation(err) {
		return conflict(err, format, args...)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// lookupError maps gorm.ErrRecordNotFound to a NotFound with the given
// detail and wraps anything else with op.
func lookupError(err error, op string, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return fmt.Errorf("%s: %w", op, err)
}
