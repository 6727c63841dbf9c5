package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ConstraintKind classifies a store-level integrity violation.
type ConstraintKind int

const (
	UniqueViolation ConstraintKind = iota + 1
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	// A value outside the column type's range (SQLSTATE 22003).
	OutOfRange
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign_key"
	case NotNullViolation:
		return "not_null"
	case CheckViolation:
		return "check"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// ConstraintViolation is the driver-independent form of an integrity error.
// Repositories switch on Kind and Constraint, never on SQLSTATE codes.
type ConstraintViolation struct {
	Kind       ConstraintKind
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s constraint %q violated: %v", e.Kind, e.Constraint, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// postgres SQLSTATE class 23 codes, plus numeric overflow
var constraintCodes = map[pq.ErrorCode]ConstraintKind{
	"23505": UniqueViolation,
	"23503": ForeignKeyViolation,
	"23502": NotNullViolation,
	"23514": CheckViolation,
	"22003": OutOfRange,
}

// TranslateError converts integrity errors from lib/pq into *ConstraintViolation.
// Any other error is returned unchanged.
func TranslateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	kind, ok := constraintCodes[pqErr.Code]
	if !ok {
		return err
	}
	return &ConstraintViolation{Kind: kind, Constraint: pqErr.Constraint, Err: err}
}

// IsViolation reports whether err is a violation of the given kind. An empty
// constraint name matches any constraint of that kind.
func IsViolation(err error, kind ConstraintKind, constraint string) bool {
	var cv *ConstraintViolation
	if !errors.As(TranslateError(err), &cv) {
		return false
	}
	if cv.Kind != kind {
		return false
	}
	return constraint == "" || cv.Constraint == constraint
}
