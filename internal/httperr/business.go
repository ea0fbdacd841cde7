package httperr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeValidation           = "validation_error"
	CodeCapacityExceeded     = "capacity_exceeded"
	CodeAlreadyBooked        = "already_booked"
	CodeReferentialConflict  = "referential_conflict"
	CodeNotAssociated        = "not_associated"
	CodeNotFound             = "not_found"
	CodeForbidden            = "forbidden"
	CodeAccountAlreadyLinked = "account_already_linked"
	CodeShiftStarted         = "shift_started"
	CodeUnavailable          = "store_unavailable"
	CodePartialCascade       = "partial_cascade"
)

// BusinessError is a rule violation the caller can act on. Field names the
// offending input for validation errors.
type BusinessError struct {
	Code  string
	Field string
}

func (e BusinessError) Error() string {
	if e.Field != "" {
		return e.Code + ": " + e.Field
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrValidation(field string) error {
	return BusinessError{Code: CodeValidation, Field: field}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ======================================================
// STORE FAILURES
// ======================================================

// UnavailableError wraps a storage or network failure. Retrying may help;
// the core itself never does.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func Unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

// PartialCascadeError reports dependents left behind after the primary
// document was already deleted.
type PartialCascadeError struct {
	Entity   string
	EntityID string
	Failed   []string
	Err      error
}

func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("%s %s deleted, cleanup incomplete for %s: %v",
		e.Entity, e.EntityID, strings.Join(e.Failed, ", "), e.Err)
}

func (e *PartialCascadeError) Unwrap() error {
	return e.Err
}
