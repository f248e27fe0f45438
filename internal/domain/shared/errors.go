// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Validation errors raised while constructing catalog or enlistment objects.
	ErrValidation      = errors.New("validation error")
	ErrEmptyValue      = errors.New("value cannot be blank")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrNilReference    = errors.New("reference cannot be nil")

	// Rule errors raised while evaluating an enlistment operation.
	ErrRuleViolation = errors.New("enlistment rule violation")

	// Registry errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
)

// Rule violation kinds. Every failed enlistment or cancellation maps to exactly
// one of these; all of them wrap ErrRuleViolation so callers can treat the whole
// family uniformly.
var (
	ErrScheduleConflict            = fmt.Errorf("%w: schedule conflict", ErrRuleViolation)
	ErrScheduleRoomConflict        = fmt.Errorf("%w: schedule and room conflict", ErrRuleViolation)
	ErrRoomCapacityReached         = fmt.Errorf("%w: room capacity reached", ErrRuleViolation)
	ErrNotPartOfDegreeProgram      = fmt.Errorf("%w: subject not part of degree program", ErrRuleViolation)
	ErrPrerequisitesNotMet         = fmt.Errorf("%w: prerequisites not met", ErrRuleViolation)
	ErrDuplicateSubjectEnlistment  = fmt.Errorf("%w: duplicate subject enlistment", ErrRuleViolation)
	ErrMaxUnitsLimitExceeded       = fmt.Errorf("%w: max units per student exceeded", ErrRuleViolation)
	ErrCancellingUnenlistedSection = fmt.Errorf("%w: cancelling unenlisted section", ErrRuleViolation)
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "catalog", "enlistment"
	Op      string // Operation that failed, e.g., "Enlist", "Register"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsValidation checks if the error is a construction-time validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrNilReference)
}

// IsRuleViolation checks if the error is a rejection of an enlistment operation.
// Rule violations are user-correctable: the caller may present the message and
// allow a new attempt. They are never retried internally.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrRuleViolation)
}

// IsNotFound checks if the error is a registry "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
