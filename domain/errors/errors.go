// Package errors provides domain-specific error types for the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert
// themselves to a structured ErrorDetail for the wire.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// FromErrorDetail converts a host-reported ErrorDetail into the matching
// typed guest error. This is the inverse mapping the dispatcher applies to
// every failed response envelope.
func FromErrorDetail(detail *entities.ErrorDetail) error {
	if detail == nil {
		return nil
	}
	switch detail.Type {
	case "not_found":
		return &NotFoundError{What: detail.Code, Reason: detail.Message}
	case "unauthorized":
		return &UnauthorizedError{Outcome: entities.ClaimValidation(detail.Code), Reason: detail.Message}
	case "validation":
		return &ValidationError{Reason: detail.Message}
	case "conflict":
		return &ConflictError{Reason: detail.Message}
	case "protocol":
		return &ProtocolViolationError{Reason: detail.Message}
	default:
		return detail
	}
}

// NotFoundError reports that an address resolved to nothing live. Reason
// distinguishes "never existed" from "deleted".
type NotFoundError struct {
	What   string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.What != "" {
		return fmt.Sprintf("not found: %s: %s", e.What, e.Reason)
	}
	return fmt.Sprintf("not found: %s", e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Reason, Type: "not_found", Code: e.What, IsNotFound: true}
}

// UnauthorizedError reports a capability check failure. Outcome carries the
// exact validation state the host determined.
type UnauthorizedError struct {
	Outcome entities.ClaimValidation
	Reason  string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s (%s)", e.Reason, e.Outcome)
}

// ToErrorDetail implements DetailedError.
func (e *UnauthorizedError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Reason, Type: "unauthorized", Code: string(e.Outcome)}
}

// ValidationError reports that the host rejected a commit or that a local
// precondition check failed before the boundary was crossed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Reason, Type: "validation", Code: e.Field}
}

// ConflictError reports that a commit lost a race against the chain head.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ConflictError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Reason, Type: "conflict"}
}

// ProtocolViolationError reports that the host returned something the codec
// cannot interpret, or a response tag that does not match the request.
// It is fatal to the current call and carries no recovery path.
type ProtocolViolationError struct {
	Err    error
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol violation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol violation: %s", e.Reason)
}

func (e *ProtocolViolationError) Unwrap() error { return e.Err }

// ToErrorDetail implements DetailedError.
func (e *ProtocolViolationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "protocol"}
}

// MemoryError represents a guest buffer allocation failure.
type MemoryError struct {
	Requested int
	Current   int
	Limit     int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory allocation failed: requested %d bytes, current %d bytes, limit %d bytes",
		e.Requested, e.Current, e.Limit)
}

// ToErrorDetail implements DetailedError.
func (e *MemoryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "internal", Code: "memory_limit"}
}
