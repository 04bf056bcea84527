package wireformat

import "fmt"

// ErrorDetail provides structured error information, consistent across host
// and SDK. It is the wire error format carried in a response envelope and is
// usable directly as a Go error.
// Error Types: "not_found", "unauthorized", "validation", "conflict",
// "protocol", "capability", "internal"
type ErrorDetail struct {
	// Wrapped contains a wrapped error for error chains.
	Wrapped *ErrorDetail `json:"wrapped,omitempty" msgpack:"wrapped,omitempty"`

	// Details contains additional error context.
	Details map[string]any `json:"details,omitempty" msgpack:"details,omitempty"`

	// Message is a human-readable error description.
	Message string `json:"message" msgpack:"message"`

	// Type categorizes the error.
	Type string `json:"type" msgpack:"type"`

	// Code is a machine-readable error code.
	Code string `json:"code" msgpack:"code"`

	// IsNotFound indicates if this was a "not found" outcome.
	IsNotFound bool `json:"is_not_found,omitempty" msgpack:"is_not_found,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

// WithDetails returns the ErrorDetail with the given details attached.
func (e *ErrorDetail) WithDetails(details map[string]any) *ErrorDetail {
	e.Details = details
	return e
}

// WithCode returns the ErrorDetail with the given code attached.
func (e *ErrorDetail) WithCode(code string) *ErrorDetail {
	e.Code = code
	return e
}
