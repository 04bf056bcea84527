package entities

import "github.com/zomekit-dev/zome-sdk/wireformat"

// ErrorDetail is re-exported from wireformat for convenience; it is the same
// type the host returns inside a response envelope.
type ErrorDetail = wireformat.ErrorDetail

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{
		Type:    errorType,
		Message: message,
	}
}
