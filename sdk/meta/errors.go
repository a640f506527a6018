package meta

import (
	"fmt"
	"strings"
)

// ErrAuthentication represents an error wherein the OpenCourse API could not
// authenticate a request, either because credentials presented at login were
// rejected or because a bearer token was missing, malformed, or expired.
type ErrAuthentication struct {
	// Reason is a natural language explanation for the failure, typically
	// relayed from the API server's own error response.
	Reason string
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("Could not authenticate the request: %s", e.Reason)
}

// ErrAuthorization represents an error wherein the OpenCourse API recognized
// the principal behind a request, but that principal lacked permission to
// carry out the requested operation.
type ErrAuthorization struct {
	// Reason is a natural language explanation for the denial, typically
	// relayed from the API server's own error response.
	Reason string
}

func (e *ErrAuthorization) Error() string {
	if e.Reason == "" {
		return "The request is not authorized."
	}
	return fmt.Sprintf("The request is not authorized: %s", e.Reason)
}

// ErrBadRequest represents an error wherein the OpenCourse API rejected a
// request as invalid. Field-level validation messages, when the server
// provides them, are retained per field.
type ErrBadRequest struct {
	// Reason is a natural language explanation for why the request was
	// invalid.
	Reason string
	// Fields maps field names to the server's validation messages for each.
	Fields map[string][]string
}

func (e *ErrBadRequest) Error() string {
	msg := fmt.Sprintf("Bad request: %s", e.Reason)
	if len(e.Fields) == 0 {
		return msg
	}
	details := make([]string, 0, len(e.Fields))
	for field, fieldMsgs := range e.Fields {
		details = append(
			details,
			fmt.Sprintf("%s: %s", field, strings.Join(fieldMsgs, "; ")),
		)
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(details, ", "))
}

// FieldMessage returns the server's first validation message for the named
// field, if there is one.
func (e *ErrBadRequest) FieldMessage(field string) (string, bool) {
	fieldMsgs, ok := e.Fields[field]
	if !ok || len(fieldMsgs) == 0 {
		return "", false
	}
	return fieldMsgs[0], true
}

// ErrNotFound represents an error wherein a resource presumed to exist could
// not be located.
type ErrNotFound struct {
	// Type identifies the type of the resource that could not be located.
	Type string
	// ID identifies the specific resource that could not be located.
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found.", e.Type, e.ID)
}

// ErrConflict represents an error wherein a request could not be completed
// because it conflicted with existing state-- for instance, registration of
// an email address that already has an account.
type ErrConflict struct {
	// Reason is a natural language explanation for the conflict.
	Reason string
}

func (e *ErrConflict) Error() string {
	return e.Reason
}

// ErrInternalServer represents a condition wherein the OpenCourse API
// encountered an unexpected internal error and declined to provide details.
type ErrInternalServer struct{}

func (e *ErrInternalServer) Error() string {
	return "An internal server error occurred."
}
