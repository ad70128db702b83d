// Package apperr defines the error taxonomy shared by the social graph and feed services.
package apperr

import (
	"errors"
	"fmt"
	nethttp "net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeForbidden        Code = "FORBIDDEN"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeValidation       Code = "VALIDATION"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrConflict         = &Error{Code: CodeConflict}
	ErrForbidden        = &Error{Code: CodeForbidden}
	ErrInvalidOperation = &Error{Code: CodeInvalidOperation}
	ErrValidation       = &Error{Code: CodeValidation}
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NotFound builds a NotFound error annotated with the lookup that missed.
func NotFound(entity, filter string) *Error {
	return &Error{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s not found", entity),
		Metadata: map[string]string{"entity": entity, "filter": filter},
	}
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func InvalidOperation(message string) *Error {
	return New(CodeInvalidOperation, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus maps an error to the transport status the API boundary responds with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return nethttp.StatusNotFound
	case CodeConflict:
		return nethttp.StatusConflict
	case CodeForbidden:
		return nethttp.StatusForbidden
	case CodeInvalidOperation, CodeValidation:
		return nethttp.StatusBadRequest
	default:
		return nethttp.StatusInternalServerError
	}
}

// GRPCCode maps an error to a gRPC status code.
func GRPCCode(err error) codes.Code {
	switch CodeOf(err) {
	case CodeNotFound:
		return codes.NotFound
	case CodeConflict:
		return codes.AlreadyExists
	case CodeForbidden:
		return codes.PermissionDenied
	case CodeInvalidOperation:
		return codes.FailedPrecondition
	case CodeValidation:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// GRPCStatus converts err to a gRPC status error.
func GRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(GRPCCode(err), err.Error())
}
