package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// InvalidIdentifierError is returned when a tenant handle or post id can't be
// turned into a table name. Raised before any I/O.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}

// ProvisioningError is a schema creation failure other than "already exists".
type ProvisioningError struct {
	Table string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to provision table %s: %v", e.Table, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// StorageError wraps read/write failures, lost connections and timeouts.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError is used by read paths that require existence.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// Is checks whether any error in err's chain is of type T.
func Is[T error](err error) bool {
	var target T
	return stderrors.As(err, &target)
}

// StatusCode maps an error to the http status the handler layer responds with.
func StatusCode(err error) int {
	var withCode *ErrorWithStatusCode
	switch {
	case stderrors.As(err, &withCode):
		return withCode.StatusCode
	case Is[*InvalidIdentifierError](err):
		return http.StatusBadRequest
	case Is[*NotFoundError](err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
