package pg

import (
	"context"
	"errors"
	"strings"

	internal_errors "github.com/itchan-dev/community/shared/errors"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation = pq.ErrorCode("23505")
	codeDuplicateTable  = pq.ErrorCode("42P07")
	codeDuplicateObject = pq.ErrorCode("42710")
	codeUndefinedTable  = pq.ErrorCode("42P01")
	codeQueryCanceled   = pq.ErrorCode("57014")
)

func pqError(err error) *pq.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}
	return nil
}

// isAlreadyExists reports whether a CREATE failed only because a concurrent
// creator got there first. Two racing CREATE TABLE IF NOT EXISTS statements
// can also collide on the system catalog's unique index instead of 42P07.
func isAlreadyExists(err error) bool {
	pqErr := pqError(err)
	if pqErr == nil {
		return false
	}
	switch pqErr.Code {
	case codeDuplicateTable, codeDuplicateObject:
		return true
	case codeUniqueViolation:
		return strings.HasPrefix(pqErr.Constraint, "pg_")
	}
	return false
}

func isUndefinedTable(err error) bool {
	pqErr := pqError(err)
	return pqErr != nil && pqErr.Code == codeUndefinedTable
}

// isContextError reports whether err comes from the caller's context being
// cancelled or timing out, either in database/sql or as a server-side cancel.
func isContextError(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pqErr := pqError(err); pqErr != nil && pqErr.Code == codeQueryCanceled {
		return true
	}
	return ctx.Err() != nil
}

func storageError(op string, err error) error {
	return &internal_errors.StorageError{Op: op, Err: err}
}

// txError passes typed errors from inside a transaction through and wraps
// begin/commit failures as storage errors.
func txError(op string, err error) error {
	if internal_errors.Is[*internal_errors.NotFoundError](err) ||
		internal_errors.Is[*internal_errors.StorageError](err) ||
		internal_errors.Is[*internal_errors.InvalidIdentifierError](err) {
		return err
	}
	return storageError(op, err)
}
