package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("save post: %w", &NotFoundError{Entity: "post", Key: "1"})

	assert.True(t, Is[*NotFoundError](wrapped))
	assert.False(t, Is[*StorageError](wrapped))
	assert.False(t, Is[*NotFoundError](nil))
}

func TestStorageErrorUnwrap(t *testing.T) {
	err := &StorageError{Op: "insert post", Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "insert post: context deadline exceeded", err.Error())
}

func TestProvisioningErrorUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := &ProvisioningError{Table: "posts_u_alice", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "posts_u_alice")
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "with status code", err: &ErrorWithStatusCode{Message: "nope", StatusCode: http.StatusTeapot}, want: http.StatusTeapot},
		{name: "invalid identifier", err: &InvalidIdentifierError{Identifier: "", Reason: "empty"}, want: http.StatusBadRequest},
		{name: "not found wrapped", err: fmt.Errorf("get: %w", &NotFoundError{Entity: "post", Key: "7"}), want: http.StatusNotFound},
		{name: "storage", err: &StorageError{Op: "query", Err: stderrors.New("boom")}, want: http.StatusInternalServerError},
		{name: "provisioning", err: &ProvisioningError{Table: "t", Err: stderrors.New("boom")}, want: http.StatusInternalServerError},
		{name: "plain", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}
