package grpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{"validation keeps detail", fmt.Errorf("%w: email is required", common.ErrValidation), codes.InvalidArgument, "validation error: email is required"},
		{"conflict", common.ErrConflict, codes.AlreadyExists, "email already registered"},
		{"bad credentials", fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidCredentials), codes.Unauthenticated, "invalid credentials"},
		{"expired token hidden", fmt.Errorf("%w: %w: token is expired", common.ErrorUnauthorized, common.ErrTokenExpired), codes.Unauthenticated, "unauthorized"},
		{"forbidden", fmt.Errorf("%w: role STUDENT", common.ErrForbidden), codes.PermissionDenied, "forbidden"},
		{"not found", common.ErrorNotFound, codes.NotFound, "not found"},
		{"internal", common.ErrorInternal, codes.Internal, "internal error"},
		{"raw db error hidden", errors.New(`pq: duplicate key value violates unique constraint "users_pkey"`), codes.Internal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(toStatus(tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}

	assert.NoError(t, toStatus(nil))
}
