// Package users persists credential records.
//
// Implementations return common.ErrorNotFound for missing rows and
// common.ErrConflict when the store's unique email constraint rejects an
// insert. Any other failure is wrapped as "db error".
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
