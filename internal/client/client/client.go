package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/api"
)

// Client is the API contract used by the CLI.
type Client interface {
	Register(ctx context.Context, req *api.RegisterRequest) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	GetProfile(ctx context.Context) (*api.User, error)
	LookupUser(ctx context.Context, id int64) (*api.User, error)
	Ping(ctx context.Context) error
	LoggedIn() bool
	Logout()
	Close() error
}
