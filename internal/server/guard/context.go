package guard

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Principal is the caller identity rebuilt from verified token claims.
type Principal struct {
	ID    int64
	Email string
	Role  models.Role
}

type principalKey struct{}

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached by Authenticate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
