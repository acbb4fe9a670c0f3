package guard

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// TokenVerifier is the part of auth.TokenIssuer the guard needs.
type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// Policy is the access rule declared for one operation. The zero value is
// a public operation. Roles imply Authenticated; an empty Roles set allows
// any authenticated caller.
type Policy struct {
	Authenticated bool
	Roles         []models.Role
}

// Public reports whether the policy needs no token.
func (p Policy) Public() bool {
	return !p.Authenticated && len(p.Roles) == 0
}

// Guard holds no per-request state and is safe for concurrent use.
type Guard struct {
	verifier TokenVerifier
}

func New(v TokenVerifier) *Guard {
	return &Guard{verifier: v}
}

// Authenticate verifies rawToken and attaches the resulting Principal to
// the returned context. Every failure is common.ErrorUnauthorized; the
// token error kind stays in the chain for logging.
func (g *Guard) Authenticate(ctx context.Context, rawToken string) (context.Context, Principal, error) {
	if rawToken == "" {
		return ctx, Principal{}, fmt.Errorf("%w: missing bearer token", common.ErrorUnauthorized)
	}

	claims, err := g.verifier.Verify(rawToken)
	if err != nil {
		return ctx, Principal{}, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	p := Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role}
	return WithPrincipal(ctx, p), p, nil
}

// Authorize checks the principal in ctx against required. It must only be
// called on a context returned by Authenticate.
func (g *Guard) Authorize(ctx context.Context, required []models.Role) error {
	if len(required) == 0 {
		return nil
	}

	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no principal", common.ErrForbidden)
	}
	if !slices.Contains(required, p.Role) {
		return fmt.Errorf("%w: role %s not in %v", common.ErrForbidden, p.Role, required)
	}
	return nil
}

// Check applies policy to a request presenting rawToken. Public policies
// pass ctx through untouched.
func (g *Guard) Check(ctx context.Context, rawToken string, policy Policy) (context.Context, error) {
	if policy.Public() {
		return ctx, nil
	}

	ctx, _, err := g.Authenticate(ctx, rawToken)
	if err != nil {
		return ctx, err
	}

	if err := g.Authorize(ctx, policy.Roles); err != nil {
		return ctx, err
	}
	return ctx, nil
}
