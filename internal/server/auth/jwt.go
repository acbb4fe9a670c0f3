package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity snapshot embedded in an access token.
type Claims struct {
	Subject int64
	Email   string
	Role    models.Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenIssuer signs and verifies HS256 access tokens. The secret and TTL
// are fixed at construction.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	leeway time.Duration
	now    func() time.Time
}

type IssuerOption func(*TokenIssuer)

// WithIssuer sets the iss claim and requires it on verification.
func WithIssuer(iss string) IssuerOption {
	return func(t *TokenIssuer) { t.issuer = iss }
}

// WithLeeway tolerates clock skew when checking exp.
func WithLeeway(d time.Duration) IssuerOption {
	return func(t *TokenIssuer) { t.leeway = d }
}

func WithClock(now func() time.Time) IssuerOption {
	return func(t *TokenIssuer) { t.now = now }
}

// NewTokenIssuer returns common.ErrMissingSecret when secret is empty.
func NewTokenIssuer(secret []byte, ttl time.Duration, opts ...IssuerOption) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	t := &TokenIssuer{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// TTL is the lifetime given to every issued token.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs c. Subject must be positive.
func (t *TokenIssuer) Issue(c Claims) (string, error) {
	if c.Subject <= 0 {
		return "", fmt.Errorf("%w: subject must be positive", common.ErrTokenInvalidClaims)
	}

	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(c.Subject, 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: c.Email,
		Role:  string(c.Role),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Errors are one of common.ErrTokenMalformed, common.ErrTokenExpired or
// common.ErrTokenInvalidClaims.
func (t *TokenIssuer) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.leeway > 0 {
		opts = append(opts, jwt.WithLeeway(t.leeway))
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	var tc tokenClaims
	token, err := jwt.NewParser(opts...).ParseWithClaims(raw, &tc, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if !token.Valid {
		return Claims{}, common.ErrTokenMalformed
	}

	sub, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || sub <= 0 {
		return Claims{}, fmt.Errorf("%w: subject %q", common.ErrTokenInvalidClaims, tc.Subject)
	}

	role, err := models.ParseRole(tc.Role)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrTokenInvalidClaims, err)
	}

	return Claims{Subject: sub, Email: tc.Email, Role: role}, nil
}

// jwt/v5 wraps expiry in ErrTokenInvalidClaims too, so order matters.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", common.ErrTokenInvalidClaims, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	}
}
