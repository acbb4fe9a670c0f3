package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// errInvalidCredentials is returned for both an unknown email and a wrong
// password so the two cases cannot be told apart.
var errInvalidCredentials = fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidCredentials)

// TokenSigner is the part of auth.TokenIssuer used by the service.
type TokenSigner interface {
	Issue(auth.Claims) (string, error)
}

// Recorder receives operation outcomes. telemetry.AuthMetrics implements it.
type Recorder interface {
	RecordRegister(ctx context.Context, outcome string)
	RecordLogin(ctx context.Context, outcome string)
}

// Outcome labels passed to Recorder.
const (
	OutcomeSuccess       = "success"
	OutcomeConflict      = "conflict"
	OutcomeInvalid       = "invalid"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeInternalError = "error"
)

type noopRecorder struct{}

func (noopRecorder) RecordRegister(context.Context, string) {}
func (noopRecorder) RecordLogin(context.Context, string)    {}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
	Role     *models.Role
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        models.PublicUser
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	signer      TokenSigner
	logger      logging.Logger
	metrics     Recorder

	// dummyHash is verified against when the email is unknown, so login
	// costs one hash verification on every path.
	dummyHash string
}

type UserServiceOption func(*UserService)

func WithRecorder(r Recorder) UserServiceOption {
	return func(s *UserService) {
		if r != nil {
			s.metrics = r
		}
	}
}

// NewUserService computes the dummy hash up front, which takes one full
// hashing round.
func NewUserService(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager,
	hasher auth.PasswordHasher, signer TokenSigner, logger logging.Logger, opts ...UserServiceOption) (*UserService, error) {

	s := &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		signer:      signer,
		logger:      logger.With("module", "services.user"),
		metrics:     noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	filler := make([]byte, 24)
	if _, err := rand.Read(filler); err != nil {
		return nil, fmt.Errorf("dummy password: %w", err)
	}
	dummy, err := hasher.Hash(ctx, fmt.Sprintf("%x", filler))
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Register creates an account and returns a token for it. An email that
// is already taken yields common.ErrConflict, whether the check here or
// the store's unique constraint catches it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	role := models.DefaultRole
	if in.Role != nil {
		if !in.Role.Valid() {
			s.metrics.RecordRegister(ctx, OutcomeInvalid)
			return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, *in.Role)
		}
		role = *in.Role
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, in.Email)
	if err == nil {
		s.metrics.RecordRegister(ctx, OutcomeConflict)
		return nil, common.ErrConflict
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.metrics.RecordRegister(ctx, OutcomeInternalError)
		return nil, s.internal(ctx, "register: lookup", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		s.metrics.RecordRegister(ctx, OutcomeInternalError)
		return nil, s.internal(ctx, "register: hash", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			s.metrics.RecordRegister(ctx, OutcomeConflict)
			return nil, common.ErrConflict
		}
		s.metrics.RecordRegister(ctx, OutcomeInternalError)
		return nil, s.internal(ctx, "register: create", err)
	}

	// The account is durable at this point; a signing failure only loses
	// the token.
	res, err := s.authResult(ctx, user)
	if err != nil {
		s.metrics.RecordRegister(ctx, OutcomeInternalError)
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	s.metrics.RecordRegister(ctx, OutcomeSuccess)
	return res, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// same error after the same amount of hashing work.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.metrics.RecordLogin(ctx, OutcomeInternalError)
			return nil, s.internal(ctx, "login: lookup", err)
		}
		_, _ = s.hasher.Verify(ctx, s.dummyHash, password)
		s.metrics.RecordLogin(ctx, OutcomeUnauthorized)
		return nil, errInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		s.metrics.RecordLogin(ctx, OutcomeInternalError)
		return nil, s.internal(ctx, "login: verify", err)
	}
	if !ok {
		s.metrics.RecordLogin(ctx, OutcomeUnauthorized)
		return nil, errInvalidCredentials
	}

	res, err := s.authResult(ctx, user)
	if err != nil {
		s.metrics.RecordLogin(ctx, OutcomeInternalError)
		return nil, err
	}

	s.metrics.RecordLogin(ctx, OutcomeSuccess)
	return res, nil
}

// GetProfile returns the public view of user id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.PublicUser, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "profile: lookup", err)
	}

	pub := user.Public()
	return &pub, nil
}

func (s *UserService) authResult(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.signer.Issue(auth.Claims{Subject: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, s.internal(ctx, "issue token", err)
	}
	return &AuthResult{AccessToken: token, User: user.Public()}, nil
}

// internal logs err and hides it behind common.ErrorInternal.
func (s *UserService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "operation failed", "op", op, "error", err)
	return common.ErrorInternal
}
