package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/guard"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

var _ api.AuthServiceServer = (*GRPCServer)(nil)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {

	if err := api.Validate(req); err != nil {
		return nil, toStatus(err)
	}

	in := services.RegisterInput{Email: req.Email, Password: req.Password, FullName: req.FullName}
	if req.Role != "" {
		role, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, toStatus(fmt.Errorf("%w: %v", common.ErrValidation, err))
		}
		in.Role = &role
	}

	result, err := s.users.Register(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}

	return toAuthResponse(result), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {

	if err := api.Validate(req); err != nil {
		return nil, toStatus(err)
	}

	result, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return toAuthResponse(result), nil
}

// GetProfile returns the caller's own profile.
func (s *GRPCServer) GetProfile(ctx context.Context, _ *api.GetProfileRequest) (*api.UserResponse, error) {

	p, ok := guard.PrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	user, err := s.users.GetProfile(ctx, p.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.UserResponse{User: toAPIUser(*user)}, nil
}

// LookupUser returns any user's profile. The policy table restricts it to
// teachers.
func (s *GRPCServer) LookupUser(ctx context.Context, req *api.LookupUserRequest) (*api.UserResponse, error) {

	if err := api.Validate(req); err != nil {
		return nil, toStatus(err)
	}

	user, err := s.users.GetProfile(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.UserResponse{User: toAPIUser(*user)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func toAPIUser(u models.PublicUser) api.User {
	return api.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAuthResponse(r *services.AuthResult) *api.AuthResponse {
	return &api.AuthResponse{AccessToken: r.AccessToken, User: toAPIUser(r.User)}
}
