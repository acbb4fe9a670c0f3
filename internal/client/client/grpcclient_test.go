package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeAPI struct {
	registerResp *api.AuthResponse
	loginResp    *api.AuthResponse
	userResp     *api.UserResponse
	pingResp     *api.PingResponse
	err          error

	gotLogin  *api.LoginRequest
	gotLookup *api.LookupUserRequest
}

func (f *fakeAPI) Register(_ context.Context, _ *api.RegisterRequest, _ ...grpc.CallOption) (*api.AuthResponse, error) {
	return f.registerResp, f.err
}
func (f *fakeAPI) Login(_ context.Context, in *api.LoginRequest, _ ...grpc.CallOption) (*api.AuthResponse, error) {
	f.gotLogin = in
	return f.loginResp, f.err
}
func (f *fakeAPI) GetProfile(_ context.Context, _ *api.GetProfileRequest, _ ...grpc.CallOption) (*api.UserResponse, error) {
	return f.userResp, f.err
}
func (f *fakeAPI) LookupUser(_ context.Context, in *api.LookupUserRequest, _ ...grpc.CallOption) (*api.UserResponse, error) {
	f.gotLookup = in
	return f.userResp, f.err
}
func (f *fakeAPI) Ping(_ context.Context, _ *api.PingRequest, _ ...grpc.CallOption) (*api.PingResponse, error) {
	return f.pingResp, f.err
}

func TestLogin_StoresToken(t *testing.T) {
	f := &fakeAPI{loginResp: &api.AuthResponse{AccessToken: "tok", User: api.User{ID: 7, Email: "a@x.io"}}}
	c := &GRPCClient{client: f}

	require.False(t, c.LoggedIn())
	u, err := c.Login(context.Background(), "a@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "a@x.io", f.gotLogin.Email)
	assert.Equal(t, "pw", f.gotLogin.Password)
	assert.True(t, c.LoggedIn())

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestRegister_StoresToken(t *testing.T) {
	f := &fakeAPI{registerResp: &api.AuthResponse{AccessToken: "tok", User: api.User{ID: 1, Role: "STUDENT"}}}
	c := &GRPCClient{client: f}

	u, err := c.Register(context.Background(), &api.RegisterRequest{Email: "a@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "STUDENT", u.Role)
	assert.Equal(t, "tok", c.token())
}

func TestLogin_ErrorKeepsLoggedOut(t *testing.T) {
	f := &fakeAPI{err: status.Error(codes.Unauthenticated, "invalid credentials")}
	c := &GRPCClient{client: f}

	_, err := c.Login(context.Background(), "a@x.io", "bad")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.False(t, c.LoggedIn())
}

func TestProfileCalls_RequireToken(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{}}

	_, err := c.GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.LookupUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLookupUser(t *testing.T) {
	f := &fakeAPI{userResp: &api.UserResponse{User: api.User{ID: 42}}}
	c := &GRPCClient{client: f, accessToken: "tok"}

	u, err := c.LookupUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, int64(42), f.gotLookup.ID)
}

func TestPing(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{pingResp: &api.PingResponse{Status: "OK"}}}
	assert.NoError(t, c.Ping(context.Background()))

	c = &GRPCClient{client: &fakeAPI{pingResp: &api.PingResponse{Status: "DEGRADED"}}}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = &GRPCClient{client: &fakeAPI{err: status.Error(codes.Unavailable, "down")}}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "unauthorized"), ErrUnauthorized},
		{"permission denied", status.Error(codes.PermissionDenied, "forbidden"), ErrForbidden},
		{"already exists", status.Error(codes.AlreadyExists, "email already registered"), ErrAlreadyExists},
		{"not found", status.Error(codes.NotFound, "not found"), ErrNotFound},
		{"invalid argument", status.Error(codes.InvalidArgument, "email: must be a valid email"), ErrInvalidInput},
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, c.mapError(nil))

	internal := status.Error(codes.Internal, "internal error")
	err := c.mapError(internal)
	assert.ErrorIs(t, err, internal)
	assert.Contains(t, err.Error(), "rpc error")
}

func TestAccessTokenInterceptor(t *testing.T) {
	c := &GRPCClient{}

	var got metadata.MD
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker))
	assert.Empty(t, got.Get("authorization"), "no header without a token")

	c.setToken("abc")
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer stale", "x-request-id", "r1")
	require.NoError(t, c.accessTokenInterceptor(ctx, "/m", nil, nil, nil, invoker))
	assert.Equal(t, []string{"Bearer abc"}, got.Get("authorization"))
	assert.Equal(t, []string{"r1"}, got.Get("x-request-id"))
}

type stubServer struct {
	gotAuth []string
}

func (s *stubServer) Register(_ context.Context, in *api.RegisterRequest) (*api.AuthResponse, error) {
	if in.Email == "taken@x.io" {
		return nil, status.Error(codes.AlreadyExists, "email already registered")
	}
	return &api.AuthResponse{AccessToken: "reg-token", User: api.User{ID: 1, Email: in.Email, Role: "STUDENT"}}, nil
}
func (s *stubServer) Login(context.Context, *api.LoginRequest) (*api.AuthResponse, error) {
	return &api.AuthResponse{AccessToken: "login-token", User: api.User{ID: 1}}, nil
}
func (s *stubServer) GetProfile(ctx context.Context, _ *api.GetProfileRequest) (*api.UserResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	s.gotAuth = md.Get("authorization")
	return &api.UserResponse{User: api.User{ID: 1, Email: "me@x.io"}}, nil
}
func (s *stubServer) LookupUser(context.Context, *api.LookupUserRequest) (*api.UserResponse, error) {
	return nil, status.Error(codes.PermissionDenied, "forbidden")
}
func (s *stubServer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func TestGRPCClient_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	stub := &stubServer{}
	srv := grpc.NewServer()
	api.RegisterAuthServiceServer(srv, stub)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := newGRPCClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, err = c.Register(ctx, &api.RegisterRequest{Email: "taken@x.io", Password: "password1"})
	require.True(t, errors.Is(err, ErrAlreadyExists), "got %v", err)
	assert.False(t, c.LoggedIn())

	u, err := c.Register(ctx, &api.RegisterRequest{Email: "new@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", u.Email)

	_, err = c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer reg-token"}, stub.gotAuth)

	_, err = c.Login(ctx, "new@x.io", "password1")
	require.NoError(t, err)
	_, err = c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer login-token"}, stub.gotAuth)

	_, err = c.LookupUser(ctx, 2)
	assert.ErrorIs(t, err, ErrForbidden)
}
