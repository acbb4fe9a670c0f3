package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs answers text prompts from answers in order and returns password
// for the password prompt.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeClient struct {
	token string

	regReq    *api.RegisterRequest
	loginArgs [2]string
	lookupID  int64

	user *api.User
	err  error
}

func (f *fakeClient) Register(_ context.Context, req *api.RegisterRequest) (*api.User, error) {
	f.regReq = req
	if f.err != nil {
		return nil, f.err
	}
	f.token = "t"
	return f.user, nil
}
func (f *fakeClient) Login(_ context.Context, email, password string) (*api.User, error) {
	f.loginArgs = [2]string{email, password}
	if f.err != nil {
		return nil, f.err
	}
	f.token = "t"
	return f.user, nil
}
func (f *fakeClient) GetProfile(context.Context) (*api.User, error) { return f.user, f.err }
func (f *fakeClient) LookupUser(_ context.Context, id int64) (*api.User, error) {
	f.lookupID = id
	return f.user, f.err
}
func (f *fakeClient) Ping(context.Context) error { return f.err }
func (f *fakeClient) LoggedIn() bool             { return f.token != "" }
func (f *fakeClient) Logout()                    { f.token = "" }
func (f *fakeClient) Close() error               { return nil }

var _ client.Client = (*fakeClient)(nil)

func testUser() *api.User {
	return &api.User{ID: 3, Email: "alice@example.org", Role: "TEACHER", CreatedAt: time.Unix(0, 0).UTC()}
}

func TestRegister_Success(t *testing.T) {
	out := captureOutput(t)
	f := &fakeClient{user: testUser()}
	a := &App{client: f}

	stubInputs(t, "password1", "alice@example.org", "Alice A", "teacher")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice@example.org", f.regReq.Email)
	assert.Equal(t, "password1", f.regReq.Password)
	require.NotNil(t, f.regReq.FullName)
	assert.Equal(t, "Alice A", *f.regReq.FullName)
	assert.Equal(t, "TEACHER", f.regReq.Role)

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(alice@example.org TEACHER)", a.getStatus())
	assert.Contains(t, strings.Join(*out, "\n"), "ID:         3")
}

func TestRegister_OptionalFieldsOmitted(t *testing.T) {
	captureOutput(t)
	f := &fakeClient{user: testUser()}
	a := &App{client: f}

	stubInputs(t, "password1", "bob@example.org", "", "")

	require.NoError(t, a.Register(context.Background()))
	assert.Nil(t, f.regReq.FullName)
	assert.Empty(t, f.regReq.Role)
}

func TestRegister_ErrorPropagates(t *testing.T) {
	captureOutput(t)
	f := &fakeClient{err: client.ErrAlreadyExists}
	a := &App{client: f}

	stubInputs(t, "password1", "alice@example.org", "", "")

	assert.ErrorIs(t, a.Register(context.Background()), client.ErrAlreadyExists)
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.getStatus())
}

func TestLogin(t *testing.T) {
	captureOutput(t)
	f := &fakeClient{user: testUser()}
	a := &App{client: f}

	stubInputs(t, "secret-pw", "alice@example.org")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, [2]string{"alice@example.org", "secret-pw"}, f.loginArgs)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "alice@example.org", a.email)
}

func TestLogin_InputError(t *testing.T) {
	f := &fakeClient{}
	a := &App{client: f}

	stubInputs(t, "pw")

	assert.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.Empty(t, f.loginArgs[0])
}

func TestLogout(t *testing.T) {
	captureOutput(t)
	f := &fakeClient{token: "t"}
	a := &App{client: f, email: "alice@example.org", role: "STUDENT"}

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.email)
	assert.Empty(t, a.getStatus())
}

func TestLookup(t *testing.T) {
	captureOutput(t)
	f := &fakeClient{token: "t", user: testUser()}
	a := &App{client: f}

	require.NoError(t, a.Lookup(context.Background(), []string{"3"}))
	assert.Equal(t, int64(3), f.lookupID)

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"1", "2"}} {
		assert.ErrorIs(t, a.Lookup(context.Background(), args), errLookupUsage, "args %v", args)
	}

	f.err = client.ErrForbidden
	assert.ErrorIs(t, a.Lookup(context.Background(), []string{"3"}), client.ErrForbidden)
}

func TestMeAndPing(t *testing.T) {
	out := captureOutput(t)
	f := &fakeClient{token: "t", user: testUser()}
	a := &App{client: f}

	require.NoError(t, a.Me(context.Background()))
	require.NoError(t, a.Ping(context.Background()))
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Email:      alice@example.org")
	assert.Contains(t, joined, "OK")

	f.err = errors.New("boom")
	assert.Error(t, a.Me(context.Background()))
	assert.Error(t, a.Ping(context.Background()))
}
