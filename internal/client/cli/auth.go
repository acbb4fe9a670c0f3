package cli

import (
	"context"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/api"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password, optional full name and optional
// role, then creates the account. The server validates the input; a
// successful registration leaves the user logged in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	role, err := getSimpleText(a.reader, "Enter role, STUDENT or TEACHER (optional)", os.Stdout)
	if err != nil {
		return err
	}

	req := &api.RegisterRequest{Email: email, Password: password, Role: strings.ToUpper(role)}
	if fullName != "" {
		req.FullName = &fullName
	}

	u, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}

	a.email, a.role = u.Email, u.Role
	printlnFn("Registered and logged in.")
	printUser(u)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.email, a.role = u.Email, u.Role
	printlnFn("Login successful.")
	return nil
}

// Logout drops the access token held by the client.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.email, a.role = "", ""
	printlnFn("Logged out.")
	return nil
}
