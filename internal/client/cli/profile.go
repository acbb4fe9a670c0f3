package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/api"
)

var errLookupUsage = errors.New("usage: lookup <id>")

// Me prints the profile of the logged-in user.
func (a *App) Me(ctx context.Context) error {
	u, err := a.client.GetProfile(ctx)
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

// Lookup prints the profile of the user whose id is args[0].
func (a *App) Lookup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errLookupUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errLookupUsage
	}

	u, err := a.client.LookupUser(ctx, id)
	if err != nil {
		return err
	}
	printUser(u)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	printlnFn("OK")
	return nil
}

func printUser(u *api.User) {
	printlnFn(fmt.Sprintf("ID:         %d", u.ID))
	printlnFn(fmt.Sprintf("Email:      %s", u.Email))
	if u.FullName != nil {
		printlnFn(fmt.Sprintf("Full name:  %s", *u.FullName))
	}
	printlnFn(fmt.Sprintf("Role:       %s", u.Role))
	printlnFn(fmt.Sprintf("Created at: %s", u.CreatedAt.Format(time.RFC3339)))
}
