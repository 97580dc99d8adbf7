package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/monacovault/vaultctl/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On failure the session
// state is left unchanged and the error is shown; no automatic retry.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.sess.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", res.User.Email, res.User.Role)
	return nil
}

// Signup prompts for account details and registers. An initial license
// record returned by the backend is displayed right away.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.sess.Signup(ctx, email, string(password), userName)
	if err != nil {
		fmt.Fprintf(a.out, "Signup failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s\n", res.User.Email)
	if res.License != nil {
		fmt.Fprintf(a.out, "License valid until %s (%d days remaining)\n",
			res.License.ExpiresAt.Format(time.DateOnly), res.License.DaysRemaining(time.Now()))
	}
	return nil
}

// Logout invalidates the session server-side (best effort) and clears all
// local state, including the query cache.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sess.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return err
	}
	a.cache.InvalidateAll()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami prints the current user.
func (a *App) Whoami(ctx context.Context) error {
	user := a.sess.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), role %s, tenant %s\n", user.Email, user.UserName, user.Role, user.ActiveTenantID)
	return nil
}
