package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/corpchat/internal/client/guard"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadyLoggedIn = errors.New("already logged in")

func (a *App) promptCredentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return username, string(password), nil
}

// Login prompts for credentials and signs in. On success the chat opens.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s\n", a.username())
		return errAlreadyLoggedIn
	}

	username, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	resp, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.reportError(err)
		return err
	}

	a.printf("Logged in as %s\n", resp.Username)
	return a.navigate(ctx, guard.Chat)
}

// Register creates an account. The new session is stored right away, so the
// user lands in the chat without logging in again.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s\n", a.username())
		return errAlreadyLoggedIn
	}

	username, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	resp, err := a.authService.Register(ctx, username, password)
	if err != nil {
		a.reportError(err)
		return err
	}

	a.printf("Registration successful, welcome %s\n", resp.Username)
	return a.navigate(ctx, guard.Chat)
}

// Logout ends the session locally even if the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
	}
	a.println("Logged out")
	return a.navigate(ctx, guard.Home)
}
