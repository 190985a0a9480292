package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/corpchat/internal/client/guard"
)

var errNotInProfile = errors.New("not in profile view")

// RefreshProfile reloads the identity from the server and prints it.
func (a *App) RefreshProfile(ctx context.Context) error {
	id, err := a.authService.RefreshProfile(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	if id == nil {
		return nil
	}
	a.printf("Profile: #%d %s\n", id.ID, id.Username)
	return nil
}

// Whoami prints the identity held locally without asking the server.
func (a *App) Whoami(ctx context.Context) error {
	id := a.store.Identity()
	if id == nil {
		a.println("Not logged in")
		return nil
	}
	a.printf("#%d %s\n", id.ID, id.Username)
	return nil
}

// Rename changes the username from the profile view.
func (a *App) Rename(ctx context.Context, username string) error {
	if a.view != guard.Profile {
		a.println("Open your profile first: go profile")
		return errNotInProfile
	}

	if username == "" {
		var err error
		username, err = getSimpleText(a.reader, "Enter new username", a.out)
		if err != nil {
			return err
		}
	}

	id, err := a.authService.UpdateProfile(ctx, username)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.printf("Username changed to %s\n", id.Username)
	return nil
}
