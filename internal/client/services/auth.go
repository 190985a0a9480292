// Package services contains the client's application services. Each operation
// performs one network exchange and updates the session store with the result.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/client/session"
	"github.com/dmitrijs2005/corpchat/internal/client/validation"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

// AuthService defines the session lifecycle operations.
//
// Contract:
//   - Login/Register: on success the store holds the returned token and
//     identity; on failure the store is untouched and a *FormError is returned.
//   - Logout: the server call is best-effort; the local session is always cleared.
//   - RefreshProfile: no-op without a credential; a 401 clears the session.
//   - UpdateProfile: renames the signed-in user.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	RefreshProfile(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, username string) (*models.Identity, error)
}

type authService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &authService{client: c, store: store, logger: logger.With("module", "auth")}
}

// begin marks the store busy and clears the previous error. The returned
// func records err (if any) and drops the busy flag.
func (a *authService) begin() func(err error) {
	a.store.SetBusy(true)
	a.store.ClearError()
	return func(err error) {
		if err != nil {
			a.store.SetLastError(err.Error())
		}
		a.store.SetBusy(false)
	}
}

func (a *authService) Login(ctx context.Context, username, password string) (resp *models.AuthResponse, err error) {
	done := a.begin()
	defer func() { done(err) }()

	if verr := (validation.LoginForm{Username: username, Password: password}).Validate(); verr != nil {
		return nil, &FormError{Fields: validation.Fields(verr), Err: verr}
	}

	resp, err = a.client.Login(ctx, username, password)
	if err != nil {
		a.logger.Info(ctx, "login failed", "user", username, "error", err)
		return nil, toFormError(err, MsgLoginFailed, "username", "password")
	}

	if err := a.store.SetSession(ctx, resp.Token, resp.Identity()); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "logged in", "user", resp.Username)
	return resp, nil
}

func (a *authService) Register(ctx context.Context, username, password string) (resp *models.AuthResponse, err error) {
	done := a.begin()
	defer func() { done(err) }()

	if verr := (validation.RegisterForm{Username: username, Password: password}).Validate(); verr != nil {
		return nil, &FormError{Fields: validation.Fields(verr), Err: verr}
	}

	resp, err = a.client.Register(ctx, username, password)
	if err != nil {
		a.logger.Info(ctx, "registration failed", "user", username, "error", err)
		return nil, toFormError(err, MsgRegisterFailed, "username", "password")
	}

	if err := a.store.SetSession(ctx, resp.Token, resp.Identity()); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "registered", "user", resp.Username)
	return resp, nil
}

func (a *authService) Logout(ctx context.Context) error {
	done := a.begin()
	defer done(nil)

	if a.store.IsAuthenticated() {
		if _, err := a.client.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "server logout failed", "error", err)
		}
	}

	return a.store.ClearSession(ctx)
}

func (a *authService) RefreshProfile(ctx context.Context) (id *models.Identity, err error) {
	if !a.store.IsAuthenticated() {
		return nil, nil
	}

	done := a.begin()
	defer func() { done(err) }()

	id, err = a.client.GetProfile(ctx)
	if err != nil {
		return nil, a.handleUnauthorized(ctx, err)
	}

	if err := a.storeIdentity(ctx, *id); err != nil {
		return nil, err
	}
	return id, nil
}

func (a *authService) UpdateProfile(ctx context.Context, username string) (id *models.Identity, err error) {
	done := a.begin()
	defer func() { done(err) }()

	if verr := (validation.ProfileForm{Username: username}).Validate(); verr != nil {
		return nil, &FormError{Fields: validation.Fields(verr), Err: verr}
	}

	id, err = a.client.UpdateProfile(ctx, username)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, a.handleUnauthorized(ctx, err)
		}
		return nil, toFormError(err, MsgProfileFailed, "username")
	}

	if err := a.storeIdentity(ctx, *id); err != nil {
		return nil, err
	}
	return id, nil
}

// storeIdentity pairs id with the credential held right now. If the session
// ended while the request was in flight the result is dropped.
func (a *authService) storeIdentity(ctx context.Context, id models.Identity) error {
	credential := a.store.Credential()
	if credential == "" {
		a.logger.Debug(ctx, "session ended during request, dropping profile")
		return nil
	}
	return a.store.SetSession(ctx, credential, id)
}

// handleUnauthorized clears the session when err is a 401 and returns err
// unchanged for the caller.
func (a *authService) handleUnauthorized(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	a.logger.Info(ctx, "credential rejected by server, clearing session")
	if clearErr := a.store.ClearSession(ctx); clearErr != nil {
		a.logger.Error(ctx, "failed to clear session", "error", clearErr)
	}
	return &FormError{General: MsgSessionExpired, Err: err}
}
