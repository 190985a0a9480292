package client

import (
	"context"

	"github.com/dmitrijs2005/corpchat/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) (string, error)
	ListMessages(ctx context.Context, limit, offset int) (*models.MessagePage, error)
	SendMessage(ctx context.Context, content string) (*models.Message, error)
	GetProfile(ctx context.Context) (*models.Identity, error)
	UpdateProfile(ctx context.Context, username string) (*models.Identity, error)
}

// TokenSource yields the credential to attach to the next request. An empty
// string means "no credential".
type TokenSource interface {
	Credential() string
}
