// Package httpapi exposes the chat REST API over chi: auth, profile and the
// message feed, all JSON, authenticated with "Authorization: Token <key>".
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/corpchat/internal/logging"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/services"
	"github.com/go-playground/validator/v10"
)

// MemberService is the member-facing business logic the handlers need.
type MemberService interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.Member, error)
	UpdateProfile(ctx context.Context, member *models.Member, username string) (*models.Member, error)
}

// MessageService is the feed logic the handlers need.
type MessageService interface {
	List(ctx context.Context, limit, offset int) (*services.MessagePage, error)
	Post(ctx context.Context, author *models.Member, content string) (*models.Message, error)
}

// Handler serves the API endpoints.
type Handler struct {
	members  MemberService
	messages MessageService
	validate *validator.Validate
	logger   logging.Logger
}

func NewHandler(members MemberService, messages MessageService, logger logging.Logger) *Handler {
	return &Handler{
		members:  members,
		messages: messages,
		validate: newValidator(),
		logger:   logger,
	}
}
