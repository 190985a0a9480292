package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/client/session"
	"github.com/dmitrijs2005/corpchat/internal/client/validation"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

// FeedPageSize is how many of the latest messages the chat view shows.
const FeedPageSize = 100

type ChatService interface {
	Fetch(ctx context.Context) (*models.MessagePage, error)
	Send(ctx context.Context, content string) (*models.Message, error)
}

type chatService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewChatService(c client.Client, store *session.Store, logger logging.Logger) ChatService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &chatService{client: c, store: store, logger: logger.With("module", "chat")}
}

// Fetch returns the latest page of messages, newest first.
func (s *chatService) Fetch(ctx context.Context) (*models.MessagePage, error) {
	page, err := s.client.ListMessages(ctx, FeedPageSize, 0)
	if err != nil {
		return nil, s.mapError(ctx, err, MsgFetchFailed)
	}
	return page, nil
}

// Send posts content after trimming surrounding whitespace.
func (s *chatService) Send(ctx context.Context, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if verr := (validation.MessageForm{Content: content}).Validate(); verr != nil {
		return nil, &FormError{Fields: validation.Fields(verr), Err: verr}
	}

	msg, err := s.client.SendMessage(ctx, content)
	if err != nil {
		return nil, s.mapError(ctx, err, MsgSendFailed)
	}
	s.logger.Debug(ctx, "message sent", "id", msg.ID)
	return msg, nil
}

func (s *chatService) mapError(ctx context.Context, err error, fallback string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "credential rejected by server, clearing session")
		if clearErr := s.store.ClearSession(ctx); clearErr != nil {
			s.logger.Error(ctx, "failed to clear session", "error", clearErr)
		}
		return &FormError{General: MsgSessionExpired, Err: err}
	}

	s.logger.Warn(ctx, fallback, "error", err)
	fe := toFormError(err, fallback, "content")
	if fe.Fields != nil {
		return fe
	}
	// The feed shows fixed messages rather than server details.
	if !errors.Is(err, client.ErrUnavailable) {
		fe.General = fallback
	}
	return fe
}
