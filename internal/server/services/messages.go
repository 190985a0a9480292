package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/repomanager"
)

// MessagePage is one window of the feed plus the total number of messages.
type MessagePage struct {
	Count    int
	Messages []models.Message
}

// MessageService reads and appends to the shared chat feed.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager) *MessageService {
	return &MessageService{db: db, repomanager: m}
}

// List returns messages newest first. Callers bound limit and offset.
func (s *MessageService) List(ctx context.Context, limit, offset int) (*MessagePage, error) {
	repo := s.repomanager.Messages(s.db)

	count, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting messages: %w", err)
	}

	page := &MessagePage{Count: count, Messages: []models.Message{}}
	if offset >= count {
		return page, nil
	}

	page.Messages, err = repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return page, nil
}

// Post appends a message authored by author.
func (s *MessageService) Post(ctx context.Context, author *models.Member, content string) (*models.Message, error) {
	msg := &models.Message{AuthorID: author.ID, AuthorUsername: author.Username, Content: content}
	created, err := s.repomanager.Messages(s.db).Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("error posting message: %w", err)
	}
	return created, nil
}
