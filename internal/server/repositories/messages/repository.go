// Package messages declares the repository contract for the shared chat feed
// and its PostgreSQL implementation.
package messages

import (
	"context"

	"github.com/dmitrijs2005/corpchat/internal/server/models"
)

type Repository interface {
	// Create inserts a message and fills its ID and CreatedAt.
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)

	// List returns a page of messages, newest first, with author names resolved.
	List(ctx context.Context, limit, offset int) ([]models.Message, error)

	// Count returns the total number of messages.
	Count(ctx context.Context) (int, error)
}
