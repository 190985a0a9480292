// Package members declares the server-side repository contract for chat
// members and its PostgreSQL implementation.
package members

import (
	"context"

	"github.com/dmitrijs2005/corpchat/internal/server/models"
)

// Repository defines persistence operations for members.
type Repository interface {
	// Create inserts a member and fills its ID and CreatedAt.
	// A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, member *models.Member) (*models.Member, error)

	// GetByUsername returns common.ErrorNotFound when no member has the name.
	GetByUsername(ctx context.Context, username string) (*models.Member, error)

	GetByID(ctx context.Context, id int64) (*models.Member, error)

	// UpdateUsername renames a member. A taken username yields
	// common.ErrorAlreadyExists, a missing member common.ErrorNotFound.
	UpdateUsername(ctx context.Context, id int64, username string) (*models.Member, error)
}
