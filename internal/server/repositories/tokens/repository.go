// Package tokens declares the server-side repository contract for issued
// credentials and its PostgreSQL implementation. A credential is honoured only
// while its row exists, so deleting a row revokes it.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/corpchat/internal/server/models"
)

// Repository defines operations for issuing, looking up and revoking tokens.
type Repository interface {
	// Create stores key for memberID.
	Create(ctx context.Context, memberID int64, key string) error

	// Find returns the token row for key, or common.ErrorNotFound.
	Find(ctx context.Context, key string) (*models.Token, error)

	// Delete removes one token. Deleting a missing token is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByMember revokes every token of memberID.
	DeleteByMember(ctx context.Context, memberID int64) error
}
