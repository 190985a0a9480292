package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, memberID int64, key string) error {
	query := `
		INSERT INTO tokens (key, member_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, key, memberID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, key string) (*models.Token, error) {
	query := `
		SELECT key, member_id, created_at
		FROM tokens
		WHERE key = $1
	`
	token := &models.Token{}
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&token.Key, &token.MemberID, &token.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM tokens
		WHERE key = $1
	`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByMember(ctx context.Context, memberID int64) error {
	query := `
		DELETE FROM tokens
		WHERE member_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, memberID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
