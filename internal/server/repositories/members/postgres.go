package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	query :=
		`INSERT INTO members (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, member.Username, member.PasswordHash).
		Scan(&member.ID, &member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return member, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Member, error) {
	query :=
		`SELECT id, username, password_hash, created_at FROM members
		 WHERE username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query :=
		`SELECT id, username, password_hash, created_at FROM members
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateUsername(ctx context.Context, id int64, username string) (*models.Member, error) {
	query :=
		`UPDATE members SET username = $1
		 WHERE id = $2
		 RETURNING id, username, password_hash, created_at
		 `

	member, err := r.scanOne(r.db.QueryRowContext(ctx, query, username, id))
	if err != nil && isUniqueViolation(err) {
		return nil, common.ErrorAlreadyExists
	}
	return member, err
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(&member.ID, &member.Username, &member.PasswordHash, &member.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return member, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
