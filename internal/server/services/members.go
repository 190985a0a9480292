// Package services contains server-side business logic. This file implements
// MemberService: registration, login, credential revocation and profile edits.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/server/auth"
	"github.com/dmitrijs2005/corpchat/internal/server/config"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = errors.New("password too long")

// AuthResult is a member together with a freshly issued credential.
type AuthResult struct {
	Member *models.Member
	Token  string
}

// MemberService handles registration, login, logout, credential checks and
// profile updates.
type MemberService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	hashCost              int
}

// NewMemberService constructs a MemberService using repositories and server config.
func NewMemberService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MemberService {
	return &MemberService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		hashCost:              bcrypt.DefaultCost,
	}
}

// Register creates a member and issues its first credential in one transaction.
// A taken username yields common.ErrorAlreadyExists.
func (s *MemberService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, common.ErrorInternal
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		member, err := s.repomanager.Members(tx).Create(ctx, &models.Member{Username: username, PasswordHash: hash})
		if err != nil {
			return err
		}
		token, err := s.issueToken(ctx, tx, member.ID)
		if err != nil {
			return err
		}
		result = &AuthResult{Member: member, Token: token}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error registering member: %w", err)
	}
	return result, nil
}

// Login verifies the password and replaces every earlier credential of the
// member with a new one. Unknown usernames and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *MemberService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	member, err := s.repomanager.Members(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(member.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Tokens(tx).DeleteByMember(ctx, member.ID); err != nil {
			return err
		}
		var err error
		token, err = s.issueToken(ctx, tx, member.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{Member: member, Token: token}, nil
}

// Logout revokes the presented credential.
func (s *MemberService) Logout(ctx context.Context, token string) error {
	if err := s.repomanager.Tokens(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// Authenticate resolves a credential to its member. The signature, the expiry
// and the presence of the token row are all checked; a failure of any of them
// yields common.ErrInvalidToken (or common.ErrTokenExpired).
func (s *MemberService) Authenticate(ctx context.Context, token string) (*models.Member, error) {
	memberID, err := auth.GetMemberIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	stored, err := s.repomanager.Tokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if stored.MemberID != memberID {
		return nil, common.ErrInvalidToken
	}

	member, err := s.repomanager.Members(s.db).GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	return member, nil
}

// UpdateProfile renames the member. Keeping the current name is a no-op.
func (s *MemberService) UpdateProfile(ctx context.Context, member *models.Member, username string) (*models.Member, error) {
	if username == member.Username {
		return member, nil
	}
	updated, err := s.repomanager.Members(s.db).UpdateUsername(ctx, member.ID, username)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating member: %w", err)
	}
	return updated, nil
}

func (s *MemberService) issueToken(ctx context.Context, tx dbx.DBTX, memberID int64) (string, error) {
	token, err := auth.GenerateToken(memberID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := s.repomanager.Tokens(tx).Create(ctx, memberID, token); err != nil {
		return "", err
	}
	return token, nil
}
