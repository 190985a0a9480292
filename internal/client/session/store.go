// Package session owns the signed-in state of the client: the credential, the
// user identity it belongs to, and the transient busy/error flags views render.
//
// The credential and identity are written through to the local metadata table
// on every change, so a restarted client resumes the same session.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

// Durable storage keys.
const (
	KeyToken = "auth_token"
	KeyUser  = "auth_user"
)

var (
	ErrEmptyCredential = errors.New("credential must not be empty")
	ErrInvalidIdentity = errors.New("identity must carry id and username")
)

// Store is the single writer of the session. Reads never block on network I/O
// and never fail. Mutations hold the write lock across the storage write, so
// readers see either the previous pair or the new one.
type Store struct {
	db     *sql.DB
	logger logging.Logger

	initOnce sync.Once
	initErr  error

	mu         sync.RWMutex
	credential string
	identity   *models.Identity

	flagsMu sync.RWMutex
	busy    bool
	lastErr string
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Store{db: db, logger: logger.With("module", "session")}
}

// Initialize loads the persisted session. It runs once per Store; later calls
// return the first call's result. A malformed identity, or one half of the
// pair without the other, resets both halves and removes them from storage.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.load(ctx)
	})
	return s.initErr
}

func (s *Store) load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	rawUser, err := repo.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if len(token) == 0 && len(rawUser) == 0 {
		return nil
	}

	var identity models.Identity
	if len(token) == 0 || len(rawUser) == 0 || json.Unmarshal(rawUser, &identity) != nil || !identity.Valid() {
		s.logger.Warn(ctx, "discarding inconsistent stored session",
			"has_token", len(token) > 0, "has_user", len(rawUser) > 0)
		if err := repo.Delete(ctx, KeyToken, KeyUser); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		return nil
	}

	s.credential = string(token)
	s.identity = &identity
	s.logger.Debug(ctx, "session restored", "user", identity.Username)
	return nil
}

// SetSession replaces the credential and identity together. Storage is
// updated first, in one transaction; memory changes only if that commits.
func (s *Store) SetSession(ctx context.Context, credential string, identity models.Identity) error {
	if credential == "" {
		return ErrEmptyCredential
	}
	if !identity.Valid() {
		return ErrInvalidIdentity
	}

	rawUser, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(credential)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.credential = credential
	s.identity = &identity
	return nil
}

// ClearSession drops the credential and identity from memory and storage.
// Clearing an empty session is a no-op. Memory is cleared even if storage
// fails, so the client never looks signed in after a logout.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = ""
	s.identity = nil

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, KeyToken, KeyUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Credential returns the current credential, or "" when signed out.
// Store satisfies client.TokenSource through it.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Identity returns a copy of the signed-in identity, or nil.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Store) IsAuthenticated() bool {
	return s.Credential() != ""
}

// Snapshot returns the credential and identity read under one lock.
func (s *Store) Snapshot() (string, *models.Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return s.credential, nil
	}
	id := *s.identity
	return s.credential, &id
}

func (s *Store) Busy() bool {
	s.flagsMu.RLock()
	defer s.flagsMu.RUnlock()
	return s.busy
}

func (s *Store) SetBusy(busy bool) {
	s.flagsMu.Lock()
	s.busy = busy
	s.flagsMu.Unlock()
}

// LastError is the message of the most recent failed operation, or "".
func (s *Store) LastError() string {
	s.flagsMu.RLock()
	defer s.flagsMu.RUnlock()
	return s.lastErr
}

func (s *Store) SetLastError(msg string) {
	s.flagsMu.Lock()
	s.lastErr = msg
	s.flagsMu.Unlock()
}

func (s *Store) ClearError() {
	s.SetLastError("")
}
