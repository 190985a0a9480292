package session

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func storedKeys(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT key, value FROM metadata`)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k string
		var v []byte
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = string(v)
	}
	require.NoError(t, rows.Err())
	return out
}

func putRaw(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES(?, ?)`, key, []byte(value))
	require.NoError(t, err)
}

func TestStore_SetSessionPersists(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)
	require.NoError(t, s.Initialize(ctx))

	require.NoError(t, s.SetSession(ctx, "t", models.Identity{ID: 1, Username: "u"}))

	assert.Equal(t, "t", s.Credential())
	assert.Equal(t, &models.Identity{ID: 1, Username: "u"}, s.Identity())
	assert.True(t, s.IsAuthenticated())

	keys := storedKeys(t, db)
	assert.Equal(t, "t", keys[KeyToken])
	assert.JSONEq(t, `{"id":1,"username":"u"}`, keys[KeyUser])
}

func TestStore_ClearSessionRemovesKeys(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	putRaw(t, db, "unrelated", "keep")
	s := NewStore(db, nil)
	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.SetSession(ctx, "t", models.Identity{ID: 1, Username: "u"}))

	require.NoError(t, s.ClearSession(ctx))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Credential())
	assert.Nil(t, s.Identity())
	assert.Equal(t, map[string]string{"unrelated": "keep"}, storedKeys(t, db))

	// idempotent
	require.NoError(t, s.ClearSession(ctx))
	assert.False(t, s.IsAuthenticated())
}

func TestStore_SetSessionRejectsIncompletePair(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)

	require.ErrorIs(t, s.SetSession(ctx, "", models.Identity{ID: 1, Username: "u"}), ErrEmptyCredential)
	require.ErrorIs(t, s.SetSession(ctx, "t", models.Identity{ID: 1}), ErrInvalidIdentity)
	require.ErrorIs(t, s.SetSession(ctx, "t", models.Identity{Username: "u"}), ErrInvalidIdentity)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, storedKeys(t, db))
}

func TestStore_AuthenticatedTracksCredential(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)
	require.NoError(t, s.Initialize(ctx))

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		if r.IntN(2) == 0 {
			require.NoError(t, s.SetSession(ctx, fmt.Sprintf("tok-%d", i), models.Identity{ID: int64(i + 1), Username: "u"}))
		} else {
			require.NoError(t, s.ClearSession(ctx))
		}

		cred, id := s.Snapshot()
		require.Equal(t, cred != "", s.IsAuthenticated(), "step %d", i)
		require.Equal(t, cred != "", id != nil, "step %d", i)

		keys := storedKeys(t, db)
		_, hasToken := keys[KeyToken]
		_, hasUser := keys[KeyUser]
		require.Equal(t, hasToken, hasUser, "step %d", i)
		require.Equal(t, cred, keys[KeyToken], "step %d", i)
	}
}

func TestStore_InitializeRestores(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	first := NewStore(db, nil)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.SetSession(ctx, "persisted", models.Identity{ID: 42, Username: "dana"}))

	second := NewStore(db, nil)
	require.NoError(t, second.Initialize(ctx))
	assert.Equal(t, "persisted", second.Credential())
	assert.Equal(t, &models.Identity{ID: 42, Username: "dana"}, second.Identity())
}

func TestStore_InitializeResetsInconsistentState(t *testing.T) {
	tests := []struct {
		name string
		rows map[string]string
	}{
		{"token without user", map[string]string{KeyToken: "t"}},
		{"user without token", map[string]string{KeyUser: `{"id":1,"username":"u"}`}},
		{"malformed user", map[string]string{KeyToken: "t", KeyUser: `{"id":`}},
		{"user missing username", map[string]string{KeyToken: "t", KeyUser: `{"id":1}`}},
		{"user not an object", map[string]string{KeyToken: "t", KeyUser: `"u"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := setupDB(t)
			for k, v := range tt.rows {
				putRaw(t, db, k, v)
			}

			s := NewStore(db, nil)
			require.NoError(t, s.Initialize(ctx))

			assert.False(t, s.IsAuthenticated())
			assert.Nil(t, s.Identity())
			assert.Empty(t, storedKeys(t, db))
		})
	}
}

func TestStore_InitializeRunsOnce(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)
	require.NoError(t, s.Initialize(ctx))
	assert.False(t, s.IsAuthenticated())

	putRaw(t, db, KeyToken, "late")
	putRaw(t, db, KeyUser, `{"id":1,"username":"u"}`)

	require.NoError(t, s.Initialize(ctx))
	assert.False(t, s.IsAuthenticated())
}

func TestStore_ConcurrentReadersSeeWholePairs(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewStore(db, nil)
	require.NoError(t, s.Initialize(ctx))

	var wg sync.WaitGroup
	done := make(chan struct{})

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				cred, id := s.Snapshot()
				if cred == "" {
					assert.Nil(t, id)
					continue
				}
				if assert.NotNil(t, id) {
					assert.Equal(t, strings.TrimPrefix(cred, "tok-"), strings.TrimPrefix(id.Username, "user-"))
				}
			}
		}()
	}

	for i := 1; i <= 50; i++ {
		if i%5 == 0 {
			require.NoError(t, s.ClearSession(ctx))
			continue
		}
		require.NoError(t, s.SetSession(ctx, fmt.Sprintf("tok-%d", i), models.Identity{ID: int64(i), Username: fmt.Sprintf("user-%d", i)}))
	}
	close(done)
	wg.Wait()
}

func TestStore_Flags(t *testing.T) {
	s := NewStore(setupDB(t), nil)

	assert.False(t, s.Busy())
	s.SetBusy(true)
	assert.True(t, s.Busy())
	s.SetBusy(false)
	assert.False(t, s.Busy())

	assert.Empty(t, s.LastError())
	s.SetLastError("boom")
	assert.Equal(t, "boom", s.LastError())
	s.ClearError()
	assert.Empty(t, s.LastError())
}

func TestStore_IsTokenSource(t *testing.T) {
	var _ client.TokenSource = (*Store)(nil)
}
