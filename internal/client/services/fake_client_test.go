package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/corpchat/internal/client/client"
	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/client/session"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db, nil)
	require.NoError(t, store.Initialize(context.Background()))
	return store, db
}

func countKeys(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

// ---- fake client ----

// fakeClient implements client.Client with canned results and call capture.
type fakeClient struct {
	LoginRet *models.AuthResponse
	LoginErr error

	RegisterRet *models.AuthResponse
	RegisterErr error

	LogoutErr error

	ListRet *models.MessagePage
	ListErr error

	SendRet *models.Message
	SendErr error

	ProfileRet *models.Identity
	ProfileErr error

	UpdateRet *models.Identity
	UpdateErr error

	Calls        []string
	LastUsername string
	LastPassword string
	LastLimit    int
	LastOffset   int
	LastContent  string
}

func (f *fakeClient) Register(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	f.Calls = append(f.Calls, "register")
	f.LastUsername, f.LastPassword = username, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	f.Calls = append(f.Calls, "login")
	f.LastUsername, f.LastPassword = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) (string, error) {
	f.Calls = append(f.Calls, "logout")
	return "ok", f.LogoutErr
}

func (f *fakeClient) ListMessages(ctx context.Context, limit, offset int) (*models.MessagePage, error) {
	f.Calls = append(f.Calls, "list")
	f.LastLimit, f.LastOffset = limit, offset
	return f.ListRet, f.ListErr
}

func (f *fakeClient) SendMessage(ctx context.Context, content string) (*models.Message, error) {
	f.Calls = append(f.Calls, "send")
	f.LastContent = content
	return f.SendRet, f.SendErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.Identity, error) {
	f.Calls = append(f.Calls, "profile")
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, username string) (*models.Identity, error) {
	f.Calls = append(f.Calls, "update")
	f.LastUsername = username
	return f.UpdateRet, f.UpdateErr
}
