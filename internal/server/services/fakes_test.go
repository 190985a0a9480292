package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/dbx"
	"github.com/dmitrijs2005/corpchat/internal/server/config"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/members"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/corpchat/internal/server/repositories/tokens"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newMemberService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *MemberService {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", TokenValidityDuration: time.Hour}
	s := NewMemberService(db, rm, cfg)
	s.hashCost = bcrypt.MinCost
	return s
}

type fakeMembersRepo struct {
	byName map[string]*models.Member
	byID   map[int64]*models.Member
	nextID int64

	createErr error
	getErr    error
	updateErr error
}

func newFakeMembersRepo() *fakeMembersRepo {
	return &fakeMembersRepo{byName: map[string]*models.Member{}, byID: map[int64]*models.Member{}, nextID: 1}
}

func (f *fakeMembersRepo) add(t *testing.T, name, password string) *models.Member {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	m, err := f.Create(context.Background(), &models.Member{Username: name, PasswordHash: hash})
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	return m
}

func (f *fakeMembersRepo) Create(_ context.Context, m *models.Member) (*models.Member, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[m.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	f.nextID++
	f.byName[m.Username] = m
	f.byID[m.ID] = m
	return m, nil
}

func (f *fakeMembersRepo) GetByUsername(_ context.Context, name string) (*models.Member, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMembersRepo) GetByID(_ context.Context, id int64) (*models.Member, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMembersRepo) UpdateUsername(_ context.Context, id int64, name string) (*models.Member, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byName[name]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.byName, m.Username)
	renamed := *m
	renamed.Username = name
	f.byName[name] = &renamed
	f.byID[id] = &renamed
	return &renamed, nil
}

type fakeTokensRepo struct {
	rows map[string]int64

	createErr error
	findErr   error
	deleteErr error
}

func newFakeTokensRepo() *fakeTokensRepo {
	return &fakeTokensRepo{rows: map[string]int64{}}
}

func (f *fakeTokensRepo) Create(_ context.Context, memberID int64, key string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[key] = memberID
	return nil
}

func (f *fakeTokensRepo) Find(_ context.Context, key string) (*models.Token, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	id, ok := f.rows[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Token{Key: key, MemberID: id}, nil
}

func (f *fakeTokensRepo) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeTokensRepo) DeleteByMember(_ context.Context, memberID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k, id := range f.rows {
		if id == memberID {
			delete(f.rows, k)
		}
	}
	return nil
}

func (f *fakeTokensRepo) countFor(memberID int64) int {
	n := 0
	for _, id := range f.rows {
		if id == memberID {
			n++
		}
	}
	return n
}

type fakeMessagesRepo struct {
	stored []models.Message

	countErr  error
	listErr   error
	createErr error

	listCalls int
	gotLimit  int
	gotOffset int
}

func (f *fakeMessagesRepo) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = int64(len(f.stored) + 1)
	m.CreatedAt = time.Now()
	f.stored = append(f.stored, *m)
	return m, nil
}

func (f *fakeMessagesRepo) List(_ context.Context, limit, offset int) ([]models.Message, error) {
	f.listCalls++
	f.gotLimit, f.gotOffset = limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Message{}
	for i := len(f.stored) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.stored[i])
	}
	return out, nil
}

func (f *fakeMessagesRepo) Count(context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.stored), nil
}

type fakeRepoManager struct {
	m   *fakeMembersRepo
	t   *fakeTokensRepo
	msg *fakeMessagesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{m: newFakeMembersRepo(), t: newFakeTokensRepo(), msg: &fakeMessagesRepo{}}
}

func (r *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (r *fakeRepoManager) Members(dbx.DBTX) members.Repository         { return r.m }
func (r *fakeRepoManager) Tokens(dbx.DBTX) tokens.Repository           { return r.t }
func (r *fakeRepoManager) Messages(dbx.DBTX) messages.Repository       { return r.msg }
