package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/services"
)

type fakeMembers struct {
	mu        sync.Mutex
	byName    map[string]*models.Member
	passwords map[string]string
	tokens    map[string]int64
	nextID    int64
	seq       int

	err error
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{
		byName:    map[string]*models.Member{},
		passwords: map[string]string{},
		tokens:    map[string]int64{},
		nextID:    1,
	}
}

func (f *fakeMembers) issue(id int64) string {
	f.seq++
	key := fmt.Sprintf("tok-%d-%d", id, f.seq)
	f.tokens[key] = id
	return key
}

func (f *fakeMembers) byID(id int64) *models.Member {
	for _, m := range f.byName {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (f *fakeMembers) Register(_ context.Context, username, password string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byName[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	m := &models.Member{ID: f.nextID, Username: username, CreatedAt: time.Now()}
	f.nextID++
	f.byName[username] = m
	f.passwords[username] = password
	return &services.AuthResult{Member: m, Token: f.issue(m.ID)}, nil
}

func (f *fakeMembers) Login(_ context.Context, username, password string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.byName[username]
	if !ok || f.passwords[username] != password {
		return nil, common.ErrorUnauthorized
	}
	for k, id := range f.tokens {
		if id == m.ID {
			delete(f.tokens, k)
		}
	}
	return &services.AuthResult{Member: m, Token: f.issue(m.ID)}, nil
}

func (f *fakeMembers) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeMembers) Authenticate(_ context.Context, token string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrInvalidToken
	}
	m := f.byID(id)
	if m == nil {
		return nil, common.ErrInvalidToken
	}
	return m, nil
}

func (f *fakeMembers) UpdateProfile(_ context.Context, member *models.Member, username string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if username == member.Username {
		return member, nil
	}
	if _, ok := f.byName[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	delete(f.byName, member.Username)
	f.passwords[username] = f.passwords[member.Username]
	renamed := &models.Member{ID: member.ID, Username: username, CreatedAt: member.CreatedAt}
	f.byName[username] = renamed
	return renamed, nil
}

type fakeMessages struct {
	mu     sync.Mutex
	stored []models.Message

	gotLimit, gotOffset int
	err                 error
}

func (f *fakeMessages) List(_ context.Context, limit, offset int) (*services.MessagePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotLimit, f.gotOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	page := &services.MessagePage{Count: len(f.stored), Messages: []models.Message{}}
	for i := len(f.stored) - 1 - offset; i >= 0 && len(page.Messages) < limit; i-- {
		page.Messages = append(page.Messages, f.stored[i])
	}
	return page, nil
}

func (f *fakeMessages) Post(_ context.Context, author *models.Member, content string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m := models.Message{
		ID:             int64(len(f.stored) + 1),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        content,
		CreatedAt:      time.Date(2024, 1, 1, 12, 0, len(f.stored), 0, time.UTC),
	}
	f.stored = append(f.stored, m)
	return &m, nil
}
