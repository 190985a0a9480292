package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/server/models"
	"github.com/dmitrijs2005/corpchat/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *registerRequest) normalize() { r.Username = strings.TrimSpace(r.Username) }

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() { r.Username = strings.TrimSpace(r.Username) }

// profileRequest is a partial update: an absent username leaves it unchanged.
type profileRequest struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=150"`
}

func (r *profileRequest) normalize() {
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		r.Username = &trimmed
	}
}

type messageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

func (r *messageRequest) normalize() { r.Content = strings.TrimSpace(r.Content) }

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func newAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{ID: res.Member.ID, Username: res.Member.Username, Token: res.Token}
}

type memberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func newMemberResponse(m *models.Member) memberResponse {
	return memberResponse{ID: m.ID, Username: m.Username}
}

type messageResponse struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	Author    memberResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

func newMessageResponse(m *models.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Author:    memberResponse{ID: m.AuthorID, Username: m.AuthorUsername},
		CreatedAt: m.CreatedAt,
	}
}

type pageResponse struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []messageResponse `json:"results"`
}
