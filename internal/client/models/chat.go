// Package models holds the client-side shapes of the chat API payloads.
package models

import "time"

// Identity is the signed-in user as the server reports it.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Valid reports whether both halves of the identity are present.
func (i Identity) Valid() bool {
	return i.ID > 0 && i.Username != ""
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Identity extracts the user part of the response.
func (r AuthResponse) Identity() Identity {
	return Identity{ID: r.ID, Username: r.Username}
}

// Author is the nested author of a message.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Message is a single chat message.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorName returns the author's username, or "unknown" when the server
// sent no author.
func (m Message) AuthorName() string {
	if m.Author == nil || m.Author.Username == "" {
		return "unknown"
	}
	return m.Author.Username
}

// MessagePage is one limit/offset page of the message history.
type MessagePage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Message `json:"results"`
}
