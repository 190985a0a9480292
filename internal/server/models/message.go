package models

import "time"

type Message struct {
	ID             int64
	AuthorID       int64
	AuthorUsername string
	Content        string
	CreatedAt      time.Time
}
