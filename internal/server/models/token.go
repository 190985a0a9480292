package models

import "time"

// Token is an issued credential. A credential is valid only while its row exists.
type Token struct {
	Key       string
	MemberID  int64
	CreatedAt time.Time
}
