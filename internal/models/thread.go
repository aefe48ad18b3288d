package models

import "time"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type Thread struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one turn of a thread. Role is stored as given; RoleUser and
// RoleBot are the only values the server writes.
type Message struct {
	ID        int64     `json:"-"`
	ThreadID  int64     `json:"-"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"-"`
}
