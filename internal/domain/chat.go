package domain

import (
	"context"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one line of a conversation with the interview coach.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRepository persists the coach conversation per user.
type ChatRepository interface {
	Append(ctx context.Context, userID string, msg ChatMessage) error
	// ListRecent returns up to limit messages, oldest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]ChatMessage, error)
}
