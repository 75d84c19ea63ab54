package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/msomdec/interview-prep/internal/domain"
)

// ChatRepository implements domain.ChatRepository using SQLite.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new SQLite-backed ChatRepository.
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db.SqlDB}
}

func (r *ChatRepository) Append(ctx context.Context, userID string, msg domain.ChatMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coach_messages (id, user_id, sender, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID, userID, string(msg.Sender), msg.Text, msg.Timestamp.UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: message %s already stored", domain.ErrInvalidInput, msg.ID)
		}
		return fmt.Errorf("insert coach message: %w", err)
	}
	return nil
}

func (r *ChatRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		return []domain.ChatMessage{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender, text, created_at FROM (
		     SELECT id, sender, text, created_at, rowid FROM coach_messages
		     WHERE user_id = ?
		     ORDER BY created_at DESC, rowid DESC
		     LIMIT ?
		 ) ORDER BY created_at ASC, rowid ASC`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query coach messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var m domain.ChatMessage
		var sender string
		if err := rows.Scan(&m.ID, &sender, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan coach message: %w", err)
		}
		m.Sender = domain.Sender(sender)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
