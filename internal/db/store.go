package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

type Conversation struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID             string
	ConversationID string
	Text           sql.NullString
	Attachments    sql.NullInt64
	IsRead         bool
	CreatedAt      time.Time
}

// Summary is a conversation joined with its newest message, if any.
type Summary struct {
	Conversation Conversation
	Last         *Message
}

func OpenSQLite(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	database.SetMaxOpenConns(1)
	database.SetConnMaxLifetime(0)

	store := &Store{db: database}
	if err := store.migrate(context.Background()); err != nil {
		database.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
PRAGMA journal_mode=WAL;
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS conversations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL,
  text TEXT,
  attachments INTEGER,
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL,
  FOREIGN KEY(conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation_created ON messages(conversation_id, created_at, id);
`
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return nil
}

// ListSummaries returns conversations ordered by most recent activity, each
// with its newest message.
func (s *Store) ListSummaries(ctx context.Context, limit int) ([]Summary, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.name, c.created_at, c.updated_at,
       m.id, m.text, m.attachments, m.is_read, m.created_at
FROM conversations c
LEFT JOIN messages m ON m.id = (
  SELECT id FROM messages
  WHERE conversation_id = c.id
  ORDER BY created_at DESC, id DESC
  LIMIT 1
)
ORDER BY c.updated_at DESC, c.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0, limit)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) GetSummary(ctx context.Context, conversationID string) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT c.id, c.name, c.created_at, c.updated_at,
       m.id, m.text, m.attachments, m.is_read, m.created_at
FROM conversations c
LEFT JOIN messages m ON m.id = (
  SELECT id FROM messages
  WHERE conversation_id = c.id
  ORDER BY created_at DESC, id DESC
  LIMIT 1
)
WHERE c.id = ?`, conversationID)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, ErrNotFound
	}
	return summary, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (Summary, error) {
	var (
		summary       Summary
		messageID     sql.NullString
		text          sql.NullString
		attachments   sql.NullInt64
		isRead        sql.NullBool
		lastCreatedAt sql.NullTime
	)
	err := row.Scan(
		&summary.Conversation.ID, &summary.Conversation.Name, &summary.Conversation.CreatedAt, &summary.Conversation.UpdatedAt,
		&messageID, &text, &attachments, &isRead, &lastCreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, err
	}
	if err != nil {
		return Summary{}, fmt.Errorf("scan summary: %w", err)
	}
	if messageID.Valid {
		summary.Last = &Message{
			ID:             messageID.String,
			ConversationID: summary.Conversation.ID,
			Text:           text,
			Attachments:    attachments,
			IsRead:         isRead.Bool,
			CreatedAt:      lastCreatedAt.Time,
		}
	}
	return summary, nil
}

func (s *Store) CreateConversation(ctx context.Context, id, name string, now time.Time) (Conversation, error) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO conversations (id, name, created_at, updated_at)
VALUES (?, ?, ?, ?)`, id, name, now, now)
	if err != nil {
		return Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	return Conversation{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *Store) ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	if limit < 1 {
		limit = 300
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, conversation_id, text, attachments, is_read, created_at
FROM messages
WHERE conversation_id = ?
ORDER BY created_at ASC, id ASC
LIMIT ?`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Text, &msg.Attachments, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkRead flags every message of the conversation as read and returns how
// many rows changed.
func (s *Store) MarkRead(ctx context.Context, conversationID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
UPDATE messages
SET is_read = 1
WHERE conversation_id = ? AND is_read = 0`, conversationID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return affected, nil
}

func (s *Store) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func InsertMessageTx(ctx context.Context, tx *sql.Tx, message Message) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO messages (id, conversation_id, text, attachments, is_read, created_at)
VALUES (?, ?, ?, ?, ?, ?)`, message.ID, message.ConversationID, message.Text, message.Attachments, message.IsRead, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message tx: %w", err)
	}
	return nil
}

func TouchConversationTx(ctx context.Context, tx *sql.Tx, conversationID string, at time.Time) error {
	result, err := tx.ExecContext(ctx, `
UPDATE conversations SET updated_at = ? WHERE id = ?`, at, conversationID)
	if err != nil {
		return fmt.Errorf("touch conversation tx: %w", err)
	}
	return requireAffected(result, "touch conversation tx")
}

// requireAffected maps an update that matched no rows to ErrNotFound.
func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
