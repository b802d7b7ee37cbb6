package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"creator_inbox/internal/cache"
	"creator_inbox/internal/config"
	"creator_inbox/internal/db"
	"creator_inbox/internal/inbox"
)

const summariesKey = "summaries"

var (
	ErrEmptyMessage = errors.New("message needs text or attachments")
	ErrInvalidName  = errors.New("invalid conversation name")
)

type Service struct {
	store *db.Store
	cache cache.Storage[[]inbox.ConversationSummary]
	cfg   config.Config
	now   func() time.Time

	// generation is bumped after every committed write, before the cached
	// listing is dropped.
	generation atomic.Uint64
}

type Message = db.Message

func NewService(store *db.Store, summaries cache.Storage[[]inbox.ConversationSummary], cfg config.Config) *Service {
	if summaries == nil {
		summaries = cache.NewMemory[[]inbox.ConversationSummary](cfg.CacheTTL)
	}
	return &Service{
		store: store,
		cache: summaries,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) BasePath() string {
	return s.cfg.BasePath
}

func (s *Service) ListLimit() int {
	return s.cfg.ListLimit
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) MessageLimit() int {
	return s.cfg.MessageLimit
}

// ListConversations returns summaries newest first. Listings of the configured
// size are served from the cache when present.
func (s *Service) ListConversations(ctx context.Context, limit int) ([]inbox.ConversationSummary, error) {
	cacheable := limit == s.cfg.ListLimit
	if cacheable {
		cached, err := s.cache.Get(ctx, summariesKey)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("summary cache read failed", "error", err)
		}
	}

	generation := s.generation.Load()
	rows, err := s.store.ListSummaries(ctx, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]inbox.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, toSummary(row))
	}

	if cacheable {
		s.fill(ctx, generation, summaries)
	}
	return summaries, nil
}

func (s *Service) GetConversation(ctx context.Context, conversationID string) (inbox.ConversationSummary, error) {
	row, err := s.store.GetSummary(ctx, strings.TrimSpace(conversationID))
	if err != nil {
		return inbox.ConversationSummary{}, err
	}
	return toSummary(row), nil
}

func (s *Service) CreateConversation(ctx context.Context, name string) (inbox.ConversationSummary, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return inbox.ConversationSummary{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(trimmed) > 200 {
		return inbox.ConversationSummary{}, fmt.Errorf("%w: name is too long", ErrInvalidName)
	}
	created, err := s.store.CreateConversation(ctx, uuid.NewString(), trimmed, s.now())
	if err != nil {
		return inbox.ConversationSummary{}, err
	}
	s.invalidate(ctx)
	return inbox.ConversationSummary{ID: created.ID, Name: created.Name}, nil
}

// AppendMessage stores a new unread message and moves the conversation to the
// top of the list.
func (s *Service) AppendMessage(ctx context.Context, conversationID, text string, attachments int) (Message, error) {
	if strings.TrimSpace(text) == "" && attachments <= 0 {
		return Message{}, ErrEmptyMessage
	}
	now := s.now()
	message := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		CreatedAt:      now,
	}
	if text != "" {
		message.Text = sql.NullString{String: text, Valid: true}
	}
	if attachments > 0 {
		message.Attachments = sql.NullInt64{Int64: int64(attachments), Valid: true}
	}

	err := s.store.Transaction(ctx, func(tx *sql.Tx) error {
		if txErr := db.TouchConversationTx(ctx, tx, conversationID, now); txErr != nil {
			return txErr
		}
		return db.InsertMessageTx(ctx, tx, message)
	})
	if err != nil {
		return Message{}, err
	}
	s.invalidate(ctx)
	return message, nil
}

func (s *Service) ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	if conversationID == "" {
		return nil, nil
	}
	return s.store.ListMessages(ctx, conversationID, limit)
}

func (s *Service) MarkRead(ctx context.Context, conversationID string) error {
	changed, err := s.store.MarkRead(ctx, conversationID)
	if err != nil {
		return err
	}
	if changed > 0 {
		s.invalidate(ctx)
	}
	return nil
}

// fill caches a listing read at generation. A write that landed while the
// listing was read or stored makes it stale, so it is dropped again.
func (s *Service) fill(ctx context.Context, generation uint64, summaries []inbox.ConversationSummary) {
	if err := s.cache.Put(ctx, summariesKey, summaries); err != nil {
		slog.Warn("summary cache write failed", "error", err)
		return
	}
	if s.generation.Load() == generation {
		return
	}
	if err := s.cache.Delete(ctx, summariesKey); err != nil {
		slog.Warn("summary cache invalidation failed", "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if err := s.cache.Delete(ctx, summariesKey); err != nil {
		slog.Warn("summary cache invalidation failed", "error", err)
	}
}

func toSummary(row db.Summary) inbox.ConversationSummary {
	summary := inbox.ConversationSummary{
		ID:   row.Conversation.ID,
		Name: row.Conversation.Name,
	}
	if row.Last == nil {
		return summary
	}
	summary.Message = ToInboxMessage(*row.Last)
	return summary
}

// ToInboxMessage converts a stored message into its display form.
func ToInboxMessage(row Message) *inbox.Message {
	message := &inbox.Message{IsRead: row.IsRead}
	if row.Text.Valid {
		text := row.Text.String
		message.Text = &text
	}
	if row.Attachments.Valid {
		attachments := int(row.Attachments.Int64)
		message.Attachments = &attachments
	}
	return message
}
