package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestListSummariesPicksNewestMessage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if _, err := store.CreateConversation(ctx, "c1", "Alice", base); err != nil {
		t.Fatalf("CreateConversation() error = %v", err)
	}
	if _, err := store.CreateConversation(ctx, "c2", "Bob", base.Add(time.Minute)); err != nil {
		t.Fatalf("CreateConversation() error = %v", err)
	}
	insertMessage(t, store, Message{ID: "m1", ConversationID: "c1", Text: sql.NullString{String: "old", Valid: true}, CreatedAt: base.Add(2 * time.Minute)})
	insertMessage(t, store, Message{ID: "m2", ConversationID: "c1", Attachments: sql.NullInt64{Int64: 2, Valid: true}, IsRead: true, CreatedAt: base.Add(3 * time.Minute)})

	summaries, err := store.ListSummaries(ctx, 10)
	if err != nil {
		t.Fatalf("ListSummaries() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}
	if summaries[0].Conversation.ID != "c1" {
		t.Fatalf("summaries[0].Conversation.ID = %q, want c1", summaries[0].Conversation.ID)
	}
	last := summaries[0].Last
	if last == nil || last.ID != "m2" {
		t.Fatalf("summaries[0].Last = %+v, want m2", last)
	}
	if !last.IsRead || last.Attachments.Int64 != 2 || last.Text.Valid {
		t.Fatalf("summaries[0].Last = %+v", last)
	}
	if summaries[1].Last != nil {
		t.Fatalf("summaries[1].Last = %+v, want nil", summaries[1].Last)
	}
}

func TestGetSummaryMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSummary(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSummary() error = %v, want ErrNotFound", err)
	}
}

func TestMarkReadFlagsUnreadMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := store.CreateConversation(ctx, "c1", "Alice", now); err != nil {
		t.Fatalf("CreateConversation() error = %v", err)
	}
	insertMessage(t, store, Message{ID: "m1", ConversationID: "c1", Text: sql.NullString{String: "hi", Valid: true}, CreatedAt: now})
	insertMessage(t, store, Message{ID: "m2", ConversationID: "c1", Text: sql.NullString{String: "there", Valid: true}, CreatedAt: now.Add(time.Second)})

	changed, err := store.MarkRead(ctx, "c1")
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if changed != 2 {
		t.Fatalf("MarkRead() = %d, want 2", changed)
	}

	messages, err := store.ListMessages(ctx, "c1", 10)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	for _, message := range messages {
		if !message.IsRead {
			t.Fatalf("message %q IsRead = false, want true", message.ID)
		}
	}
}

func TestTouchMissingConversationReturnsNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Transaction(context.Background(), func(tx *sql.Tx) error {
		return TouchConversationTx(context.Background(), tx, "missing", time.Now().UTC())
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Transaction() error = %v, want ErrNotFound", err)
	}
}

type failingResult struct{}

func (failingResult) LastInsertId() (int64, error) { return 0, nil }

func (failingResult) RowsAffected() (int64, error) { return 0, errors.New("driver lost count") }

type countResult int64

func (r countResult) LastInsertId() (int64, error) { return 0, nil }

func (r countResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestRequireAffectedReportsRowsAffectedError(t *testing.T) {
	err := requireAffected(failingResult{}, "touch conversation tx")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("requireAffected() error = %v, want wrapped driver error", err)
	}
	if err := requireAffected(countResult(0), "touch"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("requireAffected(0) error = %v, want ErrNotFound", err)
	}
	if err := requireAffected(countResult(1), "touch"); err != nil {
		t.Fatalf("requireAffected(1) error = %v", err)
	}
}

func insertMessage(t *testing.T, store *Store, message Message) {
	t.Helper()
	err := store.Transaction(context.Background(), func(tx *sql.Tx) error {
		if err := InsertMessageTx(context.Background(), tx, message); err != nil {
			return err
		}
		return TouchConversationTx(context.Background(), tx, message.ConversationID, message.CreatedAt)
	})
	if err != nil {
		t.Fatalf("InsertMessageTx() error = %v", err)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "inbox.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
