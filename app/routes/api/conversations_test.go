package api

import (
	"testing"

	"creator_inbox/internal/inbox"
)

func TestConversationResponsesMapsPreviewAndUnread(t *testing.T) {
	text := "hello"
	attachments := 3
	list := []inbox.ConversationSummary{
		{ID: "c1", Name: "Alice", Message: &inbox.Message{Text: &text}},
		{ID: "c2", Name: "Bob", Message: &inbox.Message{Attachments: &attachments, IsRead: true}},
		{ID: "c3", Name: "Carol"},
		{ID: "", Name: "Nobody"},
	}

	got := conversationResponses(list, "/inbox")
	if len(got) != 3 {
		t.Fatalf("len(conversationResponses()) = %d, want 3", len(got))
	}
	if got[0].Preview != "hello" || !got[0].Unread || got[0].Path != "/inbox/c1" {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Preview != "Sent 3 images" || got[1].Unread {
		t.Fatalf("got[1] = %+v", got[1])
	}
	if got[2].Preview != inbox.FallbackPreview || got[2].Unread {
		t.Fatalf("got[2] = %+v", got[2])
	}
}
