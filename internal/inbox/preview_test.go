package inbox

import "testing"

func TestPreviewTextAttachmentsWinOverText(t *testing.T) {
	got := PreviewText(&Message{Text: stringPtr("hello"), Attachments: intPtr(3)})
	want := "Sent 3 images"
	if got != want {
		t.Fatalf("PreviewText() = %q, want %q", got, want)
	}
}

func TestPreviewTextUsesTextWhenNoAttachments(t *testing.T) {
	for _, attachments := range []*int{nil, intPtr(0)} {
		got := PreviewText(&Message{Text: stringPtr("hello"), Attachments: attachments})
		if got != "hello" {
			t.Fatalf("PreviewText() = %q, want %q", got, "hello")
		}
	}
}

func TestPreviewTextFallback(t *testing.T) {
	messages := []*Message{
		nil,
		{},
		{Text: stringPtr(""), Attachments: intPtr(0)},
		{IsRead: true},
	}
	for _, message := range messages {
		if got := PreviewText(message); got != FallbackPreview {
			t.Fatalf("PreviewText(%+v) = %q, want %q", message, got, FallbackPreview)
		}
	}
}

func stringPtr(value string) *string { return &value }

func intPtr(value int) *int { return &value }
