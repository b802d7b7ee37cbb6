package inbox

import "fmt"

const FallbackPreview = "Started a Conversation"

// PreviewText picks attachments over text, then falls back to FallbackPreview.
func PreviewText(message *Message) string {
	if message == nil {
		return FallbackPreview
	}
	if message.Attachments != nil && *message.Attachments > 0 {
		return fmt.Sprintf("Sent %d images", *message.Attachments)
	}
	if message.Text != nil && *message.Text != "" {
		return *message.Text
	}
	return FallbackPreview
}
