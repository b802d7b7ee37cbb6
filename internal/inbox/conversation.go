package inbox

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConversation = errors.New("invalid conversation")

// ConversationSummary is one conversation as seen by the current viewer.
// Message is nil for a conversation that has no messages yet.
type ConversationSummary struct {
	ID      string
	Name    string
	Message *Message
}

// Message is the most recent message of a conversation. Text and Attachments
// are optional.
type Message struct {
	Text        *string
	Attachments *int
	IsRead      bool
}

// MissingMessageError reports a summary whose read state was requested while it
// carries no message.
type MissingMessageError struct {
	ConversationID string
}

func (e *MissingMessageError) Error() string {
	return fmt.Sprintf("conversation %q has no message", e.ConversationID)
}

func (c ConversationSummary) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidConversation)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required for %q", ErrInvalidConversation, c.ID)
	}
	return nil
}

// ReadState returns whether the last message has been read.
func ReadState(c ConversationSummary) (bool, error) {
	if c.Message == nil {
		return false, &MissingMessageError{ConversationID: c.ID}
	}
	return c.Message.IsRead, nil
}

func (c ConversationSummary) Path(basePath string) string {
	return strings.TrimRight(basePath, "/") + "/" + c.ID
}
