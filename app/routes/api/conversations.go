package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/vango-go/vango"

	"creator_inbox/internal/inbox"
	convsvc "creator_inbox/internal/services/conversations"
)

const maxBodyBytes = 64 << 10

type ConversationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Preview string `json:"preview"`
	Unread  bool   `json:"unread"`
}

type CreateConversationRequest struct {
	Name string `json:"name"`
}

type AppendMessageRequest struct {
	Text        string `json:"text"`
	Attachments int    `json:"attachments"`
}

type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Preview        string `json:"preview"`
	IsRead         bool   `json:"is_read"`
}

var (
	serviceMu sync.RWMutex
	service   *convsvc.Service
)

func SetService(next *convsvc.Service) {
	serviceMu.Lock()
	defer serviceMu.Unlock()
	service = next
}

func getService() *convsvc.Service {
	serviceMu.RLock()
	defer serviceMu.RUnlock()
	if service == nil {
		panic("api service not initialized")
	}
	return service
}

func ConversationsGET(ctx vango.Ctx) (*vango.Response[[]ConversationResponse], error) {
	svc := getService()
	list, err := svc.ListConversations(ctx.Context(), svc.ListLimit())
	if err != nil {
		return nil, err
	}
	return vango.OK(conversationResponses(list, svc.BasePath())), nil
}

func ConversationGET(ctx vango.Ctx) (*vango.Response[ConversationResponse], error) {
	svc := getService()
	out, err := getConversation(ctx.Context(), svc, ctx.Param("id"))
	if err != nil {
		return nil, err
	}
	return vango.OK(out), nil
}

func ConversationsPOST(ctx vango.Ctx) (*vango.Response[ConversationResponse], error) {
	var req CreateConversationRequest
	if err := decodeBody(ctx.Request().Body, &req); err != nil {
		return nil, err
	}
	out, err := createConversation(ctx.Context(), getService(), req)
	if err != nil {
		return nil, err
	}
	return vango.OK(out), nil
}

func ConversationMessagesPOST(ctx vango.Ctx) (*vango.Response[MessageResponse], error) {
	var req AppendMessageRequest
	if err := decodeBody(ctx.Request().Body, &req); err != nil {
		return nil, err
	}
	out, err := appendMessage(ctx.Context(), getService(), ctx.Param("id"), req)
	if err != nil {
		return nil, err
	}
	return vango.OK(out), nil
}

func getConversation(ctx context.Context, svc *convsvc.Service, conversationID string) (ConversationResponse, error) {
	summary, err := svc.GetConversation(ctx, conversationID)
	if err != nil {
		return ConversationResponse{}, err
	}
	return conversationResponse(summary, svc.BasePath()), nil
}

func createConversation(ctx context.Context, svc *convsvc.Service, req CreateConversationRequest) (ConversationResponse, error) {
	summary, err := svc.CreateConversation(ctx, req.Name)
	if err != nil {
		return ConversationResponse{}, err
	}
	return conversationResponse(summary, svc.BasePath()), nil
}

func appendMessage(ctx context.Context, svc *convsvc.Service, conversationID string, req AppendMessageRequest) (MessageResponse, error) {
	message, err := svc.AppendMessage(ctx, conversationID, req.Text, req.Attachments)
	if err != nil {
		return MessageResponse{}, err
	}
	return MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		Preview:        inbox.PreviewText(convsvc.ToInboxMessage(message)),
		IsRead:         message.IsRead,
	}, nil
}

func decodeBody(body io.Reader, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func conversationResponses(list []inbox.ConversationSummary, basePath string) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(list))
	for _, summary := range list {
		if summary.Validate() != nil {
			continue
		}
		out = append(out, conversationResponse(summary, basePath))
	}
	return out
}

func conversationResponse(summary inbox.ConversationSummary, basePath string) ConversationResponse {
	return ConversationResponse{
		ID:      summary.ID,
		Name:    summary.Name,
		Path:    summary.Path(basePath),
		Preview: inbox.PreviewText(summary.Message),
		Unread:  summary.Message != nil && !summary.Message.IsRead,
	}
}
