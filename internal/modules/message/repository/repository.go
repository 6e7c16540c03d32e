package repository

import (
	"context"
	"strings"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/message/dto"
	"anoa.com/leadercircle/internal/modules/message/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
	"anoa.com/leadercircle/pkg/validator"
)

var (
	opSend         = outcome.Op{Name: "Send message", Entity: "Message"}
	opConversation = outcome.Op{Name: "Load conversation", Entity: "Conversation"}
	opMarkAsRead   = outcome.Op{Name: "Mark message as read", Entity: "Message"}
)

type MessageRepository interface {
	SendMessage(ctx context.Context, req dto.SendMessageRequest) outcome.Outcome[entity.Message]
	GetConversation(ctx context.Context, otherUserID string) outcome.Outcome[[]entity.Message]
	MarkAsRead(ctx context.Context, messageID string) outcome.Outcome[struct{}]
}

type messageRepository struct {
	gateway gateway.Gateway
}

func NewMessageRepository(gw gateway.Gateway) MessageRepository {
	return &messageRepository{gateway: gw}
}

func (r *messageRepository) SendMessage(ctx context.Context, req dto.SendMessageRequest) outcome.Outcome[entity.Message] {
	req.Content = strings.TrimSpace(req.Content)
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[entity.Message](opSend, err)
	}
	return outcome.Execute(opSend, func() (*transport.Response[entity.Message], error) {
		return r.gateway.Send(ctx, req)
	})
}

// GetConversation returns every message exchanged with otherUserID, oldest first.
func (r *messageRepository) GetConversation(ctx context.Context, otherUserID string) outcome.Outcome[[]entity.Message] {
	return outcome.Execute(opConversation, func() (*transport.Response[[]entity.Message], error) {
		return r.gateway.Thread(ctx, otherUserID)
	})
}

func (r *messageRepository) MarkAsRead(ctx context.Context, messageID string) outcome.Outcome[struct{}] {
	return outcome.Acknowledge(opMarkAsRead, func() (*transport.Response[entity.Message], error) {
		return r.gateway.MarkAsRead(ctx, messageID)
	})
}
