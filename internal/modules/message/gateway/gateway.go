package gateway

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/message/dto"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	Send(ctx context.Context, req dto.SendMessageRequest) (*transport.Response[entity.Message], error)
	Thread(ctx context.Context, otherUserID string) (*transport.Response[[]entity.Message], error)
	MarkAsRead(ctx context.Context, messageID string) (*transport.Response[entity.Message], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) Send(ctx context.Context, req dto.SendMessageRequest) (*transport.Response[entity.Message], error) {
	return transport.Post[entity.Message](ctx, g.client, transport.Path("messages"), req)
}

func (g *gateway) Thread(ctx context.Context, otherUserID string) (*transport.Response[[]entity.Message], error) {
	return transport.Get[[]entity.Message](ctx, g.client, transport.Path("messages", "thread", otherUserID), nil)
}

func (g *gateway) MarkAsRead(ctx context.Context, messageID string) (*transport.Response[entity.Message], error) {
	return transport.Put[entity.Message](ctx, g.client, transport.Path("messages", messageID, "read"), nil)
}
