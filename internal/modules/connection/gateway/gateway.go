package gateway

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	Create(ctx context.Context, req dto.CreateConnectionRequest) (*transport.Response[entity.Connection], error)
	Update(ctx context.Context, id string, req dto.UpdateConnectionRequest) (*transport.Response[entity.Connection], error)
	Pending(ctx context.Context) (*transport.Response[[]entity.Connection], error)
	Accepted(ctx context.Context) (*transport.Response[[]entity.Connection], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) Create(ctx context.Context, req dto.CreateConnectionRequest) (*transport.Response[entity.Connection], error) {
	return transport.Post[entity.Connection](ctx, g.client, transport.Path("connections"), req)
}

func (g *gateway) Update(ctx context.Context, id string, req dto.UpdateConnectionRequest) (*transport.Response[entity.Connection], error) {
	return transport.Put[entity.Connection](ctx, g.client, transport.Path("connections", id), req)
}

func (g *gateway) Pending(ctx context.Context) (*transport.Response[[]entity.Connection], error) {
	return transport.Get[[]entity.Connection](ctx, g.client, transport.Path("connections", "pending"), nil)
}

func (g *gateway) Accepted(ctx context.Context) (*transport.Response[[]entity.Connection], error) {
	return transport.Get[[]entity.Connection](ctx, g.client, transport.Path("connections", "accepted"), nil)
}
