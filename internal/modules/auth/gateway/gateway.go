package gateway

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/auth/dto"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	Login(ctx context.Context, req dto.LoginRequest) (*transport.Response[dto.AuthResponse], error)
	Register(ctx context.Context, req dto.RegisterRequest) (*transport.Response[dto.AuthResponse], error)
	Me(ctx context.Context) (*transport.Response[entity.User], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) Login(ctx context.Context, req dto.LoginRequest) (*transport.Response[dto.AuthResponse], error) {
	return transport.Post[dto.AuthResponse](ctx, g.client, transport.Path("auth", "login"), req)
}

func (g *gateway) Register(ctx context.Context, req dto.RegisterRequest) (*transport.Response[dto.AuthResponse], error) {
	return transport.Post[dto.AuthResponse](ctx, g.client, transport.Path("auth", "register"), req)
}

func (g *gateway) Me(ctx context.Context) (*transport.Response[entity.User], error) {
	return transport.Get[entity.User](ctx, g.client, transport.Path("users", "me"), nil)
}
