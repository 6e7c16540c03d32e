package gateway

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	List(ctx context.Context) (*transport.Response[[]entity.User], error)
	Get(ctx context.Context, id string) (*transport.Response[entity.User], error)
	ByRole(ctx context.Context, role entity.Role) (*transport.Response[[]entity.User], error)
	ByCohort(ctx context.Context, cohortID string) (*transport.Response[[]entity.User], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) List(ctx context.Context) (*transport.Response[[]entity.User], error) {
	return transport.Get[[]entity.User](ctx, g.client, transport.Path("users"), nil)
}

func (g *gateway) Get(ctx context.Context, id string) (*transport.Response[entity.User], error) {
	return transport.Get[entity.User](ctx, g.client, transport.Path("users", id), nil)
}

func (g *gateway) ByRole(ctx context.Context, role entity.Role) (*transport.Response[[]entity.User], error) {
	return transport.Get[[]entity.User](ctx, g.client, transport.Path("users", "role", string(role)), nil)
}

func (g *gateway) ByCohort(ctx context.Context, cohortID string) (*transport.Response[[]entity.User], error) {
	return transport.Get[[]entity.User](ctx, g.client, transport.Path("users", "cohort", cohortID), nil)
}
