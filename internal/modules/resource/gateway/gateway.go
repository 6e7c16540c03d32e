package gateway

import (
	"context"
	"net/url"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	List(ctx context.Context) (*transport.Response[[]entity.Resource], error)
	Get(ctx context.Context, id string) (*transport.Response[entity.Resource], error)
	ByType(ctx context.Context, t entity.ResourceType) (*transport.Response[[]entity.Resource], error)
	ByModule(ctx context.Context, module string) (*transport.Response[[]entity.Resource], error)
	Search(ctx context.Context, query string) (*transport.Response[[]entity.Resource], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) List(ctx context.Context) (*transport.Response[[]entity.Resource], error) {
	return transport.Get[[]entity.Resource](ctx, g.client, transport.Path("resources"), nil)
}

func (g *gateway) Get(ctx context.Context, id string) (*transport.Response[entity.Resource], error) {
	return transport.Get[entity.Resource](ctx, g.client, transport.Path("resources", id), nil)
}

func (g *gateway) ByType(ctx context.Context, t entity.ResourceType) (*transport.Response[[]entity.Resource], error) {
	return transport.Get[[]entity.Resource](ctx, g.client, transport.Path("resources", "type", string(t)), nil)
}

func (g *gateway) ByModule(ctx context.Context, module string) (*transport.Response[[]entity.Resource], error) {
	return transport.Get[[]entity.Resource](ctx, g.client, transport.Path("resources", "module", module), nil)
}

func (g *gateway) Search(ctx context.Context, query string) (*transport.Response[[]entity.Resource], error) {
	return transport.Get[[]entity.Resource](ctx, g.client, transport.Path("resources", "search"), url.Values{"q": {query}})
}
