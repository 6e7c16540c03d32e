package gateway

import (
	"context"
	"net/url"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	Get(ctx context.Context, userID string) (*transport.Response[entity.Profile], error)
	Update(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*transport.Response[entity.Profile], error)
	Search(ctx context.Context, q dto.SearchQuery) (*transport.Response[[]entity.Profile], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) Get(ctx context.Context, userID string) (*transport.Response[entity.Profile], error) {
	return transport.Get[entity.Profile](ctx, g.client, transport.Path("profiles", userID), nil)
}

func (g *gateway) Update(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*transport.Response[entity.Profile], error) {
	return transport.Put[entity.Profile](ctx, g.client, transport.Path("profiles", userID), req)
}

func (g *gateway) Search(ctx context.Context, q dto.SearchQuery) (*transport.Response[[]entity.Profile], error) {
	query := url.Values{}
	if q.Query != "" {
		query.Set("q", q.Query)
	}
	if q.Skill != "" {
		query.Set("skill", q.Skill)
	}
	return transport.Get[[]entity.Profile](ctx, g.client, transport.Path("profiles", "search"), query)
}
