package gateway

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/event/dto"
	"anoa.com/leadercircle/internal/transport"
)

type Gateway interface {
	List(ctx context.Context) (*transport.Response[[]entity.Event], error)
	Public(ctx context.Context) (*transport.Response[[]entity.Event], error)
	Upcoming(ctx context.Context) (*transport.Response[[]entity.Event], error)
	Get(ctx context.Context, id string) (*transport.Response[entity.Event], error)
	ByUser(ctx context.Context, userID string) (*transport.Response[[]entity.Event], error)
	Attendees(ctx context.Context, eventID string) (*transport.Response[[]entity.User], error)
	RSVP(ctx context.Context, req dto.RSVPRequest) (*transport.Response[entity.EventRSVP], error)
}

type gateway struct {
	client *transport.Client
}

func NewGateway(client *transport.Client) Gateway {
	return &gateway{client: client}
}

func (g *gateway) List(ctx context.Context) (*transport.Response[[]entity.Event], error) {
	return transport.Get[[]entity.Event](ctx, g.client, transport.Path("events"), nil)
}

func (g *gateway) Public(ctx context.Context) (*transport.Response[[]entity.Event], error) {
	return transport.Get[[]entity.Event](ctx, g.client, transport.Path("events", "public"), nil)
}

func (g *gateway) Upcoming(ctx context.Context) (*transport.Response[[]entity.Event], error) {
	return transport.Get[[]entity.Event](ctx, g.client, transport.Path("events", "upcoming"), nil)
}

func (g *gateway) Get(ctx context.Context, id string) (*transport.Response[entity.Event], error) {
	return transport.Get[entity.Event](ctx, g.client, transport.Path("events", id), nil)
}

func (g *gateway) ByUser(ctx context.Context, userID string) (*transport.Response[[]entity.Event], error) {
	return transport.Get[[]entity.Event](ctx, g.client, transport.Path("events", "user", userID), nil)
}

func (g *gateway) Attendees(ctx context.Context, eventID string) (*transport.Response[[]entity.User], error) {
	return transport.Get[[]entity.User](ctx, g.client, transport.Path("events", eventID, "attendees"), nil)
}

func (g *gateway) RSVP(ctx context.Context, req dto.RSVPRequest) (*transport.Response[entity.EventRSVP], error) {
	return transport.Post[entity.EventRSVP](ctx, g.client, transport.Path("events", "rsvp"), req)
}
