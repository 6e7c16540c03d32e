package repository

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/event/dto"
	"anoa.com/leadercircle/internal/modules/event/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
	"anoa.com/leadercircle/pkg/validator"
)

var (
	opEvents    = outcome.Op{Name: "Load events", Entity: "Events"}
	opPublic    = outcome.Op{Name: "Load public events", Entity: "Events"}
	opUpcoming  = outcome.Op{Name: "Load upcoming events", Entity: "Events"}
	opEvent     = outcome.Op{Name: "Load event", Entity: "Event"}
	opUserEvent = outcome.Op{Name: "Load my events", Entity: "Events"}
	opAttendees = outcome.Op{Name: "Load attendees", Entity: "Attendees"}
	opRSVP      = outcome.Op{Name: "RSVP", Entity: "RSVP"}
)

type EventRepository interface {
	GetEvents(ctx context.Context) outcome.Outcome[[]entity.Event]
	GetPublicEvents(ctx context.Context) outcome.Outcome[[]entity.Event]
	GetUpcomingEvents(ctx context.Context) outcome.Outcome[[]entity.Event]
	GetEvent(ctx context.Context, id string) outcome.Outcome[entity.Event]
	GetUserEvents(ctx context.Context, userID string) outcome.Outcome[[]entity.Event]
	GetAttendees(ctx context.Context, eventID string) outcome.Outcome[[]entity.User]
	RSVP(ctx context.Context, req dto.RSVPRequest) outcome.Outcome[entity.EventRSVP]
}

type eventRepository struct {
	gateway gateway.Gateway
}

func NewEventRepository(gw gateway.Gateway) EventRepository {
	return &eventRepository{gateway: gw}
}

func (r *eventRepository) GetEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	return outcome.Execute(opEvents, func() (*transport.Response[[]entity.Event], error) {
		return r.gateway.List(ctx)
	})
}

func (r *eventRepository) GetPublicEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	return outcome.Execute(opPublic, func() (*transport.Response[[]entity.Event], error) {
		return r.gateway.Public(ctx)
	})
}

func (r *eventRepository) GetUpcomingEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	return outcome.Execute(opUpcoming, func() (*transport.Response[[]entity.Event], error) {
		return r.gateway.Upcoming(ctx)
	})
}

func (r *eventRepository) GetEvent(ctx context.Context, id string) outcome.Outcome[entity.Event] {
	return outcome.Execute(opEvent, func() (*transport.Response[entity.Event], error) {
		return r.gateway.Get(ctx, id)
	})
}

func (r *eventRepository) GetUserEvents(ctx context.Context, userID string) outcome.Outcome[[]entity.Event] {
	return outcome.Execute(opUserEvent, func() (*transport.Response[[]entity.Event], error) {
		return r.gateway.ByUser(ctx, userID)
	})
}

func (r *eventRepository) GetAttendees(ctx context.Context, eventID string) outcome.Outcome[[]entity.User] {
	return outcome.Execute(opAttendees, func() (*transport.Response[[]entity.User], error) {
		return r.gateway.Attendees(ctx, eventID)
	})
}

func (r *eventRepository) RSVP(ctx context.Context, req dto.RSVPRequest) outcome.Outcome[entity.EventRSVP] {
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[entity.EventRSVP](opRSVP, err)
	}
	return outcome.Execute(opRSVP, func() (*transport.Response[entity.EventRSVP], error) {
		return r.gateway.RSVP(ctx, req)
	})
}
