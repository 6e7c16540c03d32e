package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/event/dto"
	"anoa.com/leadercircle/internal/modules/event/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldEvents    = "events"
	fieldMyEvents  = "myEvents"
	fieldEvent     = "event"
	fieldAttendees = "attendees"
)

// Filter selects which list State.Events holds.
type Filter int

const (
	FilterAll Filter = iota
	FilterPublic
	FilterUpcoming
)

type State struct {
	Events          []entity.Event
	Filter          Filter
	IsLoadingEvents bool
	EventsError     string

	MyEvents          []entity.Event
	IsLoadingMyEvents bool
	MyEventsError     string

	SelectedEvent  *entity.Event
	IsLoadingEvent bool
	EventError     string

	Attendees          []entity.User
	IsLoadingAttendees bool
	AttendeesError     string
	attendeesOf        string

	IsSubmittingRSVP bool
	RSVPError        string
}

// Controller drives the events list, "my events" and event detail screens.
type Controller struct {
	*state.Base[State]
	repo   repository.EventRepository
	userID func() string
}

// NewController builds a controller; userID returns the signed-in user's id
// and is used to refresh "my events" after an RSVP.
func NewController(repo repository.EventRepository, userID func() string) *Controller {
	return &Controller{
		Base:   state.NewBase(State{}),
		repo:   repo,
		userID: userID,
	}
}

func (c *Controller) LoadEvents(ctx context.Context, filter Filter) {
	call := c.repo.GetEvents
	switch filter {
	case FilterPublic:
		call = c.repo.GetPublicEvents
	case FilterUpcoming:
		call = c.repo.GetUpcomingEvents
	}

	state.Load(ctx, c.Base, fieldEvents, call,
		func(s State) State {
			s.Filter = filter
			s.IsLoadingEvents = true
			s.EventsError = ""
			return s
		},
		func(s State, events []entity.Event) State {
			s.IsLoadingEvents = false
			s.Events = events
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingEvents = false
			s.EventsError = msg
			return s
		})
}

func (c *Controller) LoadMyEvents(ctx context.Context) {
	userID := c.userID()
	state.Load(ctx, c.Base, fieldMyEvents,
		func(ctx context.Context) outcome.Outcome[[]entity.Event] {
			return c.repo.GetUserEvents(ctx, userID)
		},
		func(s State) State {
			s.IsLoadingMyEvents = true
			s.MyEventsError = ""
			return s
		},
		func(s State, events []entity.Event) State {
			s.IsLoadingMyEvents = false
			s.MyEvents = events
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingMyEvents = false
			s.MyEventsError = msg
			return s
		})
}

func (c *Controller) LoadEvent(ctx context.Context, id string) {
	state.Load(ctx, c.Base, fieldEvent,
		func(ctx context.Context) outcome.Outcome[entity.Event] {
			return c.repo.GetEvent(ctx, id)
		},
		func(s State) State {
			s.IsLoadingEvent = true
			s.EventError = ""
			if s.SelectedEvent != nil && s.SelectedEvent.ID != id {
				s.SelectedEvent = nil
			}
			if s.attendeesOf != id {
				// Attendees of another event, loaded or in flight, are stale.
				c.Supersede(fieldAttendees)
				s.Attendees = nil
				s.IsLoadingAttendees = false
				s.AttendeesError = ""
				s.attendeesOf = ""
			}
			return s
		},
		func(s State, e entity.Event) State {
			s.IsLoadingEvent = false
			s.SelectedEvent = &e
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingEvent = false
			s.EventError = msg
			return s
		})
}

func (c *Controller) LoadAttendees(ctx context.Context, eventID string) {
	state.Load(ctx, c.Base, fieldAttendees,
		func(ctx context.Context) outcome.Outcome[[]entity.User] {
			return c.repo.GetAttendees(ctx, eventID)
		},
		func(s State) State {
			if s.attendeesOf != eventID {
				s.Attendees = nil
			}
			s.attendeesOf = eventID
			s.IsLoadingAttendees = true
			s.AttendeesError = ""
			return s
		},
		func(s State, users []entity.User) State {
			s.IsLoadingAttendees = false
			s.Attendees = users
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingAttendees = false
			s.AttendeesError = msg
			return s
		})
}

// RSVP records the user's answer, then re-fetches the current list, the
// user's events and, if it is the one being viewed, the event itself.
func (c *Controller) RSVP(ctx context.Context, eventID string, status entity.RSVPStatus) bool {
	result := state.Submit(ctx, c.Base,
		func(ctx context.Context) outcome.Outcome[entity.EventRSVP] {
			return c.repo.RSVP(ctx, dto.RSVPRequest{EventID: eventID, Status: status})
		},
		func(s State) State {
			s.IsSubmittingRSVP = true
			s.RSVPError = ""
			return s
		},
		func(s State, _ entity.EventRSVP) State {
			s.IsSubmittingRSVP = false
			return s
		},
		func(s State, msg string) State {
			s.IsSubmittingRSVP = false
			s.RSVPError = msg
			return s
		})
	if !result.IsSuccess() {
		return false
	}

	snap := c.Snapshot()
	c.LoadEvents(ctx, snap.Filter)
	if c.userID() != "" {
		c.LoadMyEvents(ctx)
	}
	if snap.SelectedEvent != nil && snap.SelectedEvent.ID == eventID {
		c.LoadEvent(ctx, eventID)
		c.LoadAttendees(ctx, eventID)
	}
	return true
}

func (c *Controller) ClearEventsError() {
	c.Update(func(s State) State {
		s.EventsError = ""
		return s
	})
}

func (c *Controller) ClearEventError() {
	c.Update(func(s State) State {
		s.EventError = ""
		return s
	})
}

func (c *Controller) ClearRSVPError() {
	c.Update(func(s State) State {
		s.RSVPError = ""
		return s
	})
}
