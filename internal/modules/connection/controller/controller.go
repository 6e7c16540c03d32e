package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
	"anoa.com/leadercircle/internal/modules/connection/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldPending  = "pending"
	fieldAccepted = "accepted"
)

type State struct {
	Pending          []entity.Connection
	IsLoadingPending bool
	PendingError     string

	Accepted          []entity.Connection
	IsLoadingAccepted bool
	AcceptedError     string

	IsSubmitting bool
	SubmitError  string

	pendingSubmits int
}

// Controller drives the connections screen. Status changes are never applied
// locally; both lists are re-fetched after every successful mutation.
type Controller struct {
	*state.Base[State]
	repo repository.ConnectionRepository
}

func NewController(repo repository.ConnectionRepository) *Controller {
	return &Controller{
		Base: state.NewBase(State{}),
		repo: repo,
	}
}

func (c *Controller) LoadPending(ctx context.Context) {
	state.Load(ctx, c.Base, fieldPending, c.repo.GetPendingConnections,
		func(s State) State {
			s.IsLoadingPending = true
			s.PendingError = ""
			return s
		},
		func(s State, list []entity.Connection) State {
			s.IsLoadingPending = false
			s.Pending = list
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingPending = false
			s.PendingError = msg
			return s
		})
}

func (c *Controller) LoadAccepted(ctx context.Context) {
	state.Load(ctx, c.Base, fieldAccepted, c.repo.GetAcceptedConnections,
		func(s State) State {
			s.IsLoadingAccepted = true
			s.AcceptedError = ""
			return s
		},
		func(s State, list []entity.Connection) State {
			s.IsLoadingAccepted = false
			s.Accepted = list
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingAccepted = false
			s.AcceptedError = msg
			return s
		})
}

// LoadAll fetches both lists concurrently.
func (c *Controller) LoadAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.LoadPending(ctx)
	}()
	c.LoadAccepted(ctx)
	<-done
}

// SendRequest asks targetID to connect. message may be "".
func (c *Controller) SendRequest(ctx context.Context, targetID string, t entity.ConnectionType, message string) bool {
	req := dto.CreateConnectionRequest{TargetID: targetID, Type: t}
	if message != "" {
		req.Message = &message
	}
	return c.submit(ctx, func(ctx context.Context) outcome.Outcome[entity.Connection] {
		return c.repo.CreateConnection(ctx, req)
	})
}

func (c *Controller) Respond(ctx context.Context, id string, status entity.ConnectionStatus) bool {
	return c.submit(ctx, func(ctx context.Context) outcome.Outcome[entity.Connection] {
		return c.repo.UpdateConnectionStatus(ctx, id, status)
	})
}

func (c *Controller) Accept(ctx context.Context, id string) bool {
	return c.Respond(ctx, id, entity.ConnectionStatusAccepted)
}

func (c *Controller) Decline(ctx context.Context, id string) bool {
	return c.Respond(ctx, id, entity.ConnectionStatusDeclined)
}

func (c *Controller) ClearPendingError() {
	c.Update(func(s State) State {
		s.PendingError = ""
		return s
	})
}

func (c *Controller) ClearAcceptedError() {
	c.Update(func(s State) State {
		s.AcceptedError = ""
		return s
	})
}

func (c *Controller) ClearSubmitError() {
	c.Update(func(s State) State {
		s.SubmitError = ""
		return s
	})
}

// submit runs a mutation. Submits may overlap; IsSubmitting stays set until
// the last one finishes.
func (c *Controller) submit(ctx context.Context, call func(context.Context) outcome.Outcome[entity.Connection]) bool {
	result := state.Submit(ctx, c.Base, call,
		func(s State) State {
			s.pendingSubmits++
			s.IsSubmitting = true
			s.SubmitError = ""
			return s
		},
		func(s State, _ entity.Connection) State {
			s.pendingSubmits--
			s.IsSubmitting = s.pendingSubmits > 0
			return s
		},
		func(s State, msg string) State {
			s.pendingSubmits--
			s.IsSubmitting = s.pendingSubmits > 0
			s.SubmitError = msg
			return s
		})
	if !result.IsSuccess() {
		return false
	}
	c.LoadAll(ctx)
	return true
}
