package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/auth/dto"
	"anoa.com/leadercircle/internal/modules/auth/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/apperror"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldSession     = "session"
	fieldCurrentUser = "currentUser"
)

type State struct {
	IsAuthenticated bool
	User            *entity.User

	IsLoading bool
	Error     string

	IsLoadingUser bool
	UserError     string
}

// Controller drives the sign-in, sign-up and session screens.
type Controller struct {
	*state.Base[State]
	repo repository.AuthRepository
}

// NewController starts authenticated when the repository still holds an
// unexpired token from an earlier session.
func NewController(repo repository.AuthRepository) *Controller {
	return &Controller{
		Base: state.NewBase(State{IsAuthenticated: repo.IsAuthenticated()}),
		repo: repo,
	}
}

func (c *Controller) Login(ctx context.Context, email, password string) bool {
	return c.signIn(ctx, func(ctx context.Context) outcome.Outcome[dto.AuthResponse] {
		return c.repo.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	})
}

func (c *Controller) Register(ctx context.Context, req dto.RegisterRequest) bool {
	return c.signIn(ctx, func(ctx context.Context) outcome.Outcome[dto.AuthResponse] {
		return c.repo.Register(ctx, req)
	})
}

// LoadCurrentUser refreshes the signed-in user. A 401 ends the session.
func (c *Controller) LoadCurrentUser(ctx context.Context) {
	ctx, ticket, release := c.Begin(ctx, fieldCurrentUser)
	defer release()

	c.Update(func(s State) State {
		s.IsLoadingUser = true
		s.UserError = ""
		return s
	})

	result := c.repo.GetCurrentUser(ctx)

	applied := c.Apply(ticket, func(s State) State {
		s.IsLoadingUser = false
		result.Fold(func(user entity.User) {
			s.User = &user
		}, func(err *apperror.AppError) {
			s.UserError = err.Message
		})
		return s
	})

	if applied && apperror.IsUnauthorized(result.Err()) {
		c.Logout()
	}
}

// Logout clears the session token and everything derived from it. Sign-ins
// and user loads still in flight are dropped when they complete.
func (c *Controller) Logout() {
	c.Supersede(fieldSession, fieldCurrentUser)
	c.repo.Logout()
	c.Update(func(State) State {
		return State{}
	})
}

// CurrentUserID is the signed-in user's id, or "".
func (c *Controller) CurrentUserID() string {
	if u := c.Snapshot().User; u != nil {
		return u.ID
	}
	return c.repo.CurrentUserID()
}

func (c *Controller) ClearError() {
	c.Update(func(s State) State {
		s.Error = ""
		return s
	})
}

func (c *Controller) ClearUserError() {
	c.Update(func(s State) State {
		s.UserError = ""
		return s
	})
}

// signIn runs a login or register. A newer sign-in or a Logout supersedes
// it, and a superseded sign-in reports false.
func (c *Controller) signIn(ctx context.Context, call func(context.Context) outcome.Outcome[dto.AuthResponse]) bool {
	ctx, ticket, release := c.Begin(ctx, fieldSession)
	defer release()

	c.Update(func(s State) State {
		// The previous user's profile load no longer applies.
		c.Supersede(fieldCurrentUser)
		s.IsLoadingUser = false
		s.IsLoading = true
		s.Error = ""
		return s
	})

	result := call(ctx)

	applied := c.Apply(ticket, func(s State) State {
		s.IsLoading = false
		result.Fold(func(resp dto.AuthResponse) {
			user := resp.User
			s.IsAuthenticated = true
			s.User = &user
		}, func(err *apperror.AppError) {
			s.Error = err.Message
		})
		return s
	})
	return applied && result.IsSuccess()
}
