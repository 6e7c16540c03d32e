package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/user/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldUsers = "users"
	fieldUser  = "user"
)

// Filter records which query produced State.Users.
type Filter struct {
	Role     entity.Role
	CohortID string
}

type State struct {
	Users          []entity.User
	Filter         Filter
	IsLoadingUsers bool
	UsersError     string

	SelectedUser  *entity.User
	IsLoadingUser bool
	UserError     string
}

// Controller drives the member directory and member detail screens.
type Controller struct {
	*state.Base[State]
	repo repository.UserRepository
}

func NewController(repo repository.UserRepository) *Controller {
	return &Controller{
		Base: state.NewBase(State{}),
		repo: repo,
	}
}

func (c *Controller) LoadUsers(ctx context.Context) {
	c.loadUsers(ctx, Filter{}, c.repo.GetUsers)
}

func (c *Controller) LoadUsersByRole(ctx context.Context, role entity.Role) {
	c.loadUsers(ctx, Filter{Role: role}, func(ctx context.Context) outcome.Outcome[[]entity.User] {
		return c.repo.GetUsersByRole(ctx, role)
	})
}

func (c *Controller) LoadUsersByCohort(ctx context.Context, cohortID string) {
	c.loadUsers(ctx, Filter{CohortID: cohortID}, func(ctx context.Context) outcome.Outcome[[]entity.User] {
		return c.repo.GetUsersByCohort(ctx, cohortID)
	})
}

// Refresh repeats the last directory query.
func (c *Controller) Refresh(ctx context.Context) {
	switch f := c.Snapshot().Filter; {
	case f.Role != "":
		c.LoadUsersByRole(ctx, f.Role)
	case f.CohortID != "":
		c.LoadUsersByCohort(ctx, f.CohortID)
	default:
		c.LoadUsers(ctx)
	}
}

func (c *Controller) LoadUser(ctx context.Context, id string) {
	state.Load(ctx, c.Base, fieldUser,
		func(ctx context.Context) outcome.Outcome[entity.User] {
			return c.repo.GetUser(ctx, id)
		},
		func(s State) State {
			s.IsLoadingUser = true
			s.UserError = ""
			if s.SelectedUser != nil && s.SelectedUser.ID != id {
				s.SelectedUser = nil
			}
			return s
		},
		func(s State, user entity.User) State {
			s.IsLoadingUser = false
			s.SelectedUser = &user
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingUser = false
			s.UserError = msg
			return s
		})
}

func (c *Controller) ClearUsersError() {
	c.Update(func(s State) State {
		s.UsersError = ""
		return s
	})
}

func (c *Controller) ClearUserError() {
	c.Update(func(s State) State {
		s.UserError = ""
		return s
	})
}

// All directory queries share one ticket field, so only the newest query's
// result is ever shown.
func (c *Controller) loadUsers(ctx context.Context, filter Filter, call func(context.Context) outcome.Outcome[[]entity.User]) {
	state.Load(ctx, c.Base, fieldUsers, call,
		func(s State) State {
			s.Filter = filter
			s.IsLoadingUsers = true
			s.UsersError = ""
			return s
		},
		func(s State, users []entity.User) State {
			s.IsLoadingUsers = false
			s.Users = users
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingUsers = false
			s.UsersError = msg
			return s
		})
}
