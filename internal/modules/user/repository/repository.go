package repository

import (
	"context"
	"fmt"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/user/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
)

var (
	opUsers    = outcome.Op{Name: "Load members", Entity: "Members"}
	opUser     = outcome.Op{Name: "Load member", Entity: "User"}
	opByRole   = outcome.Op{Name: "Load members by role", Entity: "Members"}
	opByCohort = outcome.Op{Name: "Load cohort", Entity: "Members"}
)

type UserRepository interface {
	GetUsers(ctx context.Context) outcome.Outcome[[]entity.User]
	GetUser(ctx context.Context, id string) outcome.Outcome[entity.User]
	GetUsersByRole(ctx context.Context, role entity.Role) outcome.Outcome[[]entity.User]
	GetUsersByCohort(ctx context.Context, cohortID string) outcome.Outcome[[]entity.User]
}

type userRepository struct {
	gateway gateway.Gateway
}

func NewUserRepository(gw gateway.Gateway) UserRepository {
	return &userRepository{gateway: gw}
}

func (r *userRepository) GetUsers(ctx context.Context) outcome.Outcome[[]entity.User] {
	return outcome.Execute(opUsers, func() (*transport.Response[[]entity.User], error) {
		return r.gateway.List(ctx)
	})
}

func (r *userRepository) GetUser(ctx context.Context, id string) outcome.Outcome[entity.User] {
	return outcome.Execute(opUser, func() (*transport.Response[entity.User], error) {
		return r.gateway.Get(ctx, id)
	})
}

func (r *userRepository) GetUsersByRole(ctx context.Context, role entity.Role) outcome.Outcome[[]entity.User] {
	if !role.Valid() {
		return outcome.Invalid[[]entity.User](opByRole, fmt.Errorf("Unknown role %q", role))
	}
	return outcome.Execute(opByRole, func() (*transport.Response[[]entity.User], error) {
		return r.gateway.ByRole(ctx, role)
	})
}

func (r *userRepository) GetUsersByCohort(ctx context.Context, cohortID string) outcome.Outcome[[]entity.User] {
	return outcome.Execute(opByCohort, func() (*transport.Response[[]entity.User], error) {
		return r.gateway.ByCohort(ctx, cohortID)
	})
}
