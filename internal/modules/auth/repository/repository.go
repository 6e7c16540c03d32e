package repository

import (
	"context"
	"strings"
	"time"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/auth/dto"
	"anoa.com/leadercircle/internal/modules/auth/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/apperror"
	"anoa.com/leadercircle/pkg/outcome"
	"anoa.com/leadercircle/pkg/validator"
)

var (
	opLogin       = outcome.Op{Name: "Login", Entity: "Session"}
	opRegister    = outcome.Op{Name: "Register", Entity: "Session"}
	opCurrentUser = outcome.Op{Name: "Load current user", Entity: "User"}
)

const (
	msgMissingToken = "Server did not return a session token"
	msgSessionEnded = "Signed out before sign-in completed"
)

// AuthRepository owns the session token: a successful login or register
// stores it, Logout clears it.
type AuthRepository interface {
	Login(ctx context.Context, req dto.LoginRequest) outcome.Outcome[dto.AuthResponse]
	Register(ctx context.Context, req dto.RegisterRequest) outcome.Outcome[dto.AuthResponse]
	GetCurrentUser(ctx context.Context) outcome.Outcome[entity.User]
	Logout()
	IsAuthenticated() bool
	CurrentUserID() string
}

type authRepository struct {
	gateway gateway.Gateway
	tokens  *transport.TokenHolder
	now     func() time.Time
}

func NewAuthRepository(gw gateway.Gateway, tokens *transport.TokenHolder) AuthRepository {
	return &authRepository{gateway: gw, tokens: tokens, now: time.Now}
}

func (r *authRepository) Login(ctx context.Context, req dto.LoginRequest) outcome.Outcome[dto.AuthResponse] {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[dto.AuthResponse](opLogin, err)
	}
	generation := r.tokens.Generation()
	return r.storeToken(opLogin, generation, outcome.Execute(opLogin, func() (*transport.Response[dto.AuthResponse], error) {
		return r.gateway.Login(ctx, req)
	}))
}

func (r *authRepository) Register(ctx context.Context, req dto.RegisterRequest) outcome.Outcome[dto.AuthResponse] {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[dto.AuthResponse](opRegister, err)
	}
	generation := r.tokens.Generation()
	return r.storeToken(opRegister, generation, outcome.Execute(opRegister, func() (*transport.Response[dto.AuthResponse], error) {
		return r.gateway.Register(ctx, req)
	}))
}

func (r *authRepository) GetCurrentUser(ctx context.Context) outcome.Outcome[entity.User] {
	return outcome.Execute(opCurrentUser, func() (*transport.Response[entity.User], error) {
		return r.gateway.Me(ctx)
	})
}

func (r *authRepository) Logout() {
	r.tokens.Clear()
}

func (r *authRepository) IsAuthenticated() bool {
	return r.tokens.Active(r.now())
}

func (r *authRepository) CurrentUserID() string {
	return r.tokens.Subject()
}

// storeToken keeps the new token unless Logout ran while the request was
// in flight.
func (r *authRepository) storeToken(op outcome.Op, generation uint64, result outcome.Outcome[dto.AuthResponse]) outcome.Outcome[dto.AuthResponse] {
	resp, ok := result.Value()
	if !ok {
		return result
	}
	if resp.Token == "" {
		return outcome.Failure[dto.AuthResponse](apperror.New(apperror.KindEmpty, op.Name, msgMissingToken, nil))
	}
	if !r.tokens.SetFor(generation, resp.Token) {
		return outcome.Failure[dto.AuthResponse](apperror.New(apperror.KindTransport, op.Name, msgSessionEnded, context.Canceled))
	}
	return result
}
