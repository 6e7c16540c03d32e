package repository

import (
	"context"
	"strings"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
	"anoa.com/leadercircle/internal/modules/connection/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
	"anoa.com/leadercircle/pkg/validator"
)

var (
	opCreate   = outcome.Op{Name: "Send connection request", Entity: "Connection"}
	opUpdate   = outcome.Op{Name: "Update connection", Entity: "Connection"}
	opPending  = outcome.Op{Name: "Load pending connections", Entity: "Connections"}
	opAccepted = outcome.Op{Name: "Load connections", Entity: "Connections"}
)

type ConnectionRepository interface {
	CreateConnection(ctx context.Context, req dto.CreateConnectionRequest) outcome.Outcome[entity.Connection]
	UpdateConnectionStatus(ctx context.Context, id string, status entity.ConnectionStatus) outcome.Outcome[entity.Connection]
	GetPendingConnections(ctx context.Context) outcome.Outcome[[]entity.Connection]
	GetAcceptedConnections(ctx context.Context) outcome.Outcome[[]entity.Connection]
}

type connectionRepository struct {
	gateway gateway.Gateway
}

func NewConnectionRepository(gw gateway.Gateway) ConnectionRepository {
	return &connectionRepository{gateway: gw}
}

func (r *connectionRepository) CreateConnection(ctx context.Context, req dto.CreateConnectionRequest) outcome.Outcome[entity.Connection] {
	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		req.Message = &msg
		if msg == "" {
			req.Message = nil
		}
	}
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[entity.Connection](opCreate, err)
	}
	return outcome.Execute(opCreate, func() (*transport.Response[entity.Connection], error) {
		return r.gateway.Create(ctx, req)
	})
}

func (r *connectionRepository) UpdateConnectionStatus(ctx context.Context, id string, status entity.ConnectionStatus) outcome.Outcome[entity.Connection] {
	req := dto.UpdateConnectionRequest{Status: status}
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[entity.Connection](opUpdate, err)
	}
	return outcome.Execute(opUpdate, func() (*transport.Response[entity.Connection], error) {
		return r.gateway.Update(ctx, id, req)
	})
}

// GetPendingConnections returns requests awaiting the current user's answer.
func (r *connectionRepository) GetPendingConnections(ctx context.Context) outcome.Outcome[[]entity.Connection] {
	return outcome.Execute(opPending, func() (*transport.Response[[]entity.Connection], error) {
		return r.gateway.Pending(ctx)
	})
}

func (r *connectionRepository) GetAcceptedConnections(ctx context.Context) outcome.Outcome[[]entity.Connection] {
	return outcome.Execute(opAccepted, func() (*transport.Response[[]entity.Connection], error) {
		return r.gateway.Accepted(ctx)
	})
}
