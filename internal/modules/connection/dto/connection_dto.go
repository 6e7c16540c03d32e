package dto

import "anoa.com/leadercircle/internal/entity"

type CreateConnectionRequest struct {
	TargetID string                `json:"targetId" validate:"required"`
	Type     entity.ConnectionType `json:"type" validate:"required,oneof=CONNECT MENTORSHIP"`
	Message  *string               `json:"message,omitempty" validate:"omitempty,max=500"`
}

// UpdateConnectionRequest answers a pending request. PENDING is not a valid answer.
type UpdateConnectionRequest struct {
	Status entity.ConnectionStatus `json:"status" validate:"required,oneof=ACCEPTED DECLINED"`
}
