package dto

import "anoa.com/leadercircle/internal/entity"

// RSVPRequest is an upsert: answering again replaces the previous status.
type RSVPRequest struct {
	EventID string            `json:"eventId" validate:"required"`
	Status  entity.RSVPStatus `json:"status" validate:"required,oneof=GOING INTERESTED NOT_GOING"`
}
