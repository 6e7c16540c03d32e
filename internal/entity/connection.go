package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionType string

const (
	ConnectionTypeConnect    ConnectionType = "CONNECT"
	ConnectionTypeMentorship ConnectionType = "MENTORSHIP"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "PENDING"
	ConnectionStatusAccepted ConnectionStatus = "ACCEPTED"
	ConnectionStatusDeclined ConnectionStatus = "DECLINED"
)

// IsTerminal is true once the request has been answered.
func (s ConnectionStatus) IsTerminal() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusDeclined
}

type Connection struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	RequesterID string           `gorm:"size:36;index;not null" json:"requesterId"`
	TargetID    string           `gorm:"size:36;index;not null" json:"targetId"`
	Type        ConnectionType   `gorm:"size:20;not null" json:"type"`
	Status      ConnectionStatus `gorm:"size:20;not null;index" json:"status"`
	Message     *string          `gorm:"type:text" json:"message,omitempty"`
	RequestedAt time.Time        `json:"requestedAt"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Target    *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.RequestedAt.IsZero() {
		c.RequestedAt = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = ConnectionStatusPending
	}
	return nil
}
