package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RSVPStatus string

const (
	RSVPGoing      RSVPStatus = "GOING"
	RSVPInterested RSVPStatus = "INTERESTED"
	RSVPNotGoing   RSVPStatus = "NOT_GOING"
)

type Event struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Location    *string   `gorm:"size:200" json:"location,omitempty"`
	IsPublic    bool      `gorm:"not null;default:false;index" json:"isPublic"`
	CreatedBy   string    `gorm:"size:36" json:"createdBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Computed per request.
	AttendeeCount int         `gorm:"-" json:"attendeeCount"`
	RSVPStatus    *RSVPStatus `gorm:"-" json:"rsvpStatus,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type EventRSVP struct {
	EventID   string     `gorm:"primaryKey;size:36" json:"eventId"`
	UserID    string     `gorm:"primaryKey;size:36" json:"userId"`
	Status    RSVPStatus `gorm:"size:20;not null" json:"status"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}
