package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const localIDPrefix = "local-"

// LocalID names a message that so far exists only on this device. It never
// shares a namespace with server ids: a server message always has an empty LocalID.
type LocalID string

func NewLocalID() LocalID {
	return LocalID(localIDPrefix + uuid.NewString())
}

func (id LocalID) Valid() bool {
	return strings.HasPrefix(string(id), localIDPrefix)
}

type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"size:36;index;not null" json:"senderId"`
	ReceiverID string    `gorm:"size:36;index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	SentAt     time.Time `gorm:"index" json:"sentAt"`
	IsRead     bool      `gorm:"not null;default:false" json:"isRead"`

	LocalID LocalID `gorm:"-" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	return nil
}

// IsPending reports whether the message is an unconfirmed optimistic placeholder.
func (m Message) IsPending() bool {
	return m.LocalID != ""
}

// Counterpart returns the other participant of the conversation seen from userID.
func (m Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
