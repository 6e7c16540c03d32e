package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is fixed at registration and gates which screens a member can use.
type Role string

const (
	RoleApplicant   Role = "APPLICANT"
	RoleParticipant Role = "PARTICIPANT"
	RoleAlumna      Role = "ALUMNA"
	RoleMentor      Role = "MENTOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleParticipant, RoleAlumna, RoleMentor:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;index" json:"role"`
	CohortID     *string   `gorm:"size:36;index" json:"cohortId,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	Profile      *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayName falls back to the email when no profile is attached.
func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.FullName != "" {
		return u.Profile.FullName
	}
	return u.Email
}

type Profile struct {
	UserID      string    `gorm:"primaryKey;size:36" json:"userId"`
	FullName    string    `gorm:"size:100;not null" json:"fullName"`
	Position    *string   `gorm:"size:100" json:"position,omitempty"`
	Company     *string   `gorm:"size:100" json:"company,omitempty"`
	Bio         *string   `gorm:"type:text" json:"bio,omitempty"`
	ImageURL    *string   `gorm:"type:text" json:"imageUrl,omitempty"`
	LinkedInURL *string   `gorm:"type:text" json:"linkedinUrl,omitempty"`
	WebsiteURL  *string   `gorm:"type:text" json:"websiteUrl,omitempty"`
	Skills      []string  `gorm:"serializer:json" json:"skills"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
