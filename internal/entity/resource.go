package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceType string

const (
	ResourceTypePDF   ResourceType = "PDF"
	ResourceTypeVideo ResourceType = "VIDEO"
	ResourceTypeLink  ResourceType = "LINK"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypePDF, ResourceTypeVideo, ResourceTypeLink:
		return true
	}
	return false
}

// Resource is learning content. TargetRoles lists the roles allowed to see it;
// an empty list means everyone.
type Resource struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Type        ResourceType `gorm:"size:10;not null;index" json:"type"`
	URL         string       `gorm:"type:text;not null" json:"url"`
	TargetRoles []Role       `gorm:"serializer:json" json:"targetRoles"`
	Module      *string      `gorm:"size:100;index" json:"module,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Resource) VisibleTo(role Role) bool {
	if len(r.TargetRoles) == 0 {
		return true
	}
	for _, target := range r.TargetRoles {
		if target == role {
			return true
		}
	}
	return false
}
