package devapi

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/pkg/logger"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Event{},
		&entity.EventRSVP{},
		&entity.Resource{},
		&entity.Connection{},
		&entity.Message{},
	)
}

const seedPassword = "password123"

// Seed fills an empty database with a mentor, a participant, a few events
// and resources. It does nothing once any user exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info().Msg("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	cohort := "2025-spring"
	module := "Module 1"
	location := "Jakarta"
	now := time.Now().UTC()

	mentor := entity.User{
		Email:        "mentor@leadercircle.dev",
		PasswordHash: string(hash),
		Role:         entity.RoleMentor,
		Profile: &entity.Profile{
			FullName: "Maya Mentor",
			Skills:   []string{"Leadership", "Negotiation"},
		},
	}
	participant := entity.User{
		Email:        "participant@leadercircle.dev",
		PasswordHash: string(hash),
		Role:         entity.RoleParticipant,
		CohortID:     &cohort,
		Profile: &entity.Profile{
			FullName: "Putri Participant",
			Skills:   []string{"Finance"},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []*entity.User{&mentor, &participant} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		events := []entity.Event{
			{Title: "Cohort kickoff", Description: "Meet your cohort and mentors.", Date: now.Add(7 * 24 * time.Hour), Location: &location, IsPublic: true, CreatedBy: mentor.ID},
			{Title: "Negotiation workshop", Description: "Hands-on practice.", Date: now.Add(14 * 24 * time.Hour), IsPublic: false, CreatedBy: mentor.ID},
			{Title: "Alumnae dinner", Description: "Past event.", Date: now.Add(-30 * 24 * time.Hour), Location: &location, IsPublic: true, CreatedBy: mentor.ID},
		}
		if err := tx.Create(&events).Error; err != nil {
			return err
		}

		resources := []entity.Resource{
			{Title: "Leadership handbook", Description: "Core reading for every cohort.", Type: entity.ResourceTypePDF, URL: "https://example.com/handbook.pdf", Module: &module},
			{Title: "Negotiation basics", Description: "Recorded session.", Type: entity.ResourceTypeVideo, URL: "https://example.com/negotiation", Module: &module,
				TargetRoles: []entity.Role{entity.RoleParticipant, entity.RoleMentor}},
			{Title: "Mentor guide", Description: "How to run mentorship sessions.", Type: entity.ResourceTypeLink, URL: "https://example.com/mentor-guide",
				TargetRoles: []entity.Role{entity.RoleMentor}},
		}
		if err := tx.Create(&resources).Error; err != nil {
			return err
		}

		logger.Info().
			Str("mentor", mentor.Email).
			Str("participant", participant.Email).
			Msg("seeded development data")
		return nil
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
