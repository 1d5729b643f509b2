package database

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/maccam68/caredesk/data"
	"github.com/maccam68/caredesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Master admin account created on first startup so the operator can log in.
const (
	masterUsername = "Maccam68"
	masterPin      = "13121"
	masterName     = "Master Admin"
	masterEmail    = "admin@example.com"
)

// Seed creates the master admin account and the baseline compliance
// requirements when they are missing. It is idempotent.
func Seed(db *gorm.DB) error {
	if err := seedMasterUser(db); err != nil {
		return err
	}
	return seedComplianceSections(db)
}

func seedMasterUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ?", masterUsername).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for master user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(masterPin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash master pin: %w", err)
	}

	user := models.User{
		Username: masterUsername,
		Pin:      string(hashed),
		Role:     models.RoleAdmin,
		Name:     masterName,
		Email:    masterEmail,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed master user: %w", err)
	}

	log.Printf("Seeded master user %q", masterUsername)
	return nil
}

type seedRequirement struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Actions     []string `json:"actions"`
}

func seedComplianceSections(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ComplianceRequirement{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count compliance requirements: %w", err)
	}
	if count > 0 {
		return nil
	}

	var seeds []seedRequirement
	if err := json.Unmarshal(data.SeedComplianceSections, &seeds); err != nil {
		return fmt.Errorf("failed to parse compliance seed data: %w", err)
	}

	for _, s := range seeds {
		req := models.ComplianceRequirement{
			Category:    s.Category,
			Title:       s.Title,
			Description: s.Description,
			Status:      models.ComplianceStatus(s.Status),
		}
		for _, action := range s.Actions {
			req.Actions = append(req.Actions, models.ComplianceAction{
				Description: action,
				Status:      models.ActionPending,
			})
		}
		if err := db.Create(&req).Error; err != nil {
			return fmt.Errorf("failed to seed compliance requirement %q: %w", s.Title, err)
		}
	}

	log.Printf("Seeded %d compliance requirements", len(seeds))
	return nil
}
