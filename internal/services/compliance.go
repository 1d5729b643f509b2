package services

import (
	"errors"
	"math"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
)

// ListRequirements returns compliance requirements with their evidence and
// actions, optionally filtered by category and/or status (empty means all).
func ListRequirements(db *gorm.DB, category string, status models.ComplianceStatus) ([]models.ComplianceRequirement, error) {
	query := db.Model(&models.ComplianceRequirement{}).
		Preload("Evidence").
		Preload("Actions")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requirements []models.ComplianceRequirement
	if err := query.Order("id").Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// GetRequirement returns one requirement with its children.
func GetRequirement(db *gorm.DB, id uint) (*models.ComplianceRequirement, error) {
	var requirement models.ComplianceRequirement
	err := db.Preload("Evidence").Preload("Actions").First(&requirement, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &requirement, nil
}

// CreateRequirement adds a requirement with its child lists.
func CreateRequirement(db *gorm.DB, requirement models.ComplianceRequirement) (*models.ComplianceRequirement, error) {
	if requirement.Category == "" || requirement.Title == "" {
		return nil, &types.RequestError{Code: 400, Message: "category and title are required", Type: "compliance.validation.input"}
	}
	if requirement.Status == "" {
		requirement.Status = models.CompliancePendingReview
	}
	if !requirement.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown compliance status", Type: "compliance.validation.status"}
	}

	requirement.ID = 0
	for i := range requirement.Evidence {
		requirement.Evidence[i].ID = 0
	}
	for i := range requirement.Actions {
		requirement.Actions[i].ID = 0
		if requirement.Actions[i].Status == "" {
			requirement.Actions[i].Status = models.ActionPending
		}
	}

	if err := db.Create(&requirement).Error; err != nil {
		return nil, err
	}
	return &requirement, nil
}

// UpdateRequirement replaces a requirement and its child lists wholesale.
func UpdateRequirement(db *gorm.DB, id uint, update models.ComplianceRequirement) (*models.ComplianceRequirement, error) {
	var requirement models.ComplianceRequirement
	if err := db.First(&requirement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if update.Status == "" {
		update.Status = requirement.Status
	}
	if !update.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown compliance status", Type: "compliance.validation.status"}
	}
	for i := range update.Actions {
		if update.Actions[i].Status == "" {
			update.Actions[i].Status = models.ActionPending
		}
		if !update.Actions[i].Status.Valid() {
			return nil, &types.RequestError{Code: 400, Message: "unknown action status", Type: "compliance.validation.action"}
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Evidence{}, "requirement_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ComplianceAction{}, "requirement_id = ?", id).Error; err != nil {
			return err
		}

		update.ID = id
		update.CreatedAt = requirement.CreatedAt
		for i := range update.Evidence {
			update.Evidence[i].ID = 0
			update.Evidence[i].RequirementID = id
		}
		for i := range update.Actions {
			update.Actions[i].ID = 0
			update.Actions[i].RequirementID = id
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&update).Error
	})
	if err != nil {
		return nil, err
	}

	return GetRequirement(db, id)
}

// DeleteRequirement removes a requirement and its children.
func DeleteRequirement(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Evidence{}, "requirement_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ComplianceAction{}, "requirement_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ComplianceRequirement{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

// ComplianceStats summarizes the regulatory checklist. ComplianceRate is the
// percentage of compliant requirements, zero when the checklist is empty.
type ComplianceStats struct {
	Total          int64            `json:"total"`
	Compliant      int64            `json:"compliant"`
	NonCompliant   int64            `json:"nonCompliant"`
	PendingReview  int64            `json:"pendingReview"`
	InProgress     int64            `json:"inProgress"`
	ComplianceRate int              `json:"complianceRate"`
	ByCategory     map[string]int64 `json:"byCategory"`
}

// GetComplianceStats computes checklist totals and the compliance rate.
func GetComplianceStats(db *gorm.DB) (ComplianceStats, error) {
	stats := ComplianceStats{ByCategory: map[string]int64{}}

	counts := []struct {
		Status models.ComplianceStatus
		Count  int64
	}{}
	err := db.Model(&models.ComplianceRequirement{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return stats, err
	}
	for _, row := range counts {
		stats.Total += row.Count
		switch row.Status {
		case models.ComplianceCompliant:
			stats.Compliant = row.Count
		case models.ComplianceNonCompliant:
			stats.NonCompliant = row.Count
		case models.CompliancePendingReview:
			stats.PendingReview = row.Count
		case models.ComplianceInProgress:
			stats.InProgress = row.Count
		}
	}
	if stats.Total > 0 {
		stats.ComplianceRate = int(math.Round(float64(stats.Compliant) / float64(stats.Total) * 100))
	}

	perCategory := []struct {
		Category string
		Count    int64
	}{}
	err = db.Model(&models.ComplianceRequirement{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&perCategory).Error
	if err != nil {
		return stats, err
	}
	for _, row := range perCategory {
		stats.ByCategory[row.Category] = row.Count
	}

	return stats, nil
}
