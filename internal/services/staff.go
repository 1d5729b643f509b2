package services

import (
	"errors"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
)

// ListStaff returns all staff members with their child collections.
func ListStaff(db *gorm.DB) ([]models.StaffMember, error) {
	var staff []models.StaffMember
	err := db.Preload("Qualifications").
		Preload("EmploymentHistory").
		Preload("References").
		Order("id").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaff returns one staff member by id.
func GetStaff(db *gorm.DB, id uint) (*models.StaffMember, error) {
	var staff models.StaffMember
	err := db.Preload("Qualifications").
		Preload("EmploymentHistory").
		Preload("References").
		First(&staff, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &staff, nil
}

// CreateStaff adds a staff member. New records always start active.
func CreateStaff(db *gorm.DB, staff models.StaffMember) (*models.StaffMember, error) {
	if staff.Name == "" {
		return nil, &types.RequestError{Code: 400, Message: "name is required", Type: "staff.validation.input"}
	}
	staff.ID = 0
	staff.Status = models.StaffActive
	if err := db.Create(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// UpdateStaff replaces a staff record with the submitted form, including its
// child collections, which are rewritten wholesale.
func UpdateStaff(db *gorm.DB, id uint, update models.StaffMember) (*models.StaffMember, error) {
	existing, err := GetStaff(db, id)
	if err != nil {
		return nil, err
	}
	if update.Status != "" && !update.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown staff status", Type: "staff.validation.status"}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Drop the old children before writing the submitted lists.
		if err := tx.Delete(&models.Qualification{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Employment{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Reference{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}

		update.ID = id
		update.CreatedAt = existing.CreatedAt
		if update.Status == "" {
			update.Status = existing.Status
		}
		for i := range update.Qualifications {
			update.Qualifications[i].ID = 0
			update.Qualifications[i].StaffMemberID = id
		}
		for i := range update.EmploymentHistory {
			update.EmploymentHistory[i].ID = 0
			update.EmploymentHistory[i].StaffMemberID = id
		}
		for i := range update.References {
			update.References[i].ID = 0
			update.References[i].StaffMemberID = id
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&update).Error
	})
	if err != nil {
		return nil, err
	}

	return GetStaff(db, id)
}

// ToggleStaffStatus flips a staff member between active and inactive.
func ToggleStaffStatus(db *gorm.DB, id uint) (*models.StaffMember, error) {
	staff, err := GetStaff(db, id)
	if err != nil {
		return nil, err
	}
	staff.Status = staff.Status.Toggled()
	if err := db.Model(&models.StaffMember{}).
		Where("id = ?", id).
		Update("status", staff.Status).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff member and their owned children. Supervisions
// referencing the member are left in place (weak reference, no cascade).
func DeleteStaff(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Qualification{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Employment{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Reference{}, "staff_member_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.StaffMember{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

// StaffStats summarizes the roster.
type StaffStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"byRole"`
}

// GetStaffStats computes roster counts.
func GetStaffStats(db *gorm.DB) (StaffStats, error) {
	stats := StaffStats{ByRole: make(map[string]int64)}

	if err := db.Model(&models.StaffMember{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.StaffMember{}).
		Where("status = ?", models.StaffActive).
		Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	stats.Inactive = stats.Total - stats.Active

	type roleCount struct {
		Role  string
		Count int64
	}
	var byRole []roleCount
	if err := db.Model(&models.StaffMember{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&byRole).Error; err != nil {
		return stats, err
	}
	for _, rc := range byRole {
		stats.ByRole[rc.Role] = rc.Count
	}

	return stats, nil
}
