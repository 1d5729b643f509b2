package services

import (
	"errors"
	"math"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ModuleView is a training module with its completion counts derived from the
// allocation set at read time. The counts are never stored, so they cannot
// drift from the allocations.
type ModuleView struct {
	models.TrainingModule
	CompletedBy int64 `json:"completedBy"`
	TotalStaff  int64 `json:"totalStaff"`
}

// ListModules returns all training modules with derived completion counts.
func ListModules(db *gorm.DB) ([]ModuleView, error) {
	var modules []models.TrainingModule
	if err := db.Order("id").Find(&modules).Error; err != nil {
		return nil, err
	}

	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		view, err := moduleView(db, m)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetModule returns one module with derived completion counts.
func GetModule(db *gorm.DB, id uint) (*ModuleView, error) {
	var module models.TrainingModule
	if err := db.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	view, err := moduleView(db, module)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func moduleView(db *gorm.DB, module models.TrainingModule) (ModuleView, error) {
	view := ModuleView{TrainingModule: module}
	err := db.Model(&models.TrainingAllocation{}).
		Where("module_id = ?", module.ID).
		Count(&view.TotalStaff).Error
	if err != nil {
		return view, err
	}
	err = db.Model(&models.TrainingAllocation{}).
		Where("module_id = ? AND status = ?", module.ID, models.AllocationCompleted).
		Count(&view.CompletedBy).Error
	return view, err
}

// CreateModule adds a training module.
func CreateModule(db *gorm.DB, module models.TrainingModule) (*models.TrainingModule, error) {
	if module.Title == "" || module.Category == "" {
		return nil, &types.RequestError{Code: 400, Message: "title and category are required", Type: "training.validation.input"}
	}
	module.ID = 0
	if err := db.Create(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// UpdateModule replaces a module's fields by id.
func UpdateModule(db *gorm.DB, id uint, update models.TrainingModule) (*models.TrainingModule, error) {
	var module models.TrainingModule
	if err := db.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	update.ID = id
	update.CreatedAt = module.CreatedAt
	if err := db.Save(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// DeleteModule removes a module and its allocations.
func DeleteModule(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TrainingAllocation{}, "module_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TrainingModule{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

// ListAllocations returns allocations, optionally filtered by module and/or
// staff member (zero means no filter).
func ListAllocations(db *gorm.DB, moduleID, staffID uint) ([]models.TrainingAllocation, error) {
	query := db.Model(&models.TrainingAllocation{})
	if moduleID != 0 {
		query = query.Where("module_id = ?", moduleID)
	}
	if staffID != 0 {
		query = query.Where("staff_id = ?", staffID)
	}

	var allocations []models.TrainingAllocation
	if err := query.Order("staff_id").Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// SaveAllocation upserts an allocation by its (staff, module) pair. A first
// save creates the record; later saves update it in place, subject to the
// forward-only status transition rule.
func SaveAllocation(db *gorm.DB, input models.TrainingAllocation) (*models.TrainingAllocation, error) {
	if input.StaffID == 0 || input.ModuleID == 0 {
		return nil, &types.RequestError{Code: 400, Message: "staffId and moduleId are required", Type: "training.validation.input"}
	}
	if !input.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown allocation status", Type: "training.validation.status"}
	}

	var existing models.TrainingAllocation
	err := db.Where("staff_id = ? AND module_id = ?", input.StaffID, input.ModuleID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		input.ID = 0
		if err := db.Create(&input).Error; err != nil {
			return nil, err
		}
		return &input, nil
	}

	if !existing.Status.CanTransitionTo(input.Status) {
		return nil, types.ErrTransition(string(existing.Status), string(input.Status))
	}

	existing.Status = input.Status
	existing.StartDate = input.StartDate
	existing.CompletionDate = input.CompletionDate
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteAllocation removes the allocation for a (staff, module) pair.
func DeleteAllocation(db *gorm.DB, staffID, moduleID uint) error {
	result := db.Delete(&models.TrainingAllocation{},
		"staff_id = ? AND module_id = ?", staffID, moduleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// CategoryStats summarizes one training category.
type CategoryStats struct {
	Category         string `json:"category"`
	Modules          int64  `json:"modules"`
	TotalAllocations int64  `json:"totalAllocations"`
	Completed        int64  `json:"completed"`
	CompletionRate   int    `json:"completionRate"`
}

// TrainingStats is the aggregate training picture.
type TrainingStats struct {
	TotalModules      int64           `json:"totalModules"`
	TotalAllocations  int64           `json:"totalAllocations"`
	CompliancePercent int             `json:"compliancePercent"`
	ByCategory        []CategoryStats `json:"byCategory"`
}

// GetTrainingStats computes the overall training compliance figure and the
// per-category breakdown. Overall compliance is the mean of each module's
// completed/total ratio; modules with no allocations contribute zero.
func GetTrainingStats(db *gorm.DB) (TrainingStats, error) {
	stats := TrainingStats{ByCategory: []CategoryStats{}}

	modules, err := ListModules(db)
	if err != nil {
		return stats, err
	}
	stats.TotalModules = int64(len(modules))

	if err := db.Model(&models.TrainingAllocation{}).
		Clauses(hints.Comment("select", "training stats")).
		Count(&stats.TotalAllocations).Error; err != nil {
		return stats, err
	}

	if len(modules) > 0 {
		var ratioSum float64
		for _, m := range modules {
			if m.TotalStaff > 0 {
				ratioSum += float64(m.CompletedBy) / float64(m.TotalStaff)
			}
		}
		stats.CompliancePercent = int(math.Round(ratioSum / float64(len(modules)) * 100))
	}

	byCategory := make(map[string]*CategoryStats)
	order := []string{}
	for _, m := range modules {
		cs, ok := byCategory[m.Category]
		if !ok {
			cs = &CategoryStats{Category: m.Category}
			byCategory[m.Category] = cs
			order = append(order, m.Category)
		}
		cs.Modules++
		cs.TotalAllocations += m.TotalStaff
		cs.Completed += m.CompletedBy
	}
	for _, category := range order {
		cs := byCategory[category]
		if cs.TotalAllocations > 0 {
			cs.CompletionRate = int(math.Round(float64(cs.Completed) / float64(cs.TotalAllocations) * 100))
		}
		stats.ByCategory = append(stats.ByCategory, *cs)
	}

	return stats, nil
}
