package services

import (
	"errors"
	"time"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
)

// ListSupervisions returns supervision sessions, optionally filtered by staff
// member and/or status (zero values mean no filter).
func ListSupervisions(db *gorm.DB, staffID uint, status models.SupervisionStatus) ([]models.Supervision, error) {
	query := db.Model(&models.Supervision{})
	if staffID != 0 {
		query = query.Where("staff_id = ?", staffID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.Supervision
	if err := query.Order("date").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSupervision returns one supervision session by id.
func GetSupervision(db *gorm.DB, id uint) (*models.Supervision, error) {
	var session models.Supervision
	if err := db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// CreateSupervision schedules a new supervision session. New sessions always
// start scheduled regardless of what the caller sends.
func CreateSupervision(db *gorm.DB, session models.Supervision) (*models.Supervision, error) {
	if session.StaffID == 0 || session.Date == "" {
		return nil, &types.RequestError{Code: 400, Message: "staffId and date are required", Type: "supervision.validation.input"}
	}
	session.ID = 0
	session.Status = models.SupervisionScheduled
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSupervision replaces a session's fields. Moving a completed or
// cancelled session to any other status is rejected.
func UpdateSupervision(db *gorm.DB, id uint, update models.Supervision) (*models.Supervision, error) {
	var session models.Supervision
	if err := db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if update.Status == "" {
		update.Status = session.Status
	}
	if !update.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown supervision status", Type: "supervision.validation.status"}
	}
	if !session.Status.CanTransitionTo(update.Status) {
		return nil, types.ErrTransition(string(session.Status), string(update.Status))
	}

	update.ID = id
	update.CreatedAt = session.CreatedAt
	if err := db.Save(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// DeleteSupervision removes a session by id.
func DeleteSupervision(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Supervision{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// SupervisionStats summarizes the supervision schedule. Overdue counts
// scheduled sessions whose date is before today.
type SupervisionStats struct {
	Total     int64          `json:"total"`
	Scheduled int64          `json:"scheduled"`
	Completed int64          `json:"completed"`
	Cancelled int64          `json:"cancelled"`
	Overdue   int64          `json:"overdue"`
	ByStaff   map[uint]int64 `json:"byStaff"`
}

// GetSupervisionStats computes supervision schedule totals.
func GetSupervisionStats(db *gorm.DB) (SupervisionStats, error) {
	stats := SupervisionStats{ByStaff: map[uint]int64{}}

	if err := db.Model(&models.Supervision{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	counts := []struct {
		Status models.SupervisionStatus
		Count  int64
	}{}
	err := db.Model(&models.Supervision{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return stats, err
	}
	for _, row := range counts {
		switch row.Status {
		case models.SupervisionScheduled:
			stats.Scheduled = row.Count
		case models.SupervisionCompleted:
			stats.Completed = row.Count
		case models.SupervisionCancelled:
			stats.Cancelled = row.Count
		}
	}

	today := time.Now().Format("2006-01-02")
	err = db.Model(&models.Supervision{}).
		Where("status = ? AND date < ?", models.SupervisionScheduled, today).
		Count(&stats.Overdue).Error
	if err != nil {
		return stats, err
	}

	perStaff := []struct {
		StaffID uint
		Count   int64
	}{}
	err = db.Model(&models.Supervision{}).
		Select("staff_id, COUNT(*) as count").
		Group("staff_id").
		Scan(&perStaff).Error
	if err != nil {
		return stats, err
	}
	for _, row := range perStaff {
		stats.ByStaff[row.StaffID] = row.Count
	}

	return stats, nil
}
