package services

import (
	"errors"
	"math"
	"time"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
)

// ReturnDetails is the information recorded when a missing person returns.
type ReturnDetails struct {
	ReturnDate          string   `json:"returnDate"`
	ReturnLocation      string   `json:"returnLocation"`
	ReturnCircumstances string   `json:"returnCircumstances"`
	FoundBy             string   `json:"foundBy"`
	PhysicalCondition   string   `json:"physicalCondition"`
	MentalState         string   `json:"mentalState"`
	FollowUpActions     []string `json:"followUpActions"`
}

// ListMFHReports returns missing-from-home reports, optionally filtered by
// status (empty means all).
func ListMFHReports(db *gorm.DB, status models.MFHStatus) ([]models.MFHReport, error) {
	query := db.Model(&models.MFHReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.MFHReport
	if err := query.Order("last_seen DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// GetMFHReport returns one report by id.
func GetMFHReport(db *gorm.DB, id uint) (*models.MFHReport, error) {
	var report models.MFHReport
	if err := db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// CreateMFHReport opens a new report. New reports are always active with
// empty return details regardless of what the caller sends.
func CreateMFHReport(db *gorm.DB, report models.MFHReport) (*models.MFHReport, error) {
	if report.Name == "" || report.LastSeen == "" {
		return nil, &types.RequestError{Code: 400, Message: "name and lastSeen are required", Type: "mfh.validation.input"}
	}
	if !report.RiskLevel.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown risk level", Type: "mfh.validation.risk"}
	}

	report.ID = 0
	report.Status = models.MFHActive
	report.ReturnDate = ""
	report.ReturnLocation = ""
	report.ReturnCircumstances = ""
	report.FoundBy = ""
	report.PhysicalCondition = ""
	report.MentalState = ""
	report.FollowUpActions = nil

	if err := db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateMFHReport replaces a report's fields. Reopening a resolved report is
// rejected.
func UpdateMFHReport(db *gorm.DB, id uint, update models.MFHReport) (*models.MFHReport, error) {
	var report models.MFHReport
	if err := db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if update.Status == "" {
		update.Status = report.Status
	}
	if !update.Status.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown report status", Type: "mfh.validation.status"}
	}
	if !report.Status.CanTransitionTo(update.Status) {
		return nil, types.ErrTransition(string(report.Status), string(update.Status))
	}
	if !update.RiskLevel.Valid() {
		return nil, &types.RequestError{Code: 400, Message: "unknown risk level", Type: "mfh.validation.risk"}
	}
	// Resolved reports must carry a return date, whether resolving via edit
	// or re-saving an already resolved report.
	if update.Status == models.MFHResolved && update.ReturnDate == "" {
		return nil, &types.RequestError{Code: 400, Message: "returnDate is required", Type: "mfh.validation.return"}
	}

	update.ID = id
	update.CreatedAt = report.CreatedAt
	if err := db.Save(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// MarkReturned resolves an active report and records the return details.
// Only the return fields and the status change; the base incident record is
// left as reported.
func MarkReturned(db *gorm.DB, id uint, details ReturnDetails) (*models.MFHReport, error) {
	var report models.MFHReport
	if err := db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if report.Status != models.MFHActive {
		return nil, types.ErrTransition(string(report.Status), string(models.MFHResolved))
	}
	if details.ReturnDate == "" {
		return nil, &types.RequestError{Code: 400, Message: "returnDate is required", Type: "mfh.validation.return"}
	}

	report.Status = models.MFHResolved
	report.ReturnDate = details.ReturnDate
	report.ReturnLocation = details.ReturnLocation
	report.ReturnCircumstances = details.ReturnCircumstances
	report.FoundBy = details.FoundBy
	report.PhysicalCondition = details.PhysicalCondition
	report.MentalState = details.MentalState
	report.FollowUpActions = details.FollowUpActions

	if err := db.Save(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteMFHReport removes a report by id.
func DeleteMFHReport(db *gorm.DB, id uint) error {
	result := db.Delete(&models.MFHReport{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// MFHStats summarizes the report book. AvgResponseMinutes is the mean
// interval between last-seen and return across resolved reports that carry
// parseable timestamps.
type MFHStats struct {
	Total              int64 `json:"total"`
	Active             int64 `json:"active"`
	Resolved           int64 `json:"resolved"`
	HighRisk           int64 `json:"highRisk"`
	AvgResponseMinutes int   `json:"avgResponseMinutes"`
}

// GetMFHStats computes report totals and the average response time.
func GetMFHStats(db *gorm.DB) (MFHStats, error) {
	var stats MFHStats

	if err := db.Model(&models.MFHReport{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.MFHReport{}).
		Where("status = ?", models.MFHActive).
		Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	stats.Resolved = stats.Total - stats.Active

	if err := db.Model(&models.MFHReport{}).
		Where("risk_level = ?", models.RiskHigh).
		Count(&stats.HighRisk).Error; err != nil {
		return stats, err
	}

	var resolved []models.MFHReport
	err := db.Where("status = ? AND return_date <> ''", models.MFHResolved).
		Find(&resolved).Error
	if err != nil {
		return stats, err
	}

	var totalMinutes float64
	var measured int
	for _, r := range resolved {
		lastSeen, err := parseFormTime(r.LastSeen)
		if err != nil {
			continue
		}
		returned, err := parseFormTime(r.ReturnDate)
		if err != nil || returned.Before(lastSeen) {
			continue
		}
		totalMinutes += returned.Sub(lastSeen).Minutes()
		measured++
	}
	if measured > 0 {
		stats.AvgResponseMinutes = int(math.Round(totalMinutes / float64(measured)))
	}

	return stats, nil
}

// parseFormTime accepts the datetime-local and plain date formats the forms
// produce.
func parseFormTime(value string) (time.Time, error) {
	layouts := []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
