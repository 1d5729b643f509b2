package services

import (
	"time"

	"github.com/maccam68/caredesk/internal/models"
	"gorm.io/gorm"
)

// DashboardSummary is the landing-page snapshot.
type DashboardSummary struct {
	ActiveStaff          int64                `json:"activeStaff"`
	TrainingCompliance   int                  `json:"trainingCompliance"`
	ActiveMFHReports     int64                `json:"activeMfhReports"`
	PendingSupervisions  int64                `json:"pendingSupervisions"`
	ComplianceRate       int                  `json:"complianceRate"`
	UpcomingSupervisions []models.Supervision `json:"upcomingSupervisions"`
	RecentMFHReports     []models.MFHReport   `json:"recentMfhReports"`
}

// GetDashboardSummary assembles the dashboard figures from the other
// aggregates. Upcoming supervisions are the next five scheduled sessions from
// today onward; recent reports are the five most recently raised.
func GetDashboardSummary(db *gorm.DB) (DashboardSummary, error) {
	summary := DashboardSummary{
		UpcomingSupervisions: []models.Supervision{},
		RecentMFHReports:     []models.MFHReport{},
	}

	err := db.Model(&models.StaffMember{}).
		Where("status = ?", models.StaffActive).
		Count(&summary.ActiveStaff).Error
	if err != nil {
		return summary, err
	}

	training, err := GetTrainingStats(db)
	if err != nil {
		return summary, err
	}
	summary.TrainingCompliance = training.CompliancePercent

	err = db.Model(&models.MFHReport{}).
		Where("status = ?", models.MFHActive).
		Count(&summary.ActiveMFHReports).Error
	if err != nil {
		return summary, err
	}

	err = db.Model(&models.Supervision{}).
		Where("status = ?", models.SupervisionScheduled).
		Count(&summary.PendingSupervisions).Error
	if err != nil {
		return summary, err
	}

	compliance, err := GetComplianceStats(db)
	if err != nil {
		return summary, err
	}
	summary.ComplianceRate = compliance.ComplianceRate

	today := time.Now().Format("2006-01-02")
	err = db.Where("status = ? AND date >= ?", models.SupervisionScheduled, today).
		Order("date").
		Limit(5).
		Find(&summary.UpcomingSupervisions).Error
	if err != nil {
		return summary, err
	}

	err = db.Order("created_at DESC").
		Limit(5).
		Find(&summary.RecentMFHReports).Error
	if err != nil {
		return summary, err
	}

	return summary, nil
}
