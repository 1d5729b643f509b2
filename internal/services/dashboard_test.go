package services_test

import (
	"testing"
	"time"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
)

// TestGetDashboardSummary tests the landing-page aggregation
func TestGetDashboardSummary(t *testing.T) {
	db := setupTestDB(t)

	first, _ := services.CreateStaff(db, models.StaffMember{Name: "Alex Doe"})
	services.CreateStaff(db, models.StaffMember{Name: "Blake Roe"})
	services.ToggleStaffStatus(db, first.ID)

	module := createModule(t, db, "Safeguarding", "Mandatory")
	services.SaveAllocation(db, models.TrainingAllocation{StaffID: 1, ModuleID: module.ID, Status: models.AllocationCompleted})
	services.SaveAllocation(db, models.TrainingAllocation{StaffID: 2, ModuleID: module.ID, Status: models.AllocationCompleted})

	services.CreateMFHReport(db, models.MFHReport{Name: "Jordan", Age: 15, LastSeen: "2026-08-20T19:30", RiskLevel: models.RiskHigh})

	future := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	services.CreateSupervision(db, models.Supervision{StaffID: 2, Date: future})

	services.CreateRequirement(db, models.ComplianceRequirement{
		Category: "Leadership", Title: "Audit", Status: models.ComplianceCompliant,
	})

	summary, err := services.GetDashboardSummary(db)
	if err != nil {
		t.Fatalf("GetDashboardSummary failed: %v", err)
	}
	if summary.ActiveStaff != 1 {
		t.Errorf("Expected 1 active staff, got %d", summary.ActiveStaff)
	}
	if summary.TrainingCompliance != 100 {
		t.Errorf("Expected 100%% training compliance, got %d", summary.TrainingCompliance)
	}
	if summary.ActiveMFHReports != 1 {
		t.Errorf("Expected 1 active report, got %d", summary.ActiveMFHReports)
	}
	if summary.PendingSupervisions != 1 {
		t.Errorf("Expected 1 pending supervision, got %d", summary.PendingSupervisions)
	}
	if summary.ComplianceRate != 100 {
		t.Errorf("Expected 100%% compliance rate, got %d", summary.ComplianceRate)
	}
	if len(summary.UpcomingSupervisions) != 1 {
		t.Errorf("Expected 1 upcoming supervision, got %d", len(summary.UpcomingSupervisions))
	}
	if len(summary.RecentMFHReports) != 1 {
		t.Errorf("Expected 1 recent report, got %d", len(summary.RecentMFHReports))
	}
}

// TestDashboardUpcomingLimit tests the five-session cap
func TestDashboardUpcomingLimit(t *testing.T) {
	db := setupTestDB(t)

	for day := 1; day <= 8; day++ {
		date := time.Now().AddDate(0, 0, day).Format("2006-01-02")
		if _, err := services.CreateSupervision(db, models.Supervision{StaffID: 1, Date: date}); err != nil {
			t.Fatalf("CreateSupervision failed: %v", err)
		}
	}

	summary, err := services.GetDashboardSummary(db)
	if err != nil {
		t.Fatalf("GetDashboardSummary failed: %v", err)
	}
	if len(summary.UpcomingSupervisions) != 5 {
		t.Errorf("Expected 5 upcoming supervisions, got %d", len(summary.UpcomingSupervisions))
	}
	// Soonest first
	if len(summary.UpcomingSupervisions) > 1 &&
		summary.UpcomingSupervisions[0].Date > summary.UpcomingSupervisions[1].Date {
		t.Error("Expected upcoming supervisions ordered by date")
	}
}
