package services_test

import (
	"errors"
	"testing"

	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/types"
)

func newMFHReport(name string) models.MFHReport {
	return models.MFHReport{
		Name:        name,
		Age:         15,
		LastSeen:    "2026-08-20T19:30",
		Location:    "Town centre",
		RiskLevel:   models.RiskHigh,
		Description: "Did not return after school",
		ContactInfo: "Keyworker on shift",
	}
}

// TestCreateMFHReportStartsActive tests that caller-sent status and return
// fields are discarded on create
func TestCreateMFHReportStartsActive(t *testing.T) {
	db := setupTestDB(t)

	input := newMFHReport("Jordan")
	input.Status = models.MFHResolved
	input.ReturnDate = "2026-08-21T02:00"
	input.FoundBy = "Police"

	created, err := services.CreateMFHReport(db, input)
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}
	if created.Status != models.MFHActive {
		t.Errorf("Expected active, got %q", created.Status)
	}
	if created.ReturnDate != "" || created.FoundBy != "" {
		t.Error("Expected return fields cleared on create")
	}

	if _, err := services.CreateMFHReport(db, models.MFHReport{Name: "x"}); err == nil {
		t.Error("Expected error for missing lastSeen")
	}
	bad := newMFHReport("x")
	bad.RiskLevel = "severe"
	if _, err := services.CreateMFHReport(db, bad); err == nil {
		t.Error("Expected error for unknown risk level")
	}
}

// TestMarkReturned tests resolution with return details
func TestMarkReturned(t *testing.T) {
	db := setupTestDB(t)

	created, err := services.CreateMFHReport(db, newMFHReport("Jordan"))
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}

	resolved, err := services.MarkReturned(db, created.ID, services.ReturnDetails{
		ReturnDate:          "2026-08-21T02:15",
		ReturnLocation:      "Front door",
		ReturnCircumstances: "Returned voluntarily",
		FoundBy:             "Night staff",
		PhysicalCondition:   "Unharmed",
		MentalState:         "Tired, calm",
		FollowUpActions:     []string{"Debrief with keyworker", "Notify social worker"},
	})
	if err != nil {
		t.Fatalf("MarkReturned failed: %v", err)
	}
	if resolved.Status != models.MFHResolved {
		t.Errorf("Expected resolved, got %q", resolved.Status)
	}
	if resolved.FoundBy != "Night staff" || len(resolved.FollowUpActions) != 2 {
		t.Error("Expected return details recorded")
	}
	// Base incident fields untouched
	if resolved.Name != "Jordan" || resolved.LastSeen != "2026-08-20T19:30" {
		t.Error("Expected base incident fields unchanged")
	}

	// Resolving twice is a transition conflict
	_, err = services.MarkReturned(db, created.ID, services.ReturnDetails{ReturnDate: "2026-08-22T02:15"})
	var reqErr *types.RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != 409 {
		t.Errorf("Expected 409 for double resolution, got %v", err)
	}
}

// TestMarkReturnedRequiresDate tests the return-date validation
func TestMarkReturnedRequiresDate(t *testing.T) {
	db := setupTestDB(t)

	created, err := services.CreateMFHReport(db, newMFHReport("Jordan"))
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}

	_, err = services.MarkReturned(db, created.ID, services.ReturnDetails{FoundBy: "Police"})
	var reqErr *types.RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != 400 {
		t.Errorf("Expected 400 for missing returnDate, got %v", err)
	}
}

// TestUpdateMFHReportNoReopen tests that resolved reports cannot reopen
func TestUpdateMFHReportNoReopen(t *testing.T) {
	db := setupTestDB(t)

	created, err := services.CreateMFHReport(db, newMFHReport("Jordan"))
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}
	if _, err := services.MarkReturned(db, created.ID, services.ReturnDetails{ReturnDate: "2026-08-21T02:15"}); err != nil {
		t.Fatalf("MarkReturned failed: %v", err)
	}

	update := newMFHReport("Jordan")
	update.Status = models.MFHActive
	_, err = services.UpdateMFHReport(db, created.ID, update)
	var reqErr *types.RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != 409 {
		t.Errorf("Expected 409 for reopening, got %v", err)
	}
}

// TestUpdateMFHReportResolvedKeepsReturnDate tests that direct edits cannot
// produce a resolved report without a return date
func TestUpdateMFHReportResolvedKeepsReturnDate(t *testing.T) {
	db := setupTestDB(t)

	created, err := services.CreateMFHReport(db, newMFHReport("Jordan"))
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}

	// Resolving via edit without a return date is rejected
	update := newMFHReport("Jordan")
	update.Status = models.MFHResolved
	_, err = services.UpdateMFHReport(db, created.ID, update)
	var reqErr *types.RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != 400 {
		t.Errorf("Expected 400 for resolving without returnDate, got %v", err)
	}

	if _, err := services.MarkReturned(db, created.ID, services.ReturnDetails{ReturnDate: "2026-08-21T02:15"}); err != nil {
		t.Fatalf("MarkReturned failed: %v", err)
	}

	// A resolved re-save without the return date must not blank it
	blanking := newMFHReport("Jordan")
	blanking.Status = models.MFHResolved
	_, err = services.UpdateMFHReport(db, created.ID, blanking)
	if !errors.As(err, &reqErr) || reqErr.Code != 400 {
		t.Errorf("Expected 400 for blanking returnDate, got %v", err)
	}
	current, err := services.GetMFHReport(db, created.ID)
	if err != nil {
		t.Fatalf("GetMFHReport failed: %v", err)
	}
	if current.ReturnDate != "2026-08-21T02:15" {
		t.Errorf("Expected return date preserved, got %q", current.ReturnDate)
	}

	// A resolved re-save that carries the return date can amend other fields
	amend := newMFHReport("Jordan")
	amend.Status = models.MFHResolved
	amend.ReturnDate = "2026-08-21T02:15"
	amend.Description = "Did not return after school; found at a friend's house"
	updated, err := services.UpdateMFHReport(db, created.ID, amend)
	if err != nil {
		t.Fatalf("UpdateMFHReport failed: %v", err)
	}
	if updated.Description != amend.Description {
		t.Error("Expected amended description saved")
	}
}

// TestGetMFHStats tests report aggregation and response time
func TestGetMFHStats(t *testing.T) {
	db := setupTestDB(t)

	first, _ := services.CreateMFHReport(db, newMFHReport("Jordan"))
	low := newMFHReport("Sam")
	low.RiskLevel = models.RiskLow
	services.CreateMFHReport(db, low)

	// Resolved 4h45m after last seen
	if _, err := services.MarkReturned(db, first.ID, services.ReturnDetails{
		ReturnDate: "2026-08-21T00:15",
	}); err != nil {
		t.Fatalf("MarkReturned failed: %v", err)
	}

	stats, err := services.GetMFHStats(db)
	if err != nil {
		t.Fatalf("GetMFHStats failed: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Resolved != 1 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.HighRisk != 1 {
		t.Errorf("Expected 1 high risk, got %d", stats.HighRisk)
	}
	if stats.AvgResponseMinutes != 285 {
		t.Errorf("Expected 285 minutes average, got %d", stats.AvgResponseMinutes)
	}
}
