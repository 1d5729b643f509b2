package models_test

import (
	"testing"

	"github.com/maccam68/caredesk/internal/models"
)

// TestAllocationStatusTransitions tests the forward-only progress path
func TestAllocationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.AllocationStatus
		want     bool
	}{
		{models.AllocationNotStarted, models.AllocationInProgress, true},
		{models.AllocationNotStarted, models.AllocationCompleted, true},
		{models.AllocationInProgress, models.AllocationCompleted, true},
		{models.AllocationInProgress, models.AllocationNotStarted, false},
		{models.AllocationCompleted, models.AllocationInProgress, false},
		{models.AllocationCompleted, models.AllocationNotStarted, false},
		{models.AllocationNotStarted, models.AllocationNotStarted, true},
		{models.AllocationCompleted, models.AllocationCompleted, true},
		{models.AllocationNotStarted, "done", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%q -> %q: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestSupervisionStatusTransitions tests the terminal-state freeze
func TestSupervisionStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.SupervisionStatus
		want     bool
	}{
		{models.SupervisionScheduled, models.SupervisionCompleted, true},
		{models.SupervisionScheduled, models.SupervisionCancelled, true},
		{models.SupervisionCompleted, models.SupervisionScheduled, false},
		{models.SupervisionCompleted, models.SupervisionCancelled, false},
		{models.SupervisionCancelled, models.SupervisionScheduled, false},
		{models.SupervisionCompleted, models.SupervisionCompleted, true},
		{models.SupervisionScheduled, "paused", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%q -> %q: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestMFHStatusTransitions tests the one-way resolution
func TestMFHStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.MFHStatus
		want     bool
	}{
		{models.MFHActive, models.MFHResolved, true},
		{models.MFHResolved, models.MFHActive, false},
		{models.MFHActive, models.MFHActive, true},
		{models.MFHResolved, models.MFHResolved, true},
		{models.MFHActive, "closed", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%q -> %q: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestStaffStatusToggled tests the active/inactive flip
func TestStaffStatusToggled(t *testing.T) {
	if models.StaffActive.Toggled() != models.StaffInactive {
		t.Error("Expected active to toggle to inactive")
	}
	if models.StaffInactive.Toggled() != models.StaffActive {
		t.Error("Expected inactive to toggle to active")
	}
}

// TestStatusValidity tests the Valid predicates
func TestStatusValidity(t *testing.T) {
	if models.ComplianceStatus("pending-review").Valid() != true {
		t.Error("Expected pending-review to be valid")
	}
	if models.ComplianceStatus("unknown").Valid() {
		t.Error("Expected unknown compliance status to be invalid")
	}
	if models.RiskLevel("medium").Valid() != true {
		t.Error("Expected medium risk to be valid")
	}
	if models.RiskLevel("severe").Valid() {
		t.Error("Expected severe risk to be invalid")
	}
	if models.Role("admin").Valid() != true {
		t.Error("Expected admin role to be valid")
	}
	if models.Role("boss").Valid() {
		t.Error("Expected boss role to be invalid")
	}
}
