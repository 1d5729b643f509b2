package models

import (
	"time"

	"gorm.io/datatypes"
)

// SupervisionStatus is the lifecycle state of a supervision session.
type SupervisionStatus string

const (
	SupervisionScheduled SupervisionStatus = "scheduled"
	SupervisionCompleted SupervisionStatus = "completed"
	SupervisionCancelled SupervisionStatus = "cancelled"
)

// Valid reports whether s is a known supervision status.
func (s SupervisionStatus) Valid() bool {
	switch s {
	case SupervisionScheduled, SupervisionCompleted, SupervisionCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed. A
// scheduled session can complete or cancel; completed and cancelled are
// terminal. Re-saving the current status is allowed.
func (s SupervisionStatus) CanTransitionTo(next SupervisionStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == SupervisionScheduled
}

// Supervision records a one-to-one session between a staff member and a
// supervisor. StaffID is a weak reference: deleting the staff member leaves
// the supervision history in place.
type Supervision struct {
	ID                  uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID             uint                        `gorm:"not null;index" json:"staffId"`
	SupervisorName      string                      `gorm:"size:255" json:"supervisorName"`
	Date                string                      `gorm:"size:50;not null" json:"date"`
	Notes               string                      `gorm:"type:text" json:"notes"`
	Actions             datatypes.JSONSlice[string] `json:"actions"`
	Outcomes            datatypes.JSONSlice[string] `json:"outcomes"`
	NextSupervisionDate string                      `gorm:"size:50" json:"nextSupervisionDate"`
	Status              SupervisionStatus           `gorm:"size:50;not null;default:'scheduled'" json:"status"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}
