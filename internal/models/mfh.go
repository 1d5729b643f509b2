package models

import (
	"time"

	"gorm.io/datatypes"
)

// MFHStatus is the lifecycle state of a missing-from-home report.
type MFHStatus string

const (
	MFHActive   MFHStatus = "active"
	MFHResolved MFHStatus = "resolved"
)

// Valid reports whether s is a known MFH status.
func (s MFHStatus) Valid() bool {
	return s == MFHActive || s == MFHResolved
}

// CanTransitionTo reports whether moving from s to next is allowed. Reports
// move one way, active -> resolved; whether a resolved report can reopen is
// an unresolved business rule, so the stricter reading applies and reopening
// is rejected. Re-saving the current status is allowed.
func (s MFHStatus) CanTransitionTo(next MFHStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == MFHActive && next == MFHResolved
}

// RiskLevel grades an MFH report.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	return r == RiskHigh || r == RiskMedium || r == RiskLow
}

// MFHReport is a missing-from-home incident. The return fields are populated
// only when the report resolves; a resolved report always carries them.
type MFHReport struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Age         int       `gorm:"not null" json:"age"`
	LastSeen    string    `gorm:"size:50;not null" json:"lastSeen"`
	Location    string    `gorm:"size:255" json:"location"`
	Status      MFHStatus `gorm:"size:50;not null;default:'active'" json:"status"`
	RiskLevel   RiskLevel `gorm:"size:50;not null" json:"riskLevel"`
	Description string    `gorm:"type:text" json:"description"`
	ContactInfo string    `gorm:"size:255" json:"contactInfo"`

	ReturnDate          string                      `gorm:"size:50" json:"returnDate,omitempty"`
	ReturnLocation      string                      `gorm:"size:255" json:"returnLocation,omitempty"`
	ReturnCircumstances string                      `gorm:"type:text" json:"returnCircumstances,omitempty"`
	FoundBy             string                      `gorm:"size:255" json:"foundBy,omitempty"`
	PhysicalCondition   string                      `gorm:"size:255" json:"physicalCondition,omitempty"`
	MentalState         string                      `gorm:"size:255" json:"mentalState,omitempty"`
	FollowUpActions     datatypes.JSONSlice[string] `json:"followUpActions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for MFHReport
func (MFHReport) TableName() string {
	return "mfh_reports"
}
