package models

import (
	"time"

	"gorm.io/datatypes"
)

// ComplianceStatus is the review state of a regulatory requirement. No
// transition graph is declared for it: the regulator's review cycle moves
// requirements between all four states, so any transition is permitted.
type ComplianceStatus string

const (
	ComplianceCompliant     ComplianceStatus = "compliant"
	ComplianceNonCompliant  ComplianceStatus = "non-compliant"
	CompliancePendingReview ComplianceStatus = "pending-review"
	ComplianceInProgress    ComplianceStatus = "in-progress"
)

// Valid reports whether s is a known compliance status.
func (s ComplianceStatus) Valid() bool {
	switch s {
	case ComplianceCompliant, ComplianceNonCompliant, CompliancePendingReview, ComplianceInProgress:
		return true
	}
	return false
}

// ComplianceRequirement is one item on the regulatory checklist, with its
// owned evidence and action lists. Children are replaced wholesale on edit.
type ComplianceRequirement struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Category       string                    `gorm:"size:255;not null;index" json:"category"`
	Title          string                    `gorm:"size:255;not null" json:"title"`
	Description    string                    `gorm:"type:text" json:"description"`
	DueDate        string                    `gorm:"size:50" json:"dueDate"`
	Status         ComplianceStatus          `gorm:"size:50;not null;default:'pending-review'" json:"status"`
	LastReviewDate string                    `gorm:"size:50" json:"lastReviewDate"`
	NextReviewDate string                    `gorm:"size:50" json:"nextReviewDate"`
	AssignedTo     datatypes.JSONSlice[uint] `json:"assignedTo"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`

	Evidence []Evidence         `gorm:"foreignKey:RequirementID;constraint:OnDelete:CASCADE" json:"evidence"`
	Actions  []ComplianceAction `gorm:"foreignKey:RequirementID;constraint:OnDelete:CASCADE" json:"actions"`
}

// Evidence is a document reference attached to a requirement.
type Evidence struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RequirementID uint   `gorm:"not null;index" json:"-"`
	Title         string `gorm:"size:255;not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	DateUploaded  string `gorm:"size:50" json:"dateUploaded"`
	DocumentType  string `gorm:"size:255" json:"documentType"`
	Location      string `gorm:"type:text" json:"location"`
}

// ActionStatus is the state of a remedial action on a requirement.
type ActionStatus string

const (
	ActionPending   ActionStatus = "pending"
	ActionCompleted ActionStatus = "completed"
	ActionOverdue   ActionStatus = "overdue"
)

// Valid reports whether s is a known action status.
func (s ActionStatus) Valid() bool {
	return s == ActionPending || s == ActionCompleted || s == ActionOverdue
}

// ComplianceAction is a remedial action raised against a requirement.
type ComplianceAction struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	RequirementID uint         `gorm:"not null;index" json:"-"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	DueDate       string       `gorm:"size:50" json:"dueDate"`
	Status        ActionStatus `gorm:"size:50;not null;default:'pending'" json:"status"`
	AssignedTo    uint         `json:"assignedTo"`
}

// TableName overrides the table name for ComplianceAction
func (ComplianceAction) TableName() string {
	return "compliance_actions"
}
