package models

import "time"

// AllocationStatus is the progress of one staff member through one module.
type AllocationStatus string

const (
	AllocationNotStarted AllocationStatus = "not_started"
	AllocationInProgress AllocationStatus = "in_progress"
	AllocationCompleted  AllocationStatus = "completed"
)

// Valid reports whether s is a known allocation status.
func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationNotStarted, AllocationInProgress, AllocationCompleted:
		return true
	}
	return false
}

// rank orders allocation statuses along the progress path.
func (s AllocationStatus) rank() int {
	switch s {
	case AllocationNotStarted:
		return 0
	case AllocationInProgress:
		return 1
	case AllocationCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next is allowed. Progress
// is forward-only: not_started -> in_progress -> completed. Re-saving the
// current status is allowed.
func (s AllocationStatus) CanTransitionTo(next AllocationStatus) bool {
	if !next.Valid() {
		return false
	}
	return next.rank() >= s.rank()
}

// TrainingModule is a course definition. Completion counts are not stored;
// they are derived from allocations at read time.
type TrainingModule struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Category     string    `gorm:"size:255;not null;index" json:"category"`
	Mandatory    bool      `gorm:"not null;default:false" json:"mandatory"`
	CourseSource string    `gorm:"size:255" json:"courseSource"`
	StartDate    string    `gorm:"size:50" json:"startDate"`
	DueDate      string    `gorm:"size:50" json:"dueDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TrainingAllocation assigns a module to a staff member. The (staff, module)
// pair is the identity; saves for an existing pair update in place.
type TrainingAllocation struct {
	ID             uint             `gorm:"primaryKey;autoIncrement" json:"-"`
	StaffID        uint             `gorm:"not null;index:idx_allocation_pair,unique" json:"staffId"`
	ModuleID       uint             `gorm:"not null;index:idx_allocation_pair,unique" json:"moduleId"`
	Status         AllocationStatus `gorm:"size:50;not null;default:'not_started'" json:"status"`
	StartDate      string           `gorm:"size:50" json:"startDate,omitempty"`
	CompletionDate string           `gorm:"size:50" json:"completionDate,omitempty"`
	CreatedAt      time.Time        `json:"-"`
	UpdatedAt      time.Time        `json:"-"`
}

// TableName overrides the table name for TrainingAllocation
func (TrainingAllocation) TableName() string {
	return "training_allocations"
}
