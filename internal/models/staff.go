package models

import "time"

// StaffStatus is the employment state of a staff member.
type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Valid reports whether s is a known staff status.
func (s StaffStatus) Valid() bool {
	return s == StaffActive || s == StaffInactive
}

// Toggled returns the opposite employment state.
func (s StaffStatus) Toggled() StaffStatus {
	if s == StaffActive {
		return StaffInactive
	}
	return StaffActive
}

// StaffMember is an employee record with its owned child collections.
// Children are replaced wholesale when the parent is edited.
type StaffMember struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string      `gorm:"size:255;not null" json:"name"`
	Role             string      `gorm:"size:255" json:"role"`
	Email            string      `gorm:"size:255" json:"email"`
	Phone            string      `gorm:"size:50" json:"phone"`
	Location         string      `gorm:"size:255" json:"location"`
	Status           StaffStatus `gorm:"size:50;not null;default:'active'" json:"status"`
	StartDate        string      `gorm:"size:50" json:"startDate"`
	EmergencyContact string      `gorm:"size:255" json:"emergencyContact"`
	DBS              string      `gorm:"size:255" json:"dbs"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`

	Qualifications    []Qualification `gorm:"foreignKey:StaffMemberID;constraint:OnDelete:CASCADE" json:"qualifications"`
	EmploymentHistory []Employment    `gorm:"foreignKey:StaffMemberID;constraint:OnDelete:CASCADE" json:"employmentHistory"`
	References        []Reference     `gorm:"foreignKey:StaffMemberID;constraint:OnDelete:CASCADE" json:"references"`
}

// Qualification is a certificate or award held by a staff member.
type Qualification struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffMemberID     uint   `gorm:"not null;index" json:"-"`
	Title             string `gorm:"size:255;not null" json:"title"`
	Institution       string `gorm:"size:255" json:"institution"`
	DateAchieved      string `gorm:"size:50" json:"dateAchieved"`
	ExpiryDate        string `gorm:"size:50" json:"expiryDate,omitempty"`
	CertificateNumber string `gorm:"size:255" json:"certificateNumber,omitempty"`
}

// Employment is a prior-employment history entry.
type Employment struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffMemberID    uint   `gorm:"not null;index" json:"-"`
	Employer         string `gorm:"size:255;not null" json:"employer"`
	Position         string `gorm:"size:255" json:"position"`
	StartDate        string `gorm:"size:50" json:"startDate"`
	EndDate          string `gorm:"size:50" json:"endDate"`
	ReasonForLeaving string `gorm:"type:text" json:"reasonForLeaving"`
	ContactDetails   string `gorm:"size:255" json:"contactDetails"`
}

// Reference is an employment reference and its verification state.
type Reference struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffMemberID     uint   `gorm:"not null;index" json:"-"`
	Name              string `gorm:"size:255;not null" json:"name"`
	Position          string `gorm:"size:255" json:"position"`
	Organization      string `gorm:"size:255" json:"organization"`
	Email             string `gorm:"size:255" json:"email"`
	Phone             string `gorm:"size:50" json:"phone"`
	Relationship      string `gorm:"size:255" json:"relationship"`
	Verified          bool   `gorm:"not null;default:false" json:"verified"`
	VerificationDate  string `gorm:"size:50" json:"verificationDate,omitempty"`
	VerificationNotes string `gorm:"type:text" json:"verificationNotes,omitempty"`
}
