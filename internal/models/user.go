package models

import (
	"time"
)

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an operator account. The PIN is stored as a bcrypt hash and never
// leaves the service in responses.
type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Pin       string     `gorm:"size:255;not null" json:"-"`
	Role      Role       `gorm:"size:50;not null" json:"role"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Session is an issued login token. One row per active login; expired rows are
// removed lazily on validation.
type Session struct {
	Token     string    `gorm:"primaryKey;type:char(36)" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Session
func (Session) TableName() string {
	return "sessions"
}
