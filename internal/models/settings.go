package models

import "time"

// Settings is the whole-application configuration document. It is persisted
// as one JSON value and overwritten wholesale on save.
type Settings struct {
	Organization  OrganizationSettings `json:"organization"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
	Display       DisplaySettings      `json:"display"`
}

// OrganizationSettings is the operator's profile.
type OrganizationSettings struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// NotificationSettings holds reminder toggles and lead time.
type NotificationSettings struct {
	EmailNotifications   bool `json:"emailNotifications"`
	SupervisionReminders bool `json:"supervisionReminders"`
	TrainingReminders    bool `json:"trainingReminders"`
	ComplianceAlerts     bool `json:"complianceAlerts"`
	ReminderDays         int  `json:"reminderDays"`
}

// SecuritySettings holds auth thresholds. SessionTimeout is in minutes and
// bounds the lifetime of issued session tokens.
type SecuritySettings struct {
	SessionTimeout     int  `json:"sessionTimeout"`
	PasswordExpiryDays int  `json:"passwordExpiryDays"`
	MFAEnabled         bool `json:"mfaEnabled"`
}

// DisplaySettings holds client presentation preferences. The service stores
// them verbatim for the UI.
type DisplaySettings struct {
	Theme       string `json:"theme"`
	DateFormat  string `json:"dateFormat"`
	TimeFormat  string `json:"timeFormat"`
	DefaultView string `json:"defaultView"`
}

// DefaultSettings returns the settings applied before any save and the base
// that imports merge onto.
func DefaultSettings() Settings {
	return Settings{
		Organization: OrganizationSettings{},
		Notifications: NotificationSettings{
			EmailNotifications:   true,
			SupervisionReminders: true,
			TrainingReminders:    true,
			ComplianceAlerts:     true,
			ReminderDays:         7,
		},
		Security: SecuritySettings{
			SessionTimeout:     30,
			PasswordExpiryDays: 90,
			MFAEnabled:         false,
		},
		Display: DisplaySettings{
			Theme:       "light",
			DateFormat:  "DD/MM/YYYY",
			TimeFormat:  "24h",
			DefaultView: "dashboard",
		},
	}
}

// AppSettings is the singleton storage row for Settings.
type AppSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Document  JSON      `json:"document"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for AppSettings
func (AppSettings) TableName() string {
	return "app_settings"
}
