package services

import (
	"encoding/json"
	"errors"

	"github.com/maccam68/caredesk/internal/models"
	"gorm.io/gorm"
)

// settingsRowID is the fixed primary key of the singleton settings row.
const settingsRowID = 1

// GetSettings returns the stored settings merged over the defaults. A missing
// or unreadable row yields the defaults.
func GetSettings(db *gorm.DB) (models.Settings, error) {
	settings := models.DefaultSettings()

	var row models.AppSettings
	err := db.First(&row, settingsRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings, nil
		}
		return settings, err
	}

	if err := json.Unmarshal(row.Document.JSON, &settings); err != nil {
		// A corrupt document degrades to defaults rather than failing reads.
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings overwrites the settings document wholesale.
func SaveSettings(db *gorm.DB, settings models.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	row := models.AppSettings{ID: settingsRowID}
	row.Document.JSON = doc
	return db.Save(&row).Error
}

// ImportSettings merges an exported settings document onto the defaults
// section by section and persists the result. Sections absent from the
// document keep their default values; unknown keys are ignored.
func ImportSettings(db *gorm.DB, raw []byte) (models.Settings, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return models.Settings{}, err
	}

	settings := models.DefaultSettings()
	if section, ok := sections["organization"]; ok {
		if err := json.Unmarshal(section, &settings.Organization); err != nil {
			return models.Settings{}, err
		}
	}
	if section, ok := sections["notifications"]; ok {
		if err := json.Unmarshal(section, &settings.Notifications); err != nil {
			return models.Settings{}, err
		}
	}
	if section, ok := sections["security"]; ok {
		if err := json.Unmarshal(section, &settings.Security); err != nil {
			return models.Settings{}, err
		}
	}
	if section, ok := sections["display"]; ok {
		if err := json.Unmarshal(section, &settings.Display); err != nil {
			return models.Settings{}, err
		}
	}

	if err := SaveSettings(db, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
