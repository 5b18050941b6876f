package data

import (
	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
)

// Settings is the name→value contents of the settings table.
type Settings map[string]string

// LoadSettings reads the whole settings table. Values are read once at
// startup; a restart picks up edits.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var rows []types.Setting
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(Settings, len(rows))
	for _, row := range rows {
		settings[row.Name] = row.Value
	}
	return settings, nil
}
