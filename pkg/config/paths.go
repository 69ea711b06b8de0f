package config

import (
	"os"
	"path/filepath"
)

const settingsDirName = ".diver"

// SettingsDir returns the directory holding the settings file, log file and
// other per-project state.
func SettingsDir() string {
	return settingsDirName
}

// BuildSettingsPath joins filename onto the settings directory, creating the
// directory if needed.
func BuildSettingsPath(filename string) string {
	if _, err := os.Stat(settingsDirName); os.IsNotExist(err) {
		os.MkdirAll(settingsDirName, 0755)
	}
	return filepath.Join(settingsDirName, filename)
}
