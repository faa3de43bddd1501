//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	if p := os.Getenv("DOCQA_DB_PATH"); p != "" {
		return p
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "docqa.db"
	}

	appDir := filepath.Join(configDir, "docqa")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "docqa.db"
	}

	return filepath.Join(appDir, "docqa.db")
}

func IsDevelopment() bool {
	return false
}
