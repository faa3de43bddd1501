//go:build !prod

package database

import "os"

// GetDefaultDBPath returns the database path for development mode: the working
// directory, unless DOCQA_DB_PATH says otherwise.
func GetDefaultDBPath() string {
	if p := os.Getenv("DOCQA_DB_PATH"); p != "" {
		return p
	}
	return "docqa.db"
}

func IsDevelopment() bool {
	return true
}
