package models

import "time"

// ActiveDocument is the document currently bound to the chat session. It is
// replaced wholesale on every successful upload or selection.
type ActiveDocument struct {
	Filename    string `json:"filename"`
	TotalPages  int    `json:"total_pages"`
	TotalChunks int    `json:"total_chunks"`
}

// DocumentListEntry is one row of the document list. Filename is the unique key.
type DocumentListEntry struct {
	Filename string `json:"filename"`
	IsActive bool   `json:"isActive"`
}

// KnownDocument persists the filenames the user has uploaded or selected so the
// list can be rebuilt on the next launch.
type KnownDocument struct {
	ID        uint   `gorm:"primaryKey"`
	Filename  string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}

// SessionState names the two states of the document session.
type SessionState string

const (
	StateNoDocument     SessionState = "NoDocument"
	StateDocumentActive SessionState = "DocumentActive"
)

// SessionSnapshot is what the UI needs to paint the document header and the chat input.
type SessionSnapshot struct {
	State       SessionState    `json:"state"`
	Document    *ActiveDocument `json:"document,omitempty"`
	ChatEnabled bool            `json:"chatEnabled"`
}
