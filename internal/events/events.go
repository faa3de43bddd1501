package events

import (
	"time"

	"docqa/internal/models"

	"github.com/google/uuid"
)

type NoticeType string

const (
	NoticeInfo    NoticeType = "info"
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
)

// Event names the webview subscribes to. Every payload is a full snapshot of the
// piece of UI it repaints, except transcript events which carry one new turn.
const (
	Busy        = "docqa:busy"
	Notice      = "docqa:notice"
	Session     = "docqa:session"
	Documents   = "docqa:documents"
	Transcript  = "docqa:transcript"
	References  = "docqa:references"
	ChatInput   = "docqa:chat-input"
	ImportState = "docqa:import"
)

// BusyEvent shows or hides the loading overlay.
type BusyEvent struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

// NoticeEvent is a transient success or error message.
type NoticeEvent struct {
	ID        string     `json:"id"`
	Type      NoticeType `json:"type"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}

// ChatInputEvent drives the question box and the send button together.
type ChatInputEvent struct {
	Enabled     bool   `json:"enabled"`
	Focus       bool   `json:"focus"`
	Clear       bool   `json:"clear"`
	Placeholder string `json:"placeholder,omitempty"`
}

// TranscriptEvent appends one turn; the view scrolls to the end after painting it.
type TranscriptEvent struct {
	Turn        models.Turn `json:"turn"`
	ScrollToEnd bool        `json:"scrollToEnd"`
}

// ImportEvent reports batch import progress. Message is the localized status line.
type ImportEvent struct {
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Filename  string `json:"filename"`
	Succeeded int    `json:"succeeded"`
	Done      bool   `json:"done"`
	Message   string `json:"message"`
}

func NewNotice(t NoticeType, message string) NoticeEvent {
	return NoticeEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewSuccess creates a success notice.
func NewSuccess(message string) NoticeEvent {
	return NewNotice(NoticeSuccess, message)
}

// NewError creates an error notice.
func NewError(message string) NoticeEvent {
	return NewNotice(NoticeError, message)
}
