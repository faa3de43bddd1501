package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AnswerBlock is one labeled section of an assistant turn. HTML has already been
// produced by the text formatter and escaped.
type AnswerBlock struct {
	Category string `json:"category"`
	Label    string `json:"label,omitempty"`
	HTML     string `json:"html"`
}

type PageThumbnail struct {
	ImageURL   string `json:"imageUrl"`
	PageNumber int    `json:"pageNumber"`
	Label      string `json:"label"`
}

// Turn is one transcript message. User turns and assistant error turns carry Text,
// which the UI renders literally; answers carry Blocks.
type Turn struct {
	ID         string          `json:"id"`
	Role       Role            `json:"role"`
	Sender     string          `json:"sender"`
	Text       string          `json:"text,omitempty"`
	Blocks     []AnswerBlock   `json:"blocks,omitempty"`
	Thumbnails []PageThumbnail `json:"thumbnails,omitempty"`
	Footer     string          `json:"footer,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Excerpt is one ranked source chunk in the reference panel.
type Excerpt struct {
	PageNumber int    `json:"pageNumber"`
	PageLabel  string `json:"pageLabel"`
	Relevance  string `json:"relevance"`
	Text       string `json:"text"`
}

// ReferencePanelView replaces the panel content wholesale.
type ReferencePanelView struct {
	Visible  bool            `json:"visible"`
	Pages    []PageThumbnail `json:"pages"`
	Excerpts []Excerpt       `json:"excerpts"`
}
