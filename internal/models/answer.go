package models

// AnswerCategories splits an answer into the sections the backend recognised.
// Empty fields are absent.
type AnswerCategories struct {
	Overview string `json:"overview,omitempty"`
	Steps    string `json:"steps,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// HasAny reports whether at least one section is present.
func (c *AnswerCategories) HasAny() bool {
	return c != nil && (c.Overview != "" || c.Steps != "" || c.Notes != "")
}

type PageImage struct {
	ImageURL   string `json:"image_url"`
	PageNumber int    `json:"page_number"`
}

// SourceChunk is a retrieved excerpt. SimilarityScore is distance-like: lower is closer.
type SourceChunk struct {
	PageNumber      int     `json:"page_number"`
	SimilarityScore float64 `json:"similarity_score"`
	Text            string  `json:"text"`
}

type ReferenceSet struct {
	Pages        []int         `json:"pages,omitempty"`
	PageImages   []PageImage   `json:"page_images"`
	SourceChunks []SourceChunk `json:"source_chunks"`
}

type AnswerMetadata struct {
	Model       string `json:"model,omitempty"`
	TotalTokens int    `json:"total_tokens,omitempty"`
}

// AnswerPayload is the success body of a query.
type AnswerPayload struct {
	Question   string            `json:"question,omitempty"`
	Answer     string            `json:"answer"`
	Categories *AnswerCategories `json:"categories,omitempty"`
	References *ReferenceSet     `json:"references,omitempty"`
	Metadata   *AnswerMetadata   `json:"metadata,omitempty"`
}
