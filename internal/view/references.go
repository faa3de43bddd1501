package view

import (
	"fmt"

	"docqa/internal/i18n"
	"docqa/internal/models"
)

// Relevance turns a distance-like similarity score into "1 - score" with two decimals.
func Relevance(score float64) string {
	r := 1 - score
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return fmt.Sprintf("%.2f", r)
}

// ReferencePanel builds the full panel content. Both lists are rebuilt from scratch.
func ReferencePanel(refs *models.ReferenceSet, msgs i18n.Messages, resolve URLResolver) models.ReferencePanelView {
	panel := models.ReferencePanelView{
		Visible:  true,
		Pages:    []models.PageThumbnail{},
		Excerpts: []models.Excerpt{},
	}
	if refs == nil {
		return panel
	}
	if pages := Thumbnails(refs, msgs, resolve); pages != nil {
		panel.Pages = pages
	}
	for _, chunk := range refs.SourceChunks {
		panel.Excerpts = append(panel.Excerpts, models.Excerpt{
			PageNumber: chunk.PageNumber,
			PageLabel:  msgs.PageLabel(chunk.PageNumber),
			Relevance:  Relevance(chunk.SimilarityScore),
			Text:       chunk.Text,
		})
	}
	return panel
}
