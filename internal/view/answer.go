package view

import (
	"fmt"
	"strings"

	"docqa/internal/i18n"
	"docqa/internal/models"
)

const (
	CategoryOverview = "overview"
	CategorySteps    = "steps"
	CategoryNotes    = "notes"
	CategoryAnswer   = "answer"
)

// URLResolver maps backend-relative image references to loadable URLs.
type URLResolver func(ref string) string

// AnswerBlocks renders the categories that are present, in overview/steps/notes
// order, or the raw answer when none is. Never both.
func AnswerBlocks(p *models.AnswerPayload, msgs i18n.Messages) []models.AnswerBlock {
	if p == nil {
		return []models.AnswerBlock{{Category: CategoryAnswer, HTML: ""}}
	}
	if !p.Categories.HasAny() {
		return []models.AnswerBlock{{Category: CategoryAnswer, HTML: FormatText(p.Answer)}}
	}

	c := p.Categories
	var blocks []models.AnswerBlock
	add := func(category, label, text string) {
		if text == "" {
			return
		}
		blocks = append(blocks, models.AnswerBlock{
			Category: category,
			Label:    label,
			HTML:     FormatText(text),
		})
	}
	add(CategoryOverview, msgs.OverviewLabel, c.Overview)
	add(CategorySteps, msgs.StepsLabel, c.Steps)
	add(CategoryNotes, msgs.NotesLabel, c.Notes)
	return blocks
}

// Thumbnails lists page images in the order given.
func Thumbnails(refs *models.ReferenceSet, msgs i18n.Messages, resolve URLResolver) []models.PageThumbnail {
	if refs == nil || len(refs.PageImages) == 0 {
		return nil
	}
	out := make([]models.PageThumbnail, 0, len(refs.PageImages))
	for _, img := range refs.PageImages {
		url := img.ImageURL
		if resolve != nil {
			url = resolve(url)
		}
		out = append(out, models.PageThumbnail{
			ImageURL:   url,
			PageNumber: img.PageNumber,
			Label:      msgs.PageLabel(img.PageNumber),
		})
	}
	return out
}

// Footer summarises answer metadata, or "" when the backend sent none.
func Footer(p *models.AnswerPayload, msgs i18n.Messages) string {
	if p == nil || p.Metadata == nil || strings.TrimSpace(p.Metadata.Model) == "" {
		return ""
	}
	return fmt.Sprintf(msgs.FooterFormat, p.Metadata.Model, p.Metadata.TotalTokens)
}
