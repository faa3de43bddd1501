package view

import (
	"testing"

	"docqa/internal/i18n"
	"docqa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var en = i18n.For(i18n.LocaleEnglish)

func TestAnswerBlocks_CategoriesInFixedOrder(t *testing.T) {
	p := &models.AnswerPayload{
		Answer: "raw answer",
		Categories: &models.AnswerCategories{
			Notes:    "mind the gap",
			Overview: "**short**",
		},
	}

	blocks := AnswerBlocks(p, en)
	require.Len(t, blocks, 2)
	assert.Equal(t, CategoryOverview, blocks[0].Category)
	assert.Equal(t, "Overview", blocks[0].Label)
	assert.Equal(t, "<strong>short</strong>", blocks[0].HTML)
	assert.Equal(t, CategoryNotes, blocks[1].Category)
	assert.Equal(t, "Notes", blocks[1].Label)
	for _, b := range blocks {
		assert.NotContains(t, b.HTML, "raw answer")
	}
}

func TestAnswerBlocks_FallsBackToRawAnswer(t *testing.T) {
	for _, cats := range []*models.AnswerCategories{nil, {}} {
		blocks := AnswerBlocks(&models.AnswerPayload{Answer: "It is Y.", Categories: cats}, en)
		require.Len(t, blocks, 1)
		assert.Equal(t, CategoryAnswer, blocks[0].Category)
		assert.Equal(t, "It is Y.", blocks[0].HTML)
	}
}

func TestAnswerBlocks_KoreanLabels(t *testing.T) {
	p := &models.AnswerPayload{Categories: &models.AnswerCategories{Steps: "1. a"}}
	blocks := AnswerBlocks(p, i18n.For(i18n.LocaleKorean))
	require.Len(t, blocks, 1)
	assert.Equal(t, "단계별 설명", blocks[0].Label)
}

func TestThumbnails(t *testing.T) {
	assert.Nil(t, Thumbnails(nil, en, nil))
	assert.Nil(t, Thumbnails(&models.ReferenceSet{}, en, nil))

	refs := &models.ReferenceSet{PageImages: []models.PageImage{
		{ImageURL: "/img/3.png", PageNumber: 3},
		{ImageURL: "/img/1.png", PageNumber: 1},
	}}
	thumbs := Thumbnails(refs, en, func(ref string) string { return "http://backend" + ref })
	require.Len(t, thumbs, 2)
	assert.Equal(t, "http://backend/img/3.png", thumbs[0].ImageURL)
	assert.Equal(t, "Page 3", thumbs[0].Label)
	assert.Equal(t, 1, thumbs[1].PageNumber)
}

func TestFooter(t *testing.T) {
	assert.Equal(t, "", Footer(&models.AnswerPayload{}, en))
	p := &models.AnswerPayload{Metadata: &models.AnswerMetadata{Model: "gpt-4o-mini", TotalTokens: 42}}
	assert.Equal(t, "gpt-4o-mini · 42 tokens", Footer(p, en))
}
