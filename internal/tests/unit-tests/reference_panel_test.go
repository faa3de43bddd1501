package unit_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/events"
	"docqa/internal/models"
	"docqa/internal/services"
	"docqa/internal/tests/mocks"
)

func TestReferencePanel_RenderReplacesContent(t *testing.T) {
	rec := mocks.NewEventRecorder(t)
	p := services.NewReferencePanel(&mocks.ClientProviderMock{API: &mocks.BackendMock{}, Locale: "en"})

	assert.False(t, p.View().Visible)

	p.Render(&models.ReferenceSet{
		PageImages:   []models.PageImage{{ImageURL: "/a.png", PageNumber: 1}, {ImageURL: "/b.png", PageNumber: 2}},
		SourceChunks: []models.SourceChunk{{PageNumber: 1, SimilarityScore: 0.1, Text: "x"}},
	})
	p.Render(&models.ReferenceSet{
		SourceChunks: []models.SourceChunk{{PageNumber: 7, SimilarityScore: 1.4, Text: "y"}},
	})

	view := p.View()
	assert.True(t, view.Visible)
	assert.Empty(t, view.Pages)
	require.Len(t, view.Excerpts, 1)
	assert.Equal(t, "Page 7", view.Excerpts[0].PageLabel)
	assert.Equal(t, "0.00", view.Excerpts[0].Relevance)
	assert.Len(t, rec.Of(events.References), 2)
}

func TestReferencePanel_RenderNilIsNoop(t *testing.T) {
	rec := mocks.NewEventRecorder(t)
	p := services.NewReferencePanel(&mocks.ClientProviderMock{API: &mocks.BackendMock{}, Locale: "en"})

	p.Render(nil)

	assert.False(t, p.View().Visible)
	assert.Empty(t, rec.Of(events.References))
}

func TestReferencePanel_OpenPage_RequiresURL(t *testing.T) {
	p := services.NewReferencePanel(&mocks.ClientProviderMock{API: &mocks.BackendMock{}, Locale: "en"})

	err := p.OpenPage(" ")
	assert.Error(t, err)
	assert.Equal(t, "image url is required", err.Error())
}
