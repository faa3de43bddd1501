package unit_tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/apperr"
	"docqa/internal/events"
	"docqa/internal/models"
)

func TestQueryService_Submit_RendersAnswerAndReferences(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")
	h.backend.ResolveURLFunc = func(ref string) string { return "http://localhost:5000" + ref }
	h.backend.QueryFunc = func(ctx context.Context, question string) (*models.AnswerPayload, error) {
		assert.Equal(t, "How do I reset?", question)
		return &models.AnswerPayload{
			Answer: "raw answer",
			Categories: &models.AnswerCategories{
				Steps: "1. Press A",
			},
			References: &models.ReferenceSet{
				PageImages:   []models.PageImage{{ImageURL: "/img/p3.png", PageNumber: 3}},
				SourceChunks: []models.SourceChunk{{PageNumber: 3, SimilarityScore: 0.2, Text: "Press A to reset"}},
			},
		}, nil
	}

	err := h.queries.Submit("  How do I reset?  ")
	require.NoError(t, err)

	transcript := h.convo.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, models.RoleUser, transcript[0].Role)
	assert.Equal(t, "How do I reset?", transcript[0].Text)

	answer := transcript[1]
	assert.Equal(t, models.RoleAssistant, answer.Role)
	require.Len(t, answer.Blocks, 1)
	assert.Equal(t, "steps", answer.Blocks[0].Category)
	assert.Equal(t, "Step-by-step", answer.Blocks[0].Label)
	assert.Equal(t, "<br><strong>1.</strong> Press A", answer.Blocks[0].HTML)
	require.Len(t, answer.Thumbnails, 1)
	assert.Equal(t, "http://localhost:5000/img/p3.png", answer.Thumbnails[0].ImageURL)
	assert.Equal(t, "Page 3", answer.Thumbnails[0].Label)

	panel := h.panel.View()
	assert.True(t, panel.Visible)
	require.Len(t, panel.Pages, 1)
	require.Len(t, panel.Excerpts, 1)
	assert.Equal(t, "Page 3", panel.Excerpts[0].PageLabel)
	assert.Equal(t, "0.80", panel.Excerpts[0].Relevance)
	assert.Equal(t, "Press A to reset", panel.Excerpts[0].Text)

	assert.True(t, h.queries.InputEnabled())
	assert.False(t, h.notifier.State().Visible)
}

func TestQueryService_Submit_DisablesInputBeforeRequest(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")
	h.backend.QueryFunc = func(ctx context.Context, question string) (*models.AnswerPayload, error) {
		assert.False(t, h.queries.InputEnabled())
		assert.False(t, h.state.Snapshot().ChatEnabled)
		input, ok := h.events.Last(events.ChatInput).(events.ChatInputEvent)
		assert.True(t, ok)
		assert.False(t, input.Enabled)
		assert.True(t, input.Clear)
		assert.True(t, h.notifier.State().Visible)
		assert.Equal(t, "Generating answer...", h.notifier.State().Message)
		return &models.AnswerPayload{Answer: "fine"}, nil
	}

	require.NoError(t, h.queries.Submit("q"))

	input, ok := h.events.Last(events.ChatInput).(events.ChatInputEvent)
	require.True(t, ok)
	assert.True(t, input.Enabled)
	assert.True(t, input.Focus)
}

func TestQueryService_Submit_EmptyQuestionDoesNothing(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")

	err := h.queries.Submit("   ")
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, h.backend.Calls("query"))
	assert.Empty(t, h.convo.Transcript())
	assert.Empty(t, h.events.Of(events.Busy))
	assert.Empty(t, h.events.Of(events.ChatInput))
}

func TestQueryService_Submit_WithoutDocumentIsRejected(t *testing.T) {
	h := newHarness(t)

	err := h.queries.Submit("anything")
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 0, h.backend.Calls("query"))
	assert.Empty(t, h.convo.Transcript())
}

func TestQueryService_Submit_WhileInFlightIsRejected(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")

	started := make(chan struct{})
	finish := make(chan struct{})
	h.backend.QueryFunc = func(ctx context.Context, question string) (*models.AnswerPayload, error) {
		close(started)
		<-finish
		return &models.AnswerPayload{Answer: "done"}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, h.queries.Submit("first"))
	}()
	<-started

	err := h.queries.Submit("second")
	assert.True(t, apperr.IsValidation(err))

	close(finish)
	wg.Wait()
	assert.Equal(t, 1, h.backend.Calls("query"))
	assert.Len(t, h.convo.Transcript(), 2)
	assert.True(t, h.queries.InputEnabled())
}

func TestQueryService_Submit_ServerErrorBecomesTurn(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")
	h.backend.QueryFunc = func(ctx context.Context, question string) (*models.AnswerPayload, error) {
		return nil, &apperr.ApplicationError{Status: 400, Message: "no document loaded"}
	}

	require.NoError(t, h.queries.Submit("q"))

	transcript := h.convo.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "Error: no document loaded", transcript[1].Text)
	assert.Equal(t, models.RoleAssistant, transcript[1].Role)
	assert.True(t, h.queries.InputEnabled())
	assert.False(t, h.panel.View().Visible)
}

func TestQueryService_Submit_TransportFailureReenablesInput(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")
	h.backend.QueryFunc = func(ctx context.Context, question string) (*models.AnswerPayload, error) {
		return nil, apperr.Transport("query", errors.New("connection reset"))
	}

	require.NoError(t, h.queries.Submit("q"))

	transcript := h.convo.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "Could not reach the server.", transcript[1].Text)
	assert.True(t, h.queries.InputEnabled())
	assert.False(t, h.notifier.State().Visible)

	input, ok := h.events.Last(events.ChatInput).(events.ChatInputEvent)
	require.True(t, ok)
	assert.True(t, input.Enabled)
}

func TestQueryService_Submit_KeepsPanelWhenAnswerHasNoReferences(t *testing.T) {
	h := newHarness(t)
	h.activate(t, "manual.pdf")
	h.panel.Render(&models.ReferenceSet{
		SourceChunks: []models.SourceChunk{{PageNumber: 1, SimilarityScore: 0.5, Text: "old"}},
	})

	require.NoError(t, h.queries.Submit("q"))

	panel := h.panel.View()
	require.Len(t, panel.Excerpts, 1)
	assert.Equal(t, "old", panel.Excerpts[0].Text)
}
