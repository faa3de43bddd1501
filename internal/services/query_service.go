package services

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/apperr"
	"docqa/internal/events"
)

// QueryService submits questions against the active document.
type QueryService struct {
	ctx          context.Context
	state        *SessionState
	env          ClientProvider
	conversation *Conversation
	panel        *ReferencePanel
	notifier     *Notifier
}

func NewQueryService(state *SessionState, env ClientProvider, conversation *Conversation, panel *ReferencePanel, notifier *Notifier) *QueryService {
	return &QueryService{
		state:        state,
		env:          env,
		conversation: conversation,
		panel:        panel,
		notifier:     notifier,
	}
}

func (q *QueryService) Startup(ctx context.Context) {
	q.ctx = ctx
}

// Submit asks question. A blank question, or a call while the chat input is
// disabled, does nothing and returns a validation error. Every other outcome
// ends up in the transcript and Submit returns nil.
func (q *QueryService) Submit(question string) error {
	ctx := orBackground(q.ctx)
	question = strings.TrimSpace(question)
	if question == "" {
		return apperr.Validation("question", "question is empty")
	}

	releaseInput, ok := q.state.beginQuery()
	if !ok {
		return apperr.Validation("question", "chat input is disabled")
	}
	msgs := q.env.Messages()

	q.conversation.AppendUserTurn(question)
	events.Emit(ctx, events.ChatInput, events.ChatInputEvent{Enabled: false, Clear: true})
	releaseBusy := q.notifier.Busy(msgs.QueryBusy)

	defer func() {
		releaseBusy()
		releaseInput()
		events.Emit(ctx, events.ChatInput, events.ChatInputEvent{
			Enabled:     q.state.ChatEnabled(),
			Focus:       true,
			Placeholder: msgs.InputPlaceholder,
		})
	}()

	answer, err := q.env.Backend().Query(ctx, question)
	switch {
	case err == nil:
		q.conversation.AppendAssistantTurn(answer)
		if answer != nil {
			q.panel.Render(answer.References)
		}
	case apperr.IsApplication(err):
		msg := apperr.ServerMessage(err)
		if msg == "" {
			msg = msgs.QueryFailed
		}
		q.conversation.AppendAssistantNotice(msgs.ErrorTurn(msg))
	default:
		events.LogError(ctx, fmt.Sprintf("query: %v", err))
		q.conversation.AppendAssistantNotice(msgs.Connectivity)
	}
	return nil
}

// InputEnabled reports whether the question box accepts input right now.
func (q *QueryService) InputEnabled() bool {
	return q.state.ChatEnabled()
}
