package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"docqa/internal/events"
	"docqa/internal/models"
	"docqa/internal/view"
)

// Conversation is the append-only transcript of the page session.
type Conversation struct {
	ctx   context.Context
	env   ClientProvider
	mu    sync.Mutex
	turns []models.Turn
}

func NewConversation(env ClientProvider) *Conversation {
	return &Conversation{env: env}
}

func (c *Conversation) Startup(ctx context.Context) {
	c.ctx = ctx
}

// AppendUserTurn records text literally; the view renders it as text, not markup.
func (c *Conversation) AppendUserTurn(text string) models.Turn {
	msgs := c.env.Messages()
	return c.append(models.Turn{
		Role:   models.RoleUser,
		Sender: msgs.UserSender,
		Text:   text,
	})
}

// AppendAssistantTurn renders an answer: category blocks or the raw answer, then
// the inline page thumbnails, then the metadata footer.
func (c *Conversation) AppendAssistantTurn(p *models.AnswerPayload) models.Turn {
	msgs := c.env.Messages()
	var refs *models.ReferenceSet
	if p != nil {
		refs = p.References
	}
	return c.append(models.Turn{
		Role:       models.RoleAssistant,
		Sender:     msgs.AssistantSender,
		Blocks:     view.AnswerBlocks(p, msgs),
		Thumbnails: view.Thumbnails(refs, msgs, c.env.Backend().ResolveURL),
		Footer:     view.Footer(p, msgs),
	})
}

// AppendAssistantNotice records a plain-text assistant turn, used for failures.
func (c *Conversation) AppendAssistantNotice(text string) models.Turn {
	msgs := c.env.Messages()
	return c.append(models.Turn{
		Role:   models.RoleAssistant,
		Sender: msgs.AssistantSender,
		Text:   text,
	})
}

// Transcript returns every turn in order.
func (c *Conversation) Transcript() []models.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) append(turn models.Turn) models.Turn {
	turn.ID = uuid.NewString()
	turn.CreatedAt = time.Now()

	c.mu.Lock()
	c.turns = append(c.turns, turn)
	c.mu.Unlock()

	events.Emit(orBackground(c.ctx), events.Transcript, events.TranscriptEvent{Turn: turn, ScrollToEnd: true})
	return turn
}
