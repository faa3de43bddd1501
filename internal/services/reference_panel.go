package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"docqa/internal/events"
	"docqa/internal/models"
	"docqa/internal/view"
)

// ReferencePanel shows the page images and excerpts behind the latest answer.
type ReferencePanel struct {
	ctx     context.Context
	env     ClientProvider
	openURL func(ctx context.Context, url string)
	mu      sync.Mutex
	current models.ReferencePanelView
}

func NewReferencePanel(env ClientProvider) *ReferencePanel {
	return &ReferencePanel{
		env:     env,
		openURL: runtime.BrowserOpenURL,
		current: models.ReferencePanelView{Pages: []models.PageThumbnail{}, Excerpts: []models.Excerpt{}},
	}
}

func (p *ReferencePanel) Startup(ctx context.Context) {
	p.ctx = ctx
}

// Render replaces the panel content. A nil set leaves the panel untouched.
func (p *ReferencePanel) Render(refs *models.ReferenceSet) {
	if refs == nil {
		return
	}
	next := view.ReferencePanel(refs, p.env.Messages(), p.env.Backend().ResolveURL)

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	events.Emit(orBackground(p.ctx), events.References, next)
}

func (p *ReferencePanel) View() models.ReferencePanelView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// OpenPage opens a page image in the system browser.
func (p *ReferencePanel) OpenPage(imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return fmt.Errorf("image url is required")
	}
	p.openURL(orBackground(p.ctx), p.env.Backend().ResolveURL(imageURL))
	return nil
}
