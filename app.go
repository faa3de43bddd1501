package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm"

	"docqa/internal/events"
	"docqa/internal/i18n"
	"docqa/internal/models"
	"docqa/internal/repositories"
	"docqa/internal/services"
)

// App struct
type App struct {
	ctx          context.Context
	dbClose      func() error
	Settings     *services.SettingsService
	Credentials  *services.CredentialService
	Notifier     *services.Notifier
	Documents    *services.DocumentListService
	Sessions     *services.SessionService
	Conversation *services.Conversation
	References   *services.ReferencePanel
	Queries      *services.QueryService
	Imports      *services.ImportService
}

// SettingsView is the editable part of the settings as the settings form shows it.
type SettingsView struct {
	BackendURL     string `json:"backendUrl"`
	Locale         string `json:"locale"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	HasToken       bool   `json:"hasToken"`
}

// ViewState is everything the webview needs to repaint from scratch after a reload.
type ViewState struct {
	Session    models.SessionSnapshot     `json:"session"`
	Documents  []models.DocumentListEntry `json:"documents"`
	Transcript []models.Turn              `json:"transcript"`
	References models.ReferencePanelView  `json:"references"`
	Busy       events.BusyEvent           `json:"busy"`
	Locale     string                     `json:"locale"`
	Settings   SettingsView               `json:"settings"`
	Labels     i18n.Labels                `json:"labels"`
	Chat       events.ChatInputEvent      `json:"chat"`
}

// NewApp wires the services around db, keeping the API token in the OS keyring.
func NewApp(db *gorm.DB) *App {
	return newApp(db, services.NewCredentialService())
}

func newApp(db *gorm.DB, credentials *services.CredentialService) *App {
	a := &App{}
	if sqlDB, err := db.DB(); err == nil {
		a.dbClose = sqlDB.Close
	}

	a.Credentials = credentials
	a.Settings = services.NewSettingsService(
		repositories.NewAppSettingsRepository(db),
		services.KeyringTokenSource(a.Credentials),
	)
	a.Notifier = services.NewNotifier()
	a.Documents = services.NewDocumentListService(repositories.NewKnownDocumentRepository(db))

	state := services.NewSessionState()
	a.Sessions = services.NewSessionService(state, a.Settings, a.Documents, a.Notifier)
	a.Conversation = services.NewConversation(a.Settings)
	a.References = services.NewReferencePanel(a.Settings)
	a.Queries = services.NewQueryService(state, a.Settings, a.Conversation, a.References, a.Notifier)
	a.Imports = services.NewImportService(a.Sessions, a.Notifier, a.Settings)
	return a
}

// bindings lists the structs exposed to the webview. Services that own rendered
// state (transcript, panel, list, settings, token) are reached through App only,
// so the webview can read them but not write them directly.
func (a *App) bindings() []interface{} {
	return []interface{}{
		a,
		a.Sessions,
		a.Queries,
		a.Imports,
	}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()

	a.Settings.Startup(ctx)
	a.Notifier.Startup(ctx)
	a.Documents.Startup(ctx)
	a.Sessions.Startup(ctx)
	a.Conversation.Startup(ctx)
	a.References.Startup(ctx)
	a.Queries.Startup(ctx)
	a.Imports.Startup(ctx)

	if err := a.Settings.Load(os.Getenv("DOCQA_BACKEND_URL")); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to load settings: %v", err))
	}
	if err := a.Documents.Load(); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to load document list: %v", err))
	}
}

// domReady restores the backend's current document once the webview listens for events.
func (a *App) domReady(ctx context.Context) {
	go a.Sessions.Restore()
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
	events.UseStdLogger()
	events.SetCustomEmitter(nil)
}

// ViewState returns the current state of every panel.
func (a *App) ViewState() ViewState {
	settings, _ := a.Settings.Get()
	msgs := a.Settings.Messages()
	return ViewState{
		Session:    a.Sessions.Snapshot(),
		Documents:  a.Documents.Entries(),
		Transcript: a.Conversation.Transcript(),
		References: a.References.View(),
		Busy:       a.Notifier.State(),
		Locale:     settings.Locale,
		Settings: SettingsView{
			BackendURL:     settings.BackendURL,
			Locale:         settings.Locale,
			TimeoutSeconds: settings.TimeoutSeconds,
			HasToken:       a.Credentials.HasToken(),
		},
		Labels: msgs.Labels,
		Chat: events.ChatInputEvent{
			Enabled:     a.Queries.InputEnabled(),
			Placeholder: msgs.InputPlaceholder,
		},
	}
}

// OpenPage opens a reference page image in the system browser.
func (a *App) OpenPage(imageURL string) error {
	return a.References.OpenPage(imageURL)
}

// SaveSettings validates and stores the settings, then returns the repainted view,
// whose labels follow the new locale.
func (a *App) SaveSettings(backendURL, locale string, timeoutSeconds int) (ViewState, error) {
	if _, err := a.Settings.Update(backendURL, locale, timeoutSeconds); err != nil {
		a.Notifier.Error(err.Error())
		return a.ViewState(), err
	}
	a.Notifier.Success(a.Settings.Messages().SettingsSaved)
	return a.ViewState(), nil
}

// SaveToken stores the backend API token. It reports only whether one is stored.
func (a *App) SaveToken(token string) (bool, error) {
	if err := a.Credentials.StoreToken(token); err != nil {
		a.Notifier.Error(err.Error())
		return a.Credentials.HasToken(), err
	}
	a.Notifier.Success(a.Settings.Messages().TokenSaved)
	return true, nil
}

func (a *App) DeleteToken() (bool, error) {
	if err := a.Credentials.DeleteToken(); err != nil {
		a.Notifier.Error(err.Error())
		return a.Credentials.HasToken(), err
	}
	a.Notifier.Success(a.Settings.Messages().TokenDeleted)
	return false, nil
}
