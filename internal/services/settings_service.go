package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"docqa/internal/backend"
	"docqa/internal/events"
	"docqa/internal/i18n"
	"docqa/internal/models"
	"docqa/internal/repositories"
)

const (
	minTimeoutSeconds = 1
	maxTimeoutSeconds = 600
)

// SettingsService owns the persisted app settings and the backend client built
// from them. It is the ClientProvider for the rest of the services.
type SettingsService struct {
	ctx      context.Context
	repo     repositories.AppSettingsRepository
	tokens   backend.TokenSource
	mu       sync.RWMutex
	settings models.AppSettings
	client   backend.API
}

func NewSettingsService(repo repositories.AppSettingsRepository, tokens backend.TokenSource) *SettingsService {
	return &SettingsService{
		repo:     repo,
		tokens:   tokens,
		settings: *repositories.DefaultAppSettings(),
	}
}

func (s *SettingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Load reads stored settings and builds the backend client. A non-empty
// overrideURL (from the environment) wins over the stored URL for this run only.
func (s *SettingsService) Load(overrideURL string) error {
	ctx := orBackground(s.ctx)
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	effective := *stored
	if o := strings.TrimSpace(overrideURL); o != "" {
		effective.BackendURL = o
	}

	client, err := s.buildClient(effective)
	if err != nil {
		events.LogWarn(ctx, fmt.Sprintf("backend url %q rejected (%v); using %s", effective.BackendURL, err, repositories.DefaultBackendURL))
		effective.BackendURL = repositories.DefaultBackendURL
		if client, err = s.buildClient(effective); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.settings = effective
	s.client = client
	s.mu.Unlock()
	return nil
}

func (s *SettingsService) Get() (*models.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	return &out, nil
}

func (s *SettingsService) Update(backendURL, locale string, timeoutSeconds int) (*models.AppSettings, error) {
	backendURL = strings.TrimSpace(backendURL)
	locale = strings.TrimSpace(locale)

	if _, err := backend.ParseBaseURL(backendURL); err != nil {
		return nil, err
	}
	if locale == "" {
		return nil, errors.New("locale is required")
	}
	if !i18n.Supported(locale) {
		return nil, errors.New("locale must be 'en' or 'ko'")
	}
	if timeoutSeconds < minTimeoutSeconds || timeoutSeconds > maxTimeoutSeconds {
		return nil, fmt.Errorf("timeout must be between %d and %d seconds", minTimeoutSeconds, maxTimeoutSeconds)
	}

	ctx := orBackground(s.ctx)
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	current.BackendURL = backendURL
	current.Locale = locale
	current.TimeoutSeconds = timeoutSeconds
	current.UpdatedAt = time.Now()

	client, err := s.buildClient(*current)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.settings = *current
	s.client = client
	s.mu.Unlock()

	out := *current
	return &out, nil
}

// Backend returns the client for the current settings.
func (s *SettingsService) Backend() backend.API {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()
	if client != nil {
		return client
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		c, err := s.buildClient(s.settings)
		if err != nil {
			// Settings were validated on the way in; the default URL always parses.
			c, _ = backend.NewClient(repositories.DefaultBackendURL, backend.WithTokenSource(s.tokens))
		}
		s.client = c
	}
	return s.client
}

func (s *SettingsService) Messages() i18n.Messages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return i18n.For(s.settings.Locale)
}

func (s *SettingsService) buildClient(settings models.AppSettings) (backend.API, error) {
	return backend.NewClient(settings.BackendURL,
		backend.WithTimeout(time.Duration(settings.TimeoutSeconds)*time.Second),
		backend.WithTokenSource(s.tokens),
	)
}
