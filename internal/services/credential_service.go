package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"docqa/internal/backend"
)

const (
	serviceName = "docqa"
	tokenKey    = "backend-token"
)

// CredentialService keeps the optional backend API token in the OS keyring.
type CredentialService struct {
	open func() (keyring.Keyring, error)
	mu   sync.Mutex
	ring keyring.Keyring
}

func NewCredentialService() *CredentialService {
	return &CredentialService{
		open: func() (keyring.Keyring, error) {
			return keyring.Open(keyring.Config{
				ServiceName: serviceName,
			})
		},
	}
}

// NewCredentialServiceWithKeyring uses ring directly, e.g. an in-memory keyring.
func NewCredentialServiceWithKeyring(ring keyring.Keyring) *CredentialService {
	return &CredentialService{ring: ring}
}

func (s *CredentialService) openRing() (keyring.Keyring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ring != nil {
		return s.ring, nil
	}
	if s.open == nil {
		return nil, errors.New("keyring is not configured")
	}
	ring, err := s.open()
	if err != nil {
		return nil, err
	}
	s.ring = ring
	return ring, nil
}

func (s *CredentialService) StoreToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	ring, err := s.openRing()
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{
		Key:         tokenKey,
		Data:        []byte(token),
		Label:       "docqa backend token",
		Description: "API token sent to the document Q&A backend",
	})
}

// HasToken reports whether a token is stored. The token itself never leaves Go.
func (s *CredentialService) HasToken() bool {
	return s.token() != ""
}

func (s *CredentialService) DeleteToken() error {
	ring, err := s.openRing()
	if err != nil {
		return err
	}
	if err := ring.Remove(tokenKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

func (s *CredentialService) token() string {
	ring, err := s.openRing()
	if err != nil {
		return ""
	}
	item, err := ring.Get(tokenKey)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

// KeyringTokenSource feeds the stored token to the backend client.
func KeyringTokenSource(s *CredentialService) backend.TokenSource {
	return s.token
}
