package mocks

import (
	"docqa/internal/backend"
	"docqa/internal/i18n"
)

// ClientProviderMock serves a fixed backend and locale.
type ClientProviderMock struct {
	API    backend.API
	Locale string
}

func (m *ClientProviderMock) Backend() backend.API {
	return m.API
}

func (m *ClientProviderMock) Messages() i18n.Messages {
	return i18n.For(m.Locale)
}
