package services

import (
	"context"

	"docqa/internal/backend"
	"docqa/internal/i18n"
)

// ClientProvider hands out the backend client and message catalog for the current
// settings. Both change when the user edits settings, so callers fetch them per
// operation instead of holding on to them.
type ClientProvider interface {
	Backend() backend.API
	Messages() i18n.Messages
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
