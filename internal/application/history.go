package application

import (
	"context"

	"voice-to-docs/internal/domain"
)

type HistoryStore interface {
	Save(ctx context.Context, entry domain.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}

type Clipboard interface {
	Copy(text string) error
}
