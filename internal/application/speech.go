package application

import (
	"context"

	"voice-to-docs/internal/domain"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, audio domain.RecordingBuffer) (string, error)
}
