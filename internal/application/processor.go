package application

import (
	"context"

	"voice-to-docs/internal/domain"
)

// DocumentProcessor reshapes a transcript with an LLM according to prompt.
type DocumentProcessor interface {
	Process(ctx context.Context, transcript string, prompt domain.Prompt) (string, error)
}

type IssueCreator interface {
	CreateIssue(ctx context.Context, title, body string) (*domain.Issue, error)
}
