package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"voice-to-docs/internal/domain"
)

// RecordingSource yields finished recordings without user interaction, such as
// WAV files dropped into a folder.
type RecordingSource interface {
	Name() string
	Start(ctx context.Context) error
	Next(ctx context.Context) (string, domain.RecordingBuffer, error)
}

type BatchOptions struct {
	Mode          domain.Mode
	IssueTriggers []string
	// CreateIssues files an issue for agile-pm documents whose transcript asks
	// for one. There is no confirmation step.
	CreateIssues bool
	// ErrorBackoff is the pause after a source failure. Defaults to 500ms.
	ErrorBackoff time.Duration
}

// Batch processes recordings that are not captured interactively.
type Batch struct {
	pipeline *Pipeline
	ui       UI
	logger   *slog.Logger
	issues   IssueCreator
	notifier Notifier
	history  HistoryStore

	mode     domain.Mode
	triggers []string
	create   bool
	backoff  time.Duration
	now      func() time.Time
}

func NewBatch(deps ControllerDeps, opts BatchOptions) *Batch {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	triggers := opts.IssueTriggers
	if len(triggers) == 0 {
		triggers = DefaultIssueTriggers()
	}
	mode := opts.Mode
	if mode == "" {
		mode = domain.ModeNormal
	}
	backoff := opts.ErrorBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &Batch{
		pipeline: deps.Pipeline,
		ui:       deps.UI,
		logger:   deps.Logger,
		issues:   deps.Issues,
		notifier: notifier,
		history:  deps.History,
		mode:     mode,
		triggers: triggers,
		create:   opts.CreateIssues,
		backoff:  backoff,
		now:      time.Now,
	}
}

// Watch processes recordings from source until ctx is cancelled. Failures on a
// single recording are reported and the loop moves on.
func (b *Batch) Watch(ctx context.Context, source RecordingSource) error {
	b.logger.Info("starting recording source", "source", source.Name())
	if err := source.Start(ctx); err != nil {
		return fmt.Errorf("starting %s source: %w", source.Name(), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name, audio, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			b.logger.Error("reading recording", "name", name, "error", err)
			if name == "" {
				name = source.Name()
			}
			b.ui.Error(fmt.Errorf("reading %s: %w", name, err))
			if err := b.wait(ctx); err != nil {
				return err
			}
			continue
		}

		if _, err := b.Handle(ctx, name, audio); err != nil {
			b.logger.Error("processing recording", "name", name, "error", err)
		}
	}
}

// Handle runs one recording through the pipeline, files an issue if asked to,
// and records the result.
func (b *Batch) Handle(ctx context.Context, name string, audio domain.RecordingBuffer) (domain.ProcessedDocument, error) {
	b.ui.Info(fmt.Sprintf("Processing %s (%s)", name, audio.Duration().Round(100*time.Millisecond)))

	transcript, err := b.pipeline.Transcribe(ctx, audio)
	if err != nil {
		b.ui.Error(err)
		return domain.ProcessedDocument{}, err
	}
	b.ui.Transcript(transcript)

	doc, err := b.pipeline.Process(ctx, transcript, b.mode)
	if err != nil {
		b.ui.Error(err)
		return domain.ProcessedDocument{}, err
	}
	b.ui.Document(doc)

	if err := b.notifier.Notify(ctx, fmt.Sprintf("Document ready: %s", doc.Title())); err != nil {
		b.logger.Error("notifying document", "error", err)
	}

	issueURL, err := b.maybeCreateIssue(ctx, doc)
	if err != nil {
		b.ui.Error(err)
	}

	if b.history != nil {
		entry := domain.HistoryEntry{
			ID:         uuid.NewString(),
			Mode:       doc.Mode,
			Transcript: doc.Transcript,
			Document:   doc.Text,
			IssueURL:   issueURL,
			CreatedAt:  b.now(),
		}
		if err := b.history.Save(ctx, entry); err != nil {
			b.logger.Error("saving history", "error", err)
		}
	}

	return doc, err
}

func (b *Batch) maybeCreateIssue(ctx context.Context, doc domain.ProcessedDocument) (string, error) {
	if !b.create || doc.Mode != domain.ModeAgilePM || !HasIssueIntent(doc.Transcript, b.triggers) {
		return "", nil
	}
	if b.issues == nil {
		b.ui.Warn("Issue requested but GitHub is not configured (set GITHUB_TOKEN and GITHUB_REPO)")
		return "", nil
	}

	issue, err := b.issues.CreateIssue(ctx, doc.Title(), IssueBody(doc))
	if err != nil {
		return "", wrapAs(domain.ErrIssueCreation, err)
	}

	b.logger.Info("issue created", "number", issue.Number, "url", issue.URL)
	b.ui.Success(fmt.Sprintf("Created issue #%d: %s", issue.Number, issue.URL))
	return issue.URL, nil
}

func (b *Batch) wait(ctx context.Context) error {
	timer := time.NewTimer(b.backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
