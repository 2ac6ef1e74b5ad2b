package application

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"voice-to-docs/internal/domain"
)

type ControllerDeps struct {
	Recorder Recorder
	Pipeline *Pipeline
	UI       UI
	Logger   *slog.Logger

	// Optional collaborators; nil disables them.
	Issues    IssueCreator
	Notifier  Notifier
	History   HistoryStore
	Clipboard Clipboard
}

type ControllerOptions struct {
	IssueTriggers []string
	// PromptAlways offers issue creation after every agile-pm document, not
	// only when the transcript asks for one.
	PromptAlways bool
}

// Controller drives a Session through record, transcribe, process and the
// optional issue confirmation, one command at a time.
type Controller struct {
	session   *Session
	recorder  Recorder
	pipeline  *Pipeline
	ui        UI
	logger    *slog.Logger
	issues    IssueCreator
	notifier  Notifier
	history   HistoryStore
	clipboard Clipboard

	triggers     []string
	promptAlways bool

	handle       domain.RecordingHandle
	pending      *domain.ProcessedDocument
	issueDefault bool
	now          func() time.Time
}

func NewController(session *Session, deps ControllerDeps, opts ControllerOptions) *Controller {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	triggers := opts.IssueTriggers
	if len(triggers) == 0 {
		triggers = DefaultIssueTriggers()
	}
	return &Controller{
		session:      session,
		recorder:     deps.Recorder,
		pipeline:     deps.Pipeline,
		ui:           deps.UI,
		logger:       deps.Logger,
		issues:       deps.Issues,
		notifier:     notifier,
		history:      deps.History,
		clipboard:    deps.Clipboard,
		triggers:     triggers,
		promptAlways: opts.PromptAlways,
		now:          time.Now,
	}
}

func (c *Controller) Session() *Session {
	return c.session
}

// Run reads commands line by line until the user quits, the input ends or ctx
// is cancelled.
func (c *Controller) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	c.ui.Info(fmt.Sprintf("Mode: %s", c.session.mode.Label()))
	if id, ok := c.session.DeviceID(); ok {
		c.ui.Info(fmt.Sprintf("Audio device: %d", id))
	}

	for c.session.Running() {
		c.ui.Prompt(c.promptText())

		select {
		case <-ctx.Done():
			c.shutdown(context.WithoutCancel(ctx))
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				c.shutdown(ctx)
				return nil
			}
			c.Handle(ctx, line)
		}
	}

	return nil
}

func (c *Controller) Handle(ctx context.Context, line string) {
	c.Dispatch(ctx, ParseCommand(c.session.state, line))
}

// Dispatch applies one command to the state machine.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) {
	state := c.session.state
	c.logger.Debug("dispatch", "state", state, "command", cmd.Kind, "input", cmd.Raw)

	if cmd.Kind == CmdHelp {
		c.ui.Info(helpText)
		return
	}

	if cmd.Kind == CmdSwitchMode && state != StateIdle {
		c.ui.Warn(fmt.Sprintf("Mode can only be changed while idle (currently %s)", state))
		return
	}

	switch state {
	case StateIdle:
		c.handleIdle(ctx, cmd)
	case StateRecording:
		c.handleRecording(ctx, cmd)
	case StateAwaitingIssueConfirmation:
		c.handleConfirmation(ctx, cmd)
	case StateProcessing:
		c.ui.Warn("Still processing the last recording, please wait")
	case StateTerminated:
	}
}

func (c *Controller) handleIdle(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdStartRecord:
		handle, err := c.recorder.Start(ctx)
		if err != nil {
			c.logger.Error("starting recording", "error", err)
			c.ui.Error(fmt.Errorf("starting recording: %w", err))
			return
		}
		c.handle = handle
		c.session.state = StateRecording
		c.logger.Info("recording started", "handle", handle)

	case CmdSwitchMode:
		c.switchMode(cmd.Mode)

	case CmdQuit:
		c.session.state = StateTerminated

	default:
		c.ui.Warn(fmt.Sprintf("Unknown command %q (h for help)", cmd.Raw))
	}
}

func (c *Controller) switchMode(target domain.Mode) {
	if target == "" {
		target = c.session.mode.Next()
	}
	if target == c.session.mode {
		c.ui.Info(fmt.Sprintf("Already in %s mode", target.Label()))
		return
	}
	c.session.mode = target
	c.logger.Info("mode switched", "mode", target)
	c.ui.Success(fmt.Sprintf("Switched to %s mode", target.Label()))
}

func (c *Controller) handleRecording(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdStopRecord:
		c.stopAndProcess(ctx)

	case CmdQuit:
		if err := c.recorder.Discard(c.handle); err != nil {
			c.logger.Warn("discarding recording", "error", err)
		}
		c.session.state = StateTerminated

	default:
		c.ui.Warn("Recording... press Enter to stop")
	}
}

func (c *Controller) stopAndProcess(ctx context.Context) {
	c.session.state = StateProcessing
	defer func() {
		if c.session.state == StateProcessing {
			c.session.state = StateIdle
		}
	}()

	audio, err := c.recorder.Stop(c.handle)
	if err != nil {
		c.logger.Error("stopping recording", "error", err)
		c.ui.Error(err)
		return
	}
	if audio.Empty() {
		c.ui.Warn("No audio recorded")
		return
	}
	c.ui.Success(fmt.Sprintf("Recording complete (%s)", audio.Duration().Round(100*time.Millisecond)))

	c.ui.Info("Transcribing audio...")
	transcript, err := c.pipeline.Transcribe(ctx, audio)
	if err != nil {
		c.logger.Error("transcribing", "error", err)
		c.ui.Error(err)
		return
	}
	c.ui.Transcript(transcript)

	mode := c.session.mode
	c.ui.Info(fmt.Sprintf("Processing in %s mode...", mode.Label()))
	doc, err := c.pipeline.Process(ctx, transcript, mode)
	if err != nil {
		c.logger.Error("processing transcript", "error", err)
		c.ui.Error(err)
		return
	}
	c.ui.Document(doc)
	c.deliver(ctx, doc)

	intent := HasIssueIntent(transcript, c.triggers)
	c.logger.Info("document ready", "mode", mode, "issue_intent", intent)

	if doc.Mode != domain.ModeAgilePM || (!intent && !c.promptAlways) {
		c.finish(ctx, doc, "")
		return
	}
	if c.issues == nil {
		if intent {
			c.ui.Warn("Issue requested but GitHub is not configured (set GITHUB_TOKEN and GITHUB_REPO)")
		}
		c.finish(ctx, doc, "")
		return
	}

	c.pending = &doc
	c.issueDefault = intent
	c.session.state = StateAwaitingIssueConfirmation
}

func (c *Controller) handleConfirmation(ctx context.Context, cmd Command) {
	var create bool
	switch cmd.Kind {
	case CmdConfirm:
		create = true
	case CmdDecline:
		create = false
	case CmdDefaultAnswer:
		create = c.issueDefault
	default:
		c.ui.Warn("Please answer y or n")
		return
	}

	doc := *c.pending
	c.pending = nil
	c.session.state = StateIdle

	if !create {
		c.ui.Info("Skipped issue creation")
		c.finish(ctx, doc, "")
		return
	}

	c.ui.Info("Creating GitHub issue...")
	issue, err := c.issues.CreateIssue(ctx, doc.Title(), IssueBody(doc))
	if err != nil {
		err = wrapAs(domain.ErrIssueCreation, err)
		c.logger.Error("creating issue", "error", err)
		c.ui.Error(err)
		c.ui.Warn("The document above was kept; copy it manually or try again")
		c.finish(ctx, doc, "")
		return
	}

	c.logger.Info("issue created", "number", issue.Number, "url", issue.URL)
	c.ui.Success(fmt.Sprintf("Created issue #%d: %s", issue.Number, issue.URL))
	if err := c.notifier.Notify(ctx, fmt.Sprintf("Issue #%d created: %s", issue.Number, doc.Title())); err != nil {
		c.logger.Error("notifying issue", "error", err)
	}
	c.finish(ctx, doc, issue.URL)
}

// deliver hands a fresh document to the clipboard and notifiers.
func (c *Controller) deliver(ctx context.Context, doc domain.ProcessedDocument) {
	if c.clipboard != nil {
		if err := c.clipboard.Copy(doc.Text); err != nil {
			c.logger.Warn("copying to clipboard", "error", err)
		} else {
			c.ui.Info("Copied to clipboard")
		}
	}
	if err := c.notifier.Notify(ctx, fmt.Sprintf("Document ready: %s", doc.Title())); err != nil {
		c.logger.Error("notifying document", "error", err)
	}
}

func (c *Controller) finish(ctx context.Context, doc domain.ProcessedDocument, issueURL string) {
	if c.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:         uuid.NewString(),
		Mode:       doc.Mode,
		Transcript: doc.Transcript,
		Document:   doc.Text,
		IssueURL:   issueURL,
		CreatedAt:  c.now(),
	}
	if err := c.history.Save(ctx, entry); err != nil {
		c.logger.Error("saving history", "error", err)
	}
}

func (c *Controller) shutdown(ctx context.Context) {
	switch c.session.state {
	case StateRecording:
		if err := c.recorder.Discard(c.handle); err != nil {
			c.logger.Warn("discarding recording", "error", err)
		}
	case StateAwaitingIssueConfirmation:
		c.finish(ctx, *c.pending, "")
		c.pending = nil
	}
	c.session.state = StateTerminated
}

func (c *Controller) promptText() string {
	switch c.session.state {
	case StateRecording:
		return "Recording... press Enter to stop"
	case StateAwaitingIssueConfirmation:
		if c.issueDefault {
			return "Create a GitHub issue from this document? [Y/n]"
		}
		return "Create a GitHub issue from this document? [y/N]"
	default:
		return fmt.Sprintf("[%s] Press Enter to start recording (m: switch mode, q: quit, h: help)", c.session.mode.Label())
	}
}
