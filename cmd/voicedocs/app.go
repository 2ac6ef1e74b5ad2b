package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"voice-to-docs/config"
	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra/anthropic"
	"voice-to-docs/internal/infra/audio"
	"voice-to-docs/internal/infra/clipboard"
	"voice-to-docs/internal/infra/desktop"
	"voice-to-docs/internal/infra/gemini"
	"voice-to-docs/internal/infra/github"
	"voice-to-docs/internal/infra/openai"
	"voice-to-docs/internal/infra/pushover"
	"voice-to-docs/internal/infra/sqlite"
	"voice-to-docs/internal/infra/terminal"
)

// app holds the loaded configuration and the collaborators shared by every
// subcommand.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	console *terminal.Console
	devices application.DeviceLister
	closers []func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, cfg)

	logger, closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		console: terminal.NewConsole(cmd.OutOrStdout()),
		devices: audio.PortAudioDevices{},
		closers: []func(){closeLog},
	}
	for _, w := range cfg.Warnings {
		a.console.Warn(w)
		logger.Warn("config", "warning", w)
	}
	return a, nil
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("api-key") {
		cfg.LLM.APIKey = opts.apiKey
	}
	if changed("mode") {
		cfg.Mode = opts.mode
	}
	if changed("github-token") {
		cfg.GitHub.Token = opts.githubToken
	}
	if changed("github-repo") {
		cfg.GitHub.Repo = opts.githubRepo
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) mode() (domain.Mode, error) {
	mode, err := domain.ParseMode(a.cfg.Mode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return mode, nil
}

// pipeline validates the configuration and builds the speech and LLM clients.
func (a *app) pipeline() (*application.Pipeline, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	tc := a.cfg.Transcription
	stt := openai.NewWhisperClientWithURL(tc.APIKey, tc.Language, tc.Model, tc.BaseURL)

	var processor application.DocumentProcessor
	switch a.cfg.LLM.Provider {
	case config.ProviderGemini:
		processor = gemini.NewClient(a.cfg.LLM.APIKey, a.cfg.LLM.Model, a.cfg.LLM.MaxTokens)
	default:
		processor = anthropic.NewClaudeClient(a.cfg.LLM.APIKey, a.cfg.LLM.Model, a.cfg.LLM.MaxTokens)
	}

	a.logger.Info("pipeline ready",
		"llm_provider", a.cfg.LLM.Provider,
		"transcription_url", tc.BaseURL,
	)
	return application.NewPipeline(stt, processor, a.cfg.PromptSet(), a.logger), nil
}

// deps wires the optional collaborators. Failures here only disable the
// feature.
func (a *app) deps(pipeline *application.Pipeline, recorder application.Recorder) application.ControllerDeps {
	deps := application.ControllerDeps{
		Recorder: recorder,
		Pipeline: pipeline,
		UI:       a.console,
		Logger:   a.logger,
		Notifier: a.notifier(),
	}

	if a.cfg.GitHubEnabled() {
		client, err := github.NewClient(a.cfg.GitHub.Token, a.cfg.GitHub.Repo, a.cfg.GitHub.Labels)
		if err != nil {
			a.console.Warn(fmt.Sprintf("GitHub disabled: %v", err))
		} else {
			deps.Issues = client
			a.logger.Info("github issues enabled", "repo", client.Repository())
		}
	}

	if a.cfg.HistoryEnabled() {
		if store, err := a.openHistory(); err != nil {
			a.console.Warn(fmt.Sprintf("History disabled: %v", err))
		} else {
			deps.History = store
		}
	}

	if a.cfg.Output.CopyToClipboard {
		if cb, err := clipboard.NewSystem(); err != nil {
			a.console.Warn(fmt.Sprintf("Clipboard disabled: %v", err))
		} else {
			deps.Clipboard = cb
		}
	}

	return deps
}

func (a *app) notifier() application.Notifier {
	var notifiers application.MultiNotifier
	if a.cfg.Notify.Desktop {
		notifiers = append(notifiers, desktop.NewNotifier("Voice to Docs"))
	}
	if p := a.cfg.Notify.Pushover; p.Enabled {
		notifiers = append(notifiers, pushover.NewClient(p.Token, p.UserKey))
	}
	if len(notifiers) == 0 {
		return &application.NoopNotifier{}
	}
	return notifiers
}

func (a *app) openHistory() (*sqlite.HistoryStore, error) {
	path := a.cfg.History.Path
	if path == "" {
		path = sqlite.DefaultPath()
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := store.Close(); err != nil {
			a.logger.Error("closing history", "error", err)
		}
	})
	return store, nil
}

// selectDevice lists input devices and applies the selection rules. A
// configured device that is missing only produces a warning.
func (a *app) selectDevice(explicit *int) (application.Selection, error) {
	devices, err := a.devices.ListDevices()
	if err != nil {
		return application.Selection{}, fmt.Errorf("listing audio devices: %w", err)
	}
	a.logger.Debug("audio devices", "count", len(devices))

	vendors := a.cfg.Audio.PreferredVendors
	if len(vendors) == 0 {
		vendors = application.DefaultPreferredVendors()
	}

	sel, err := application.SelectDevice(devices, explicit, a.cfg.Audio.Device, vendors)
	if err != nil {
		return application.Selection{}, err
	}

	if explicit == nil && a.cfg.Audio.Device != nil && sel.Reason != application.ReasonConfigured {
		a.console.Warn(fmt.Sprintf("Configured audio device %d not found, auto-detecting", *a.cfg.Audio.Device))
	}
	a.logger.Info("audio device selected", "id", sel.Device.ID, "name", sel.Device.Name, "reason", sel.Reason)
	return sel, nil
}

// listDevices prints every input device and marks the one auto-selection
// would pick. Having no input device at all is an error.
func (a *app) listDevices() error {
	devices, err := a.devices.ListDevices()
	if err != nil {
		return fmt.Errorf("listing audio devices: %w", err)
	}

	selected := -1
	if sel, err := a.selectDevice(nil); err == nil {
		selected = sel.Device.ID
	}
	a.console.Devices(devices, selected)

	if selected < 0 {
		return fmt.Errorf("%w: no audio input devices found", domain.ErrDeviceNotFound)
	}
	return nil
}
