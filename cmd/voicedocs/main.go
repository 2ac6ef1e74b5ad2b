package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"voice-to-docs/config"
	"voice-to-docs/internal/application"
	"voice-to-docs/internal/infra/audio"
)

type rootOptions struct {
	configPath  string
	envFile     string
	apiKey      string
	device      int
	listDevices bool
	mode        string
	githubToken string
	githubRepo  string
	logLevel    string
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:   "voicedocs",
	Short: "Turn spoken notes into engineering docs or agile tickets",
	Long: `Record a voice note, transcribe it, and let an LLM rewrite it as
engineering requirements or an agile ticket. In agile-pm mode the result can
be filed as a GitHub issue.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runInteractive,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "config.yaml", "path to config file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "path to .env file")
	pf.StringVarP(&opts.apiKey, "api-key", "k", "", "LLM API key (overrides ANTHROPIC_API_KEY / GEMINI_API_KEY)")
	pf.StringVarP(&opts.mode, "mode", "m", "", "processing mode: normal or agile-pm")
	pf.StringVar(&opts.githubToken, "github-token", "", "GitHub token for issue creation")
	pf.StringVar(&opts.githubRepo, "github-repo", "", "GitHub repository as owner/repo")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().IntVarP(&opts.device, "device", "d", -1, "audio input device index")
	rootCmd.Flags().BoolVar(&opts.listDevices, "list-devices", false, "list audio input devices and exit")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	if opts.listDevices {
		return runDevices(cmd, nil)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	pipeline, err := a.pipeline()
	if err != nil {
		return err
	}

	mode, err := a.mode()
	if err != nil {
		return err
	}

	terminate, err := audio.Initialize()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer terminate()

	sel, err := a.selectDevice(explicitDevice(cmd))
	if err != nil {
		return err
	}
	a.console.Success(fmt.Sprintf("Using audio device %d: %s (%s)", sel.Device.ID, sel.Device.Name, sel.Reason))

	format := application.DefaultAudioFormat()
	format.SampleRate = a.cfg.Audio.SampleRate
	recorder := audio.NewRecorder(audio.OpenPortAudioStream, sel.Device.ID, format, a.logger)

	deviceID := sel.Device.ID
	controller := application.NewController(
		application.NewSession(mode, &deviceID),
		a.deps(pipeline, recorder),
		application.ControllerOptions{
			IssueTriggers: a.cfg.Issues.Triggers,
			PromptAlways:  a.cfg.Issues.PromptAlways,
		},
	)

	a.logger.Info("starting voice to docs", "mode", mode, "device", deviceID)

	err = controller.Run(cmd.Context(), cmd.InOrStdin())
	a.console.Info("Goodbye!")
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func explicitDevice(cmd *cobra.Command) *int {
	f := cmd.Flags().Lookup("device")
	if f == nil || !f.Changed {
		return nil
	}
	id := opts.device
	return &id
}

// setupLogger writes to stderr, or to cfg.File when set, so log lines stay out
// of the console output.
func setupLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(handler), closeFn, nil
}
