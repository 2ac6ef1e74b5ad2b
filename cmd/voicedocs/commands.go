package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/infra/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

var processCmd = &cobra.Command{
	Use:   "process FILE.wav",
	Short: "Transcribe and process a recorded WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Process WAV files dropped into a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently processed documents",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	processCmd.Flags().Bool("issue", false, "create a GitHub issue when the transcript asks for one (agile-pm mode)")
	watchCmd.Flags().Bool("issue", false, "create GitHub issues when transcripts ask for one (agile-pm mode)")
	historyCmd.Flags().IntP("limit", "n", 10, "number of documents to show")

	rootCmd.AddCommand(devicesCmd, processCmd, watchCmd, historyCmd)
}

func runDevices(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	terminate, err := audio.Initialize()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	defer terminate()

	return a.listDevices()
}

func runProcess(cmd *cobra.Command, args []string) error {
	createIssues, _ := cmd.Flags().GetBool("issue")

	a, batch, err := newBatchApp(cmd, createIssues)
	if err != nil {
		return err
	}
	defer a.close()

	recording, err := audio.ReadWAVFile(args[0])
	if err != nil {
		return err
	}

	_, err = batch.Handle(cmd.Context(), args[0], recording)
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	createIssues, _ := cmd.Flags().GetBool("issue")

	a, batch, err := newBatchApp(cmd, createIssues)
	if err != nil {
		return err
	}
	defer a.close()

	source := audio.NewFileSource(args[0])
	a.console.Info(fmt.Sprintf("Watching %s for .wav files (Ctrl+C to stop)", source.Dir()))

	err = batch.Watch(cmd.Context(), source)
	if errors.Is(err, context.Canceled) {
		a.console.Info("Goodbye!")
		return nil
	}
	return err
}

func newBatchApp(cmd *cobra.Command, createIssues bool) (*app, *application.Batch, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := a.pipeline()
	if err != nil {
		a.close()
		return nil, nil, err
	}
	mode, err := a.mode()
	if err != nil {
		a.close()
		return nil, nil, err
	}

	deps := a.deps(pipeline, nil)
	batch := application.NewBatch(deps, application.BatchOptions{
		Mode:          mode,
		IssueTriggers: a.cfg.Issues.Triggers,
		CreateIssues:  createIssues,
	})
	return a, batch, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.openHistory()
	if err != nil {
		return err
	}

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	a.console.History(entries)
	return nil
}
