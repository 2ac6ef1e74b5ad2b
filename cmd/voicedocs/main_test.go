package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voice-to-docs/config"
	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra/terminal"
)

type fakeDevices struct {
	devices []domain.DeviceInfo
	err     error
}

func (f fakeDevices) ListDevices() ([]domain.DeviceInfo, error) {
	return f.devices, f.err
}

func newTestApp(cfg *config.Config, devices fakeDevices) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		console: terminal.NewConsole(&out),
		devices: devices,
	}, &out
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	cfg := &config.Config{
		Mode:   "normal",
		LLM:    config.LLMConfig{APIKey: "from-env"},
		GitHub: config.GitHubConfig{Token: "ghp_env", Repo: "acme/env"},
	}

	if err := rootCmd.ParseFlags([]string{"--mode", "agile-pm", "--github-repo", "acme/flag"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	applyFlags(rootCmd, cfg)

	if cfg.Mode != "agile-pm" {
		t.Errorf("mode: got %s", cfg.Mode)
	}
	if cfg.GitHub.Repo != "acme/flag" {
		t.Errorf("repo: got %s", cfg.GitHub.Repo)
	}
	if cfg.LLM.APIKey != "from-env" || cfg.GitHub.Token != "ghp_env" {
		t.Error("unset flags should not override config")
	}
	if explicitDevice(rootCmd) != nil {
		t.Error("device flag was not given")
	}
}

func TestSetupLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicedocs.log")

	logger, closeLog, err := setupLogger(config.LogConfig{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("setupLogger error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("recording started", "handle", 1)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"recording started"`) {
		t.Errorf("log output missing info line: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestSelectDevice_ConfiguredMissingFallsBack(t *testing.T) {
	configured := 9
	a, out := newTestApp(&config.Config{Audio: config.AudioConfig{Device: &configured}}, fakeDevices{
		devices: []domain.DeviceInfo{
			{ID: 0, Name: "Built-in Microphone", MaxInputChannels: 1, IsDefault: true},
			{ID: 1, Name: "RODE NT-USB", MaxInputChannels: 1},
		},
	})

	sel, err := a.selectDevice(nil)
	if err != nil {
		t.Fatalf("selectDevice error: %v", err)
	}
	if sel.Device.ID != 1 || sel.Reason == application.ReasonConfigured {
		t.Errorf("selection: got %+v", sel)
	}
	if !strings.Contains(out.String(), "Configured audio device 9 not found") {
		t.Errorf("missing warning:\n%s", out.String())
	}
}

func TestListDevices_NoInputIsAnError(t *testing.T) {
	a, out := newTestApp(&config.Config{}, fakeDevices{
		devices: []domain.DeviceInfo{{ID: 0, Name: "Speakers"}},
	})

	err := a.listDevices()
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
	if !strings.Contains(out.String(), "No audio input devices found") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestListDevices_MarksAutoSelected(t *testing.T) {
	a, out := newTestApp(&config.Config{}, fakeDevices{
		devices: []domain.DeviceInfo{
			{ID: 0, Name: "Built-in Microphone", MaxInputChannels: 1, IsDefault: true},
			{ID: 2, Name: "HyperX QuadCast", MaxInputChannels: 2},
		},
	})

	if err := a.listDevices(); err != nil {
		t.Fatalf("listDevices error: %v", err)
	}
	if !strings.Contains(out.String(), "HyperX QuadCast") || !strings.Contains(out.String(), "auto-selected") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestListDevices_ListerError(t *testing.T) {
	a, _ := newTestApp(&config.Config{}, fakeDevices{err: errors.New("portaudio not initialized")})

	if err := a.listDevices(); err == nil {
		t.Fatal("expected error")
	}
}
