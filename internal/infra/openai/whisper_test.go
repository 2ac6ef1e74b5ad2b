package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
	"voice-to-docs/internal/infra/openai"
)

func TestWhisperClient_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("model") != "whisper-1" || r.FormValue("language") != "en" {
			http.Error(w, "bad fields", http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		if string(data[:4]) != "RIFF" {
			http.Error(w, "not wav", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": " the cache never expires "})
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("test-key", "en", "", server.URL+"/v1/")

	text, err := client.Transcribe(context.Background(), domain.RecordingBuffer{
		Samples:    make([]int16, 1600),
		SampleRate: 16000,
		Channels:   1,
	})
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}

	if text != " the cache never expires " {
		t.Errorf("text: got %q", text)
	}
}

func TestWhisperClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("", "en", "whisper-1", server.URL)

	_, err := client.Transcribe(context.Background(), domain.RecordingBuffer{
		Samples:    make([]int16, 10),
		SampleRate: 16000,
		Channels:   1,
	})

	var apiErr *infra.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 APIError, got %v", err)
	}
}
