package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
	"voice-to-docs/internal/infra/audio"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// WhisperClient talks to an OpenAI-compatible /audio/transcriptions endpoint,
// either api.openai.com or a local whisper server.
type WhisperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
	language   string
}

func NewWhisperClientWithURL(apiKey, language, model, baseURL string) *WhisperClient {
	if model == "" {
		model = "whisper-1"
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &WhisperClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		language:   language,
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, recording domain.RecordingBuffer) (string, error) {
	wav, err := audio.EncodeWAV(recording)
	if err != nil {
		return "", fmt.Errorf("encoding audio: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err = part.Write(wav); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}

	if err = writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("writing model field: %w", err)
	}

	if c.language != "" {
		if err = writer.WriteField("language", c.language); err != nil {
			return "", fmt.Errorf("writing language field: %w", err)
		}
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("closing writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckResponse("whisper", resp); err != nil {
		return "", err
	}

	var result transcriptionResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return result.Text, nil
}
