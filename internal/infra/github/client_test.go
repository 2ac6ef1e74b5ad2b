package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-to-docs/internal/infra"
	"voice-to-docs/internal/infra/github"
)

func TestClient_CreateIssue(t *testing.T) {
	var got struct {
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Labels []string `json:"labels"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/acme/app/issues" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer gh-token" {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"number":   7,
			"html_url": "https://github.com/acme/app/issues/7",
		})
	}))
	defer server.Close()

	client, err := github.NewClientWithURL("gh-token", "acme/app", []string{"voice"}, server.URL)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	issue, err := client.CreateIssue(context.Background(), "Fix login crash", "Steps...")
	if err != nil {
		t.Fatalf("CreateIssue error: %v", err)
	}

	if issue.Number != 7 || issue.URL != "https://github.com/acme/app/issues/7" {
		t.Errorf("issue: got %+v", issue)
	}
	if got.Title != "Fix login crash" || got.Body != "Steps..." {
		t.Errorf("payload: got %+v", got)
	}
	if len(got.Labels) != 1 || got.Labels[0] != "voice" {
		t.Errorf("labels: got %v", got.Labels)
	}
}

func TestClient_CreateIssueUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := github.NewClientWithURL("wrong", "acme/app", nil, server.URL)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	_, err = client.CreateIssue(context.Background(), "title", "body")

	var apiErr *infra.APIError
	if !errors.As(err, &apiErr) || !apiErr.Unauthorized() {
		t.Fatalf("expected unauthorized APIError, got %v", err)
	}
}

func TestParseRepo(t *testing.T) {
	for in, want := range map[string]string{
		"acme/app":                       "acme/app",
		"https://github.com/acme/app.git": "acme/app",
	} {
		owner, repo, err := github.ParseRepo(in)
		if err != nil {
			t.Fatalf("ParseRepo(%q) error: %v", in, err)
		}
		if owner+"/"+repo != want {
			t.Errorf("ParseRepo(%q): got %s/%s, want %s", in, owner, repo, want)
		}
	}

	for _, bad := range []string{"", "acme", "acme/app/extra", "/app"} {
		if _, _, err := github.ParseRepo(bad); err == nil {
			t.Errorf("ParseRepo(%q): expected error", bad)
		}
	}
}
