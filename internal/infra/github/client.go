package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
)

type Client struct {
	baseURL    string
	token      string
	owner      string
	repo       string
	labels     []string
	httpClient *http.Client
}

// ParseRepo splits an "owner/name" repository identifier.
func ParseRepo(s string) (owner, repo string, err error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	s = strings.TrimPrefix(s, "https://github.com/")
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (want owner/name)", s)
	}
	return parts[0], parts[1], nil
}

func NewClient(token, repository string, labels []string) (*Client, error) {
	return NewClientWithURL(token, repository, labels, "https://api.github.com")
}

func NewClientWithURL(token, repository string, labels []string, baseURL string) (*Client, error) {
	owner, repo, err := ParseRepo(repository)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		owner:      owner,
		repo:       repo,
		labels:     labels,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

type issueResponse struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

func (c *Client) CreateIssue(ctx context.Context, title, body string) (*domain.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("issue title is empty")
	}

	payload, err := json.Marshal(issueRequest{Title: title, Body: body, Labels: c.labels})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	path := fmt.Sprintf("/repos/%s/%s/issues", c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if err := infra.CheckResponse("github", resp); err != nil {
		return nil, err
	}

	var result issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &domain.Issue{Number: result.Number, URL: result.HTMLURL}, nil
}
