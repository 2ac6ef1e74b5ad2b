package infra_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"voice-to-docs/internal/infra"
)

func TestCheckResponse(t *testing.T) {
	ok := &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader(""))}
	if err := infra.CheckResponse("github", ok); err != nil {
		t.Errorf("2xx should pass, got %v", err)
	}

	bad := &http.Response{StatusCode: http.StatusUnauthorized, Body: io.NopCloser(strings.NewReader("bad credentials"))}
	err := infra.CheckResponse("github", bad)

	var apiErr *infra.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if !apiErr.Unauthorized() {
		t.Error("401 should be unauthorized")
	}
	if err.Error() != "github API error 401: bad credentials" {
		t.Errorf("message: got %q", err.Error())
	}
}
