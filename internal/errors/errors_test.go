package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("API request limit reached")

	if err.Error() != "API request limit reached" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := fmt.Errorf("fetching title: %w", err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
	if IsRateLimitError(errors.New("other")) {
		t.Fatalf("IsRateLimitError returned true for unrelated error")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("slow down", 30*time.Second)

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitErrorWithRetry")
	}
	want := "slow down (retry after 30s)"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       string
	}{
		{"not found", 404, "entity not found upstream (HTTP 404)"},
		{"rate limited", 429, "upstream rate limit reached (HTTP 429)"},
		{"server error", 503, "upstream server error (HTTP 503)"},
		{"other", 418, "upstream request failed (HTTP 418)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUpstreamError(tt.statusCode)
			if err.Error() != tt.want {
				t.Fatalf("unexpected message: got %q want %q", err.Error(), tt.want)
			}
			if !IsUpstreamError(fmt.Errorf("wrapped: %w", err)) {
				t.Fatalf("IsUpstreamError returned false for wrapped UpstreamError")
			}
		})
	}
}

func TestMalformedResponseError(t *testing.T) {
	err := NewMalformedResponseError("TitleCast", "pageInfo")

	want := "malformed response for TitleCast: missing pageInfo"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
	if !IsMalformedResponseError(fmt.Errorf("page 3: %w", err)) {
		t.Fatalf("IsMalformedResponseError returned false for wrapped error")
	}
	if IsMalformedResponseError(errors.New("other")) {
		t.Fatalf("IsMalformedResponseError returned true for unrelated error")
	}
}
