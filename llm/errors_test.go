package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFromStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantType  string
		retryable bool
	}{
		{400, "*llm.InvalidRequestError", false},
		{401, "*llm.AuthenticationError", false},
		{403, "*llm.AuthenticationError", false},
		{404, "*llm.NotFoundError", false},
		{408, "*llm.RequestTimeoutError", true},
		{422, "*llm.InvalidRequestError", false},
		{429, "*llm.RateLimitError", true},
		{500, "*llm.ServerError", true},
		{502, "*llm.ServerError", true},
		{503, "*llm.ServerError", true},
		{504, "*llm.ServerError", true},
		{418, "*llm.ProviderError", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := ErrorFromStatusCode(tt.status, "boom", "ollama", nil)
			if got := fmt.Sprintf("%T", err); got != tt.wantType {
				t.Errorf("expected %s, got %s", tt.wantType, got)
			}
			if got := IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, expected %v", got, tt.retryable)
			}
		})
	}
}

func TestRateLimitRetryAfter(t *testing.T) {
	after := 1.5
	err := ErrorFromStatusCode(429, "slow down", "ollama", &after)
	rle, ok := err.(*RateLimitError)
	if !ok {
		t.Fatalf("expected *RateLimitError, got %T", err)
	}
	if rle.RetryAfter == nil || *rle.RetryAfter != 1.5 {
		t.Errorf("expected RetryAfter 1.5, got %v", rle.RetryAfter)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"connection", &ConnectionError{ClientError{Message: "refused"}}, true},
		{"timeout", &RequestTimeoutError{ClientError{Message: "deadline"}}, true},
		{"configuration", &ConfigurationError{ClientError{Message: "no provider"}}, false},
		{"abort", &AbortError{ClientError{Message: "cancelled"}}, false},
		{"plain provider retryable", &ProviderError{Retryable: true}, true},
		{"plain provider permanent", &ProviderError{Retryable: false}, false},
		{"unknown error", errors.New("mystery"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, expected %v", got, tt.retryable)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &ConnectionError{ClientError{Message: "cannot reach ollama", Cause: cause}}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if got := err.Error(); got != "cannot reach ollama: dial tcp: connection refused" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ServerError{ProviderError{
		ClientError: ClientError{Message: "model crashed"},
		Provider:    "ollama",
		StatusCode:  500,
		Retryable:   true,
	}}
	expected := "[ollama] model crashed (status=500, retryable=true)"
	if got := err.Error(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
