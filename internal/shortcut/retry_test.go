package shortcut

import (
	"testing"
	"time"
)

func TestRetryableStatus(t *testing.T) {
	for _, status := range []int{429, 500, 503, 504} {
		if !retryableStatus(status) {
			t.Fatalf("status %d should be retryable", status)
		}
	}
	for _, status := range []int{200, 201, 400, 401, 404, 422, 502} {
		if retryableStatus(status) {
			t.Fatalf("status %d should not be retryable", status)
		}
	}
}

func TestBackoffDelaySchedule(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := backoffDelay(tc.attempt, 500, ""); got != tc.want {
			t.Fatalf("attempt %d: got %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestBackoffDelayRetryAfter(t *testing.T) {
	if got := backoffDelay(0, 429, "7"); got != 7*time.Second {
		t.Fatalf("429 with Retry-After: got %v, want 7s", got)
	}
	if got := backoffDelay(0, 429, " 2 "); got != 2*time.Second {
		t.Fatalf("Retry-After with whitespace: got %v, want 2s", got)
	}
	// Retry-After is honored only on 429.
	if got := backoffDelay(2, 503, "7"); got != 4*time.Second {
		t.Fatalf("503 must ignore Retry-After: got %v, want 4s", got)
	}
	// Malformed values fall back to the exponential schedule.
	if got := backoffDelay(1, 429, "soon"); got != 2*time.Second {
		t.Fatalf("malformed Retry-After: got %v, want 2s", got)
	}
	// The cap applies to Retry-After too.
	if got := backoffDelay(0, 429, "120"); got != 30*time.Second {
		t.Fatalf("Retry-After above cap: got %v, want 30s", got)
	}
}

func TestRetryErrorMessage(t *testing.T) {
	err := &RetryError{Status: 429, Attempts: 6}
	if err.Error() != "rate limited or unavailable (HTTP 429) after 6 attempts" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
