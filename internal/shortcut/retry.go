package shortcut

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// baseDelay seeds the exponential backoff schedule.
	baseDelay = time.Second
	// maxDelay bounds any single wait.
	maxDelay = 30 * time.Second
	// maxRetries is the number of retry attempts after the initial request.
	maxRetries = 5
)

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// backoffDelay computes the wait before retry number attempt (zero-based).
// A Retry-After header is honored only on 429; everything else follows the
// exponential schedule.
func backoffDelay(attempt, status int, retryAfter string) time.Duration {
	if status == http.StatusTooManyRequests && retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			return capDelay(time.Duration(secs) * time.Second)
		}
	}
	return capDelay(baseDelay << attempt)
}

func capDelay(d time.Duration) time.Duration {
	if d > maxDelay {
		return maxDelay
	}
	return d
}

// RetryError reports a request abandoned after exhausting retries.
// Status holds the last retryable HTTP status; it is zero when the failure
// was network-level, in which case Err holds the last transport error.
type RetryError struct {
	Status   int
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("rate limited or unavailable (HTTP %d) after %d attempts", e.Status, e.Attempts)
	}
	return fmt.Sprintf("network failure after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}
