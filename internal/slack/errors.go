package slack

import (
	"fmt"
	"net/http"
)

// ValidationError reports a malformed webhook URL. It is raised at
// construction time, before any network attempt.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "webhook validation failed: " + e.Message
}

// APIError reports a failed delivery attempt. Status 0 means the request never
// produced an HTTP response: Body "Timeout" for a deadline hit, empty for a
// lower-level transport failure.
type APIError struct {
	Body   string
	Status int
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Body == "" {
			return "slack webhook request failed"
		}
		return fmt.Sprintf("slack webhook request failed: %s", e.Body)
	}
	return fmt.Sprintf("slack webhook error: status %d: %s", e.Status, e.Body)
}

// Retryable reports whether a fresh attempt could plausibly succeed. Client
// errors other than 429 indicate a configuration problem and are final;
// everything else (5xx, 429, timeouts, transport failures, 2xx with an error
// body) is worth retrying.
func (e *APIError) Retryable() bool {
	if e.Status >= 400 && e.Status < 500 && e.Status != http.StatusTooManyRequests {
		return false
	}
	return true
}
