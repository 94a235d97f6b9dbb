package slack

import (
	"errors"
	"net/http"
	"strings"
)

// Guidance translates a delivery error into human-readable advice for the
// webhook test flow. It returns an empty string when no specific advice
// applies.
func Guidance(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return "The webhook URL is not valid. Copy the full URL from your Slack incoming webhook configuration."
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	switch {
	case apiErr.Status == http.StatusNotFound:
		return "The webhook URL was not found. It may have been deleted in Slack; create a new incoming webhook and update your settings."
	case apiErr.Status == http.StatusForbidden:
		return "Slack rejected the request. The webhook's access may have been revoked; reinstall the Slack app or create a new webhook."
	case strings.Contains(apiErr.Body, "channel_not_found"):
		return "The configured channel no longer exists. Remove the channel override or point it at an existing channel."
	case strings.Contains(apiErr.Body, "invalid_payload"):
		return "Slack could not parse the message payload. This is likely a bug in the notification format; please report it."
	case apiErr.Status == 0 && apiErr.Body == "Timeout":
		return "Slack did not respond in time. Check your network connection and try again."
	default:
		return ""
	}
}
