package ai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured means no usable service credential is available.
	ErrNotConfigured = errors.New("generative service is not configured")

	// ErrRateLimited means the upstream reported throttling.
	ErrRateLimited = errors.New("generative service throttled")
)

// classifyRemoteError folds an upstream failure into the taxonomy the
// transcript layer understands. Rate limiting is sniffed from the error text
// the same way across providers (HTTP 429 or quota wording).
func classifyRemoteError(err error) error {
	if err == nil {
		return nil
	}

	text := strings.ToLower(err.Error())
	if strings.Contains(text, "429") || strings.Contains(text, "quota") || strings.Contains(text, "rate limit") {
		return fmt.Errorf("%w: %s", ErrRateLimited, err.Error())
	}
	return err
}

// sanitize strips the credential from any user-visible error text.
func sanitize(text, apiKey string) string {
	if apiKey == "" {
		return text
	}
	return strings.ReplaceAll(text, apiKey, "API_KEY")
}

// SyntheticReply renders a session failure as assistant-voice text, since the
// transcript is the only channel of user communication.
func (s *Service) SyntheticReply(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "Configuration Error: The API Key is missing. Please check your configuration."
	case errors.Is(err, ErrRateLimited):
		return "I'm receiving a lot of messages right now and hit a temporary limit. Please wait a few moments and try again."
	default:
		return fmt.Sprintf("I encountered an error connecting to the service: %q. Please try again.", sanitize(err.Error(), s.cfg.APIKey))
	}
}
