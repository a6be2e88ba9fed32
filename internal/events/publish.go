package events

import (
	"log/slog"
	"time"
)

// PublishWithRetry tries SendEvent up to maxRetries times with backoff of
// 50ms, 100ms, 200ms... A nil publisher is a no-op.
func PublishWithRetry(pub EventPublisher, event Event, maxRetries int) error {
	if pub == nil {
		return nil
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := pub.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type)
			}
			return nil
		}
		lastErr = err

		if attempt < maxRetries-1 {
			time.Sleep(baseDelay * (1 << attempt))
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"error", lastErr)
	return lastErr
}
