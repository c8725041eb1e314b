package notification

import (
	"errors"
	"fmt"
)

var (
	ErrQueueFull         = errors.New("notification queue is full")
	ErrDispatcherStopped = errors.New("notification dispatcher stopped")
)

// WebhookError reports a non-2xx response from a chat webhook.
type WebhookError struct {
	Sink       string
	StatusCode int
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("%s webhook returned status %d", e.Sink, e.StatusCode)
}
