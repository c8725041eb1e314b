// Package notifier holds the delivery sinks for punch events.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

const (
	footerText   = "Tempus"
	timeLayout   = "2006/01/02 15:04:05"
	fieldTime    = "Time"
	fieldSource  = "Source"
	fieldComment = "Comment"
)

type style struct {
	emoji string
	color string
}

var styles = map[punch.ClockType]style{
	punch.ClockIn:    {emoji: ":large_green_circle:", color: "#36a64f"},
	punch.ClockOut:   {emoji: ":red_circle:", color: "#ff0000"},
	punch.BreakStart: {emoji: ":coffee:", color: "#FFA500"},
	punch.BreakEnd:   {emoji: ":muscle:", color: "#0000FF"},
}

func styleOf(t punch.ClockType) style {
	if s, ok := styles[t]; ok {
		return s
	}
	return style{emoji: ":clock3:", color: "#808080"}
}

func headline(e notification.PunchEvent) string {
	return fmt.Sprintf("%s %s", e.DisplayName, e.Action())
}

// postJSON sends body to url and treats any non-2xx status as a WebhookError.
func postJSON(ctx context.Context, client *http.Client, sink, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", sink, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", sink, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", sink, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &notification.WebhookError{Sink: sink, StatusCode: resp.StatusCode}
	}
	return nil
}

func defaultClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: 10 * time.Second}
}
