package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
)

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	TS     int64        `json:"ts"`
}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

// SlackSink posts punch events to a Slack incoming webhook
type SlackSink struct {
	webhookURL string
	client     *http.Client
	loc        *time.Location
}

// NewSlackSink formats punch times in loc. A nil client gets a 10 second timeout.
func NewSlackSink(webhookURL string, client *http.Client, loc *time.Location) *SlackSink {
	if loc == nil {
		loc = time.UTC
	}
	return &SlackSink{webhookURL: webhookURL, client: defaultClient(client), loc: loc}
}

func (s *SlackSink) Name() string { return "slack" }

func (s *SlackSink) Send(ctx context.Context, e notification.PunchEvent) error {
	return postJSON(ctx, s.client, s.Name(), s.webhookURL, s.message(e))
}

func (s *SlackSink) message(e notification.PunchEvent) slackMessage {
	st := styleOf(e.Punch.Type)
	ts := e.Punch.Timestamp

	fields := []slackField{
		{Title: fieldTime, Value: ts.In(s.loc).Format(timeLayout), Short: true},
		{Title: fieldSource, Value: e.Punch.Source.Label(), Short: true},
	}
	if e.Punch.Comment != nil && *e.Punch.Comment != "" {
		fields = append(fields, slackField{Title: fieldComment, Value: *e.Punch.Comment})
	}

	return slackMessage{
		Text: st.emoji + " " + headline(e),
		Attachments: []slackAttachment{{
			Color:  st.color,
			Fields: fields,
			Footer: footerText,
			TS:     ts.Unix(),
		}},
	}
}
