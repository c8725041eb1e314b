package notifier

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
)

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Fields    []discordField `json:"fields"`
	Timestamp string         `json:"timestamp"`
	Footer    discordFooter  `json:"footer"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordSink posts punch events to a Discord channel webhook
type DiscordSink struct {
	webhookURL string
	client     *http.Client
	loc        *time.Location
}

func NewDiscordSink(webhookURL string, client *http.Client, loc *time.Location) *DiscordSink {
	if loc == nil {
		loc = time.UTC
	}
	return &DiscordSink{webhookURL: webhookURL, client: defaultClient(client), loc: loc}
}

func (s *DiscordSink) Name() string { return "discord" }

func (s *DiscordSink) Send(ctx context.Context, e notification.PunchEvent) error {
	return postJSON(ctx, s.client, s.Name(), s.webhookURL, s.message(e))
}

func (s *DiscordSink) message(e notification.PunchEvent) discordMessage {
	ts := e.Punch.Timestamp

	fields := []discordField{
		{Name: fieldTime, Value: ts.In(s.loc).Format(timeLayout), Inline: true},
		{Name: fieldSource, Value: e.Punch.Source.Label(), Inline: true},
	}
	if e.Punch.Comment != nil && *e.Punch.Comment != "" {
		fields = append(fields, discordField{Name: fieldComment, Value: *e.Punch.Comment})
	}

	return discordMessage{Embeds: []discordEmbed{{
		Title:     headline(e),
		Color:     hexColor(styleOf(e.Punch.Type).color),
		Fields:    fields,
		Timestamp: ts.UTC().Format(time.RFC3339),
		Footer:    discordFooter{Text: footerText},
	}}}
}

// hexColor turns "#36a64f" into the decimal value Discord expects.
func hexColor(s string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
