package notifier

import (
	"errors"
	"net/http"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/sse"
)

// FromConfig builds every sink the configuration enables. The returned close
// func releases sink resources and must be called after the dispatcher stops.
func FromConfig(cfg *config.Config, hub *sse.Hub, loc *time.Location) ([]notification.Sink, func() error, error) {
	var (
		sinks   []notification.Sink
		closers []func() error
	)
	client := &http.Client{Timeout: cfg.Notifier.Timeout}

	if hub != nil {
		sinks = append(sinks, NewHubSink(hub))
	}
	if cfg.Notifier.SlackWebhookURL != "" {
		sinks = append(sinks, NewSlackSink(cfg.Notifier.SlackWebhookURL, client, loc))
	}
	if cfg.Notifier.DiscordWebhookURL != "" {
		sinks = append(sinks, NewDiscordSink(cfg.Notifier.DiscordWebhookURL, client, loc))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.PunchTopic)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, k)
		closers = append(closers, k.Close)
	}

	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
	return sinks, closeAll, nil
}
