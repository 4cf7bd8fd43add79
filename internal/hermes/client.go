package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client carries Guardian domain events. Publishing is fire-and-forget:
// callers log failures and carry on. Subscribe feeds operator tooling such as
// `guardianctl events tail`.
type Client interface {
	Publish(subject string, data interface{}) error
	Subscribe(subject string, handler func(subject string, data []byte)) error
	Close()
}

// NoopClient discards every event. It stands in when no NATS URL is configured.
type NoopClient struct{}

func (NoopClient) Publish(string, interface{}) error            { return nil }
func (NoopClient) Subscribe(string, func(string, []byte)) error { return nil }
func (NoopClient) Close()                                       {}

// NATSClient publishes JSON events on core NATS and keeps the GUARDIAN_EVENTS
// stream in place so published events are retained for replay.
type NATSClient struct {
	nc     *nats.Conn
	logger *slog.Logger

	mu   sync.Mutex
	subs []*nats.Subscription
}

func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	nc, err := nats.Connect(url,
		nats.Name("guardian"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("hermes disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("hermes reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	if err := ensureEventStream(ctx, nc); err != nil {
		logger.Warn("event stream unavailable, events will not be retained", "stream", StreamName, "error", err)
	}
	return &NATSClient{nc: nc, logger: logger}, nil
}

func ensureEventStream(ctx context.Context, nc *nats.Conn) error {
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("jetstream: %w", err)
	}
	maxAge, err := time.ParseDuration(StreamMaxAge)
	if err != nil {
		return fmt.Errorf("stream max age: %w", err)
	}
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectAllEvents},
		MaxAge:   maxAge,
	})
	return err
}

func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	if err := c.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	c.logger.Debug("event published", "subject", subject, "bytes", len(payload))
	return nil
}

// Subscribe delivers raw payloads for subject, which may use the `*` and `>`
// wildcards. Handlers run on the connection's dispatch goroutine.
func (c *NATSClient) Subscribe(subject string, handler func(string, []byte)) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return nil
}

// Close drops subscriptions, flushes pending publishes and disconnects.
func (c *NATSClient) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Unsubscribe()
	}
	if err := c.nc.FlushTimeout(2 * time.Second); err != nil {
		c.logger.Warn("hermes flush on close failed", "error", err)
	}
	c.nc.Close()
}
