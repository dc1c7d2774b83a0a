// Package notify publishes build completion events.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Event describes a finished build.
type Event struct {
	BuildID    string    `json:"build_id"`
	Status     string    `json:"status"`
	Profile    string    `json:"profile,omitempty"`
	Target     string    `json:"target"`
	Title      string    `json:"title,omitempty"`
	Revision   string    `json:"revision,omitempty"`
	OutputPath string    `json:"output_path,omitempty"`
	Changed    bool      `json:"changed"`
	Generated  bool      `json:"generated"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Notifier delivers build events.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// NoopNotifier discards events.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Event) error { return nil }

// conn is the part of *nats.Conn the notifier uses.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSNotifier publishes each event as JSON on a NATS subject. The
// connection is opened on first use and reused until Close.
type NATSNotifier struct {
	url     string
	subject string
	timeout time.Duration

	mu   sync.Mutex
	conn conn
	dial func(url string, opts ...nats.Option) (conn, error)
}

// NewNATSNotifier creates a notifier for the server at url.
func NewNATSNotifier(url, subject string, timeout time.Duration) *NATSNotifier {
	return &NATSNotifier{
		url:     url,
		subject: subject,
		timeout: timeout,
		dial: func(url string, opts ...nats.Option) (conn, error) {
			return nats.Connect(url, opts...)
		},
	}
}

// Subject returns the subject events are published on.
func (n *NATSNotifier) Subject() string { return n.subject }

// Notify publishes e and waits for the server to acknowledge the flush.
func (n *NATSNotifier) Notify(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.conn == nil {
		c, err := n.dial(n.url, nats.Name("docsite"), nats.Timeout(n.timeout))
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		n.conn = c
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}
	return nil
}

// Close closes the connection if one was opened.
func (n *NATSNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}
