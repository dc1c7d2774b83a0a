package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	flushErr error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error { return f.flushErr }

func (f *fakeConn) Close() { f.closed = true }

func newFakeNotifier(fc *fakeConn, dials *int) *NATSNotifier {
	n := NewNATSNotifier("nats://example:4222", "docsite.builds", time.Second)
	n.dial = func(string, ...nats.Option) (conn, error) {
		*dials++
		return fc, nil
	}
	return n
}

func TestNATSNotifier_PublishesJSON(t *testing.T) {
	fc := &fakeConn{}
	dials := 0
	n := newFakeNotifier(fc, &dials)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := n.Notify(context.Background(), Event{
		BuildID: "b1", Status: "success", Target: "astro", Title: "Orchestrator",
		Revision: "abc123", Changed: true, DurationMS: 42, Timestamp: ts,
	})
	require.NoError(t, err)
	require.NoError(t, n.Notify(context.Background(), Event{BuildID: "b2", Status: "failed", Error: "boom"}))

	assert.Equal(t, 1, dials, "connection is reused")
	assert.Equal(t, []string{"docsite.builds", "docsite.builds"}, fc.subjects)

	var got map[string]any
	require.NoError(t, json.Unmarshal(fc.payloads[0], &got))
	assert.Equal(t, "b1", got["build_id"])
	assert.Equal(t, "Orchestrator", got["title"])
	assert.Equal(t, "abc123", got["revision"])
	assert.Equal(t, true, got["changed"])
	assert.InDelta(t, 42, got["duration_ms"], 0)
	assert.Equal(t, "2026-03-01T12:00:00Z", got["timestamp"])
	assert.NotContains(t, got, "error")

	var second Event
	require.NoError(t, json.Unmarshal(fc.payloads[1], &second))
	assert.Equal(t, "boom", second.Error)
	assert.False(t, second.Timestamp.IsZero(), "timestamp is filled in")

	n.Close()
	assert.True(t, fc.closed)
}

func TestNATSNotifier_FlushError(t *testing.T) {
	fc := &fakeConn{flushErr: errors.New("timeout")}
	dials := 0
	n := newFakeNotifier(fc, &dials)
	err := n.Notify(context.Background(), Event{BuildID: "b1"})
	assert.ErrorContains(t, err, "flush event")
}

func TestNATSNotifier_ConnectFailure(t *testing.T) {
	n := NewNATSNotifier("nats://127.0.0.1:1", "docsite.builds", 500*time.Millisecond)
	defer n.Close()
	err := n.Notify(context.Background(), Event{BuildID: "b1"})
	assert.ErrorContains(t, err, "connect to NATS")
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NoopNotifier{}.Notify(context.Background(), Event{}))
}
