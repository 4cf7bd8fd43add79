package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Guardian/internal/hermes"
)

type fakeBus struct {
	mu      sync.Mutex
	subject string
	handler func(string, []byte)
	ready   chan struct{}
}

func (f *fakeBus) Publish(string, interface{}) error { return nil }

func (f *fakeBus) Subscribe(subject string, handler func(string, []byte)) error {
	f.mu.Lock()
	f.subject, f.handler = subject, handler
	f.mu.Unlock()
	close(f.ready)
	return nil
}

func (f *fakeBus) Close() {}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFormatEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	out := formatEvent(at, "guardian.score.p1.calculated", []byte(`{"projectId":"p1","score":72}`))
	assert.Equal(t, "2024-05-01T12:00:00Z guardian.score.p1.calculated\n  {\n    \"projectId\": \"p1\",\n    \"score\": 72\n  }\n", out)

	out = formatEvent(at, "guardian.raw", []byte("not json"))
	assert.Equal(t, "2024-05-01T12:00:00Z guardian.raw\n  not json\n", out)
}

func TestTailEventsPrintsUntilCancelled(t *testing.T) {
	bus := &fakeBus{ready: make(chan struct{})}
	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- tailEvents(ctx, bus, hermes.SubjectAllEvents, &out) }()

	select {
	case <-bus.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("tail never subscribed")
	}
	assert.Equal(t, hermes.SubjectAllEvents, bus.subject)

	bus.handler(hermes.SubjectProjectCreated("p1"), []byte(`{"projectId":"p1"}`))
	bus.handler(hermes.SubjectLedgerFailed("p1"), []byte(`{"error":"relay down"}`))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("tail did not stop on cancel")
	}

	got := out.String()
	assert.Contains(t, got, "guardian.project.p1.created")
	assert.Contains(t, got, `"relay down"`)
}
