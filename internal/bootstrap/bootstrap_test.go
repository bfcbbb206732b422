package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-hr-ticketing/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []AuditLog
}

func (r *recordingAudit) Log(_ context.Context, entry AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	l.Log(ctx, AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "terminated"}})
	l.Log(context.Background(), AuditLog{Action: "SERVER_START", Message: "hi"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "audit", entries[0].LoggerName)

	first := entries[0].ContextMap()
	assert.Equal(t, "2024-01-05T09:00:00Z", first["timestamp"])
	assert.Equal(t, "SERVER_SHUTDOWN", first["action"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Contains(t, first, "meta")

	second := entries[1].ContextMap()
	assert.NotContains(t, second, "request_id")
	assert.NotContains(t, second, "meta")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	audit := &recordingAudit{}
	server := ServerConfig{Port: "0", ReadTimeout: time.Second}.newServer(http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, audit) }()

	assert.Eventually(t, func() bool { return len(audit.actions()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.actions())
}

func TestServe_ReturnsListenError(t *testing.T) {
	audit := &recordingAudit{}
	server := ServerConfig{Port: "not-a-port"}.newServer(http.NotFoundHandler())

	err := serve(context.Background(), server, audit)
	assert.Error(t, err)
	assert.NotContains(t, audit.actions(), "SERVER_SHUTDOWN")
}
