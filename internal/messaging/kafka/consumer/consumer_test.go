package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-hr-ticketing/internal/events"
	"go-hr-ticketing/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs chan kafkago.Message

	mu        sync.Mutex
	committed []kafkago.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	select {
	case <-ctx.Done():
		return kafkago.Message{}, ctx.Err()
	case m := <-r.msgs:
		return m, nil
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) offsets() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, 0, len(r.committed))
	for _, m := range r.committed {
		out = append(out, m.Offset)
	}
	return out
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type fakeMailer struct {
	mu       sync.Mutex
	failures int
	reject   string
	calls    int
	sent     []notification.Mail
}

func (m *fakeMailer) Send(_ context.Context, mail notification.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.reject != "" && mail.To[0] == m.reject {
		return fmt.Errorf("%w: mail to: bad address", notification.ErrUndeliverable)
	}
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *fakeMailer) snapshot() (int, []notification.Mail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, append([]notification.Mail(nil), m.sent...)
}

func eventMessage(t *testing.T, e events.LeaveNotificationRequestedEvent) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.LeaveNotificationTopic, Key: []byte(e.LeaveID), Value: b}
}

func runConsumer(t *testing.T, reader *fakeReader, mailer notification.Mailer) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ConsumeLeaveNotifications(ctx, reader, mailer, zap.NewNop())
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestConsumeLeaveNotifications(t *testing.T) {
	retryBackoff = time.Millisecond
	redeliveryPause = time.Millisecond

	t.Run("mails and commits", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 4)}
		mailer := &fakeMailer{}
		event := events.LeaveNotificationRequestedEvent{
			EventType: events.LeaveNotificationRequested,
			EventID:   "evt-1",
			LeaveID:   "leave-1",
			To:        []string{"emp@corp.test"},
			Subject:   "Leave ticket LR-2024-000001 approved",
			Body:      "Hello",
		}
		reader.msgs <- eventMessage(t, event)
		reader.msgs <- eventMessage(t, event)

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
		stop()

		calls, sent := mailer.snapshot()
		assert.Equal(t, 1, calls)
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"emp@corp.test"}, sent[0].To)
		assert.Equal(t, "Leave ticket LR-2024-000001 approved", sent[0].Subject)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 1)}
		mailer := &fakeMailer{failures: 2}
		reader.msgs <- eventMessage(t, events.LeaveNotificationRequestedEvent{
			EventType: events.LeaveNotificationRequested,
			EventID:   "evt-2",
			To:        []string{"hr1@corp.test"},
		})

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 1 }, time.Second, 5*time.Millisecond)
		stop()

		calls, sent := mailer.snapshot()
		assert.Equal(t, 3, calls)
		assert.Len(t, sent, 1)
	})

	t.Run("failed mail holds the partition until it is sent", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 2)}
		mailer := &fakeMailer{failures: maxSendAttempts}
		first := eventMessage(t, events.LeaveNotificationRequestedEvent{
			EventType: events.LeaveNotificationRequested,
			EventID:   "evt-a",
			To:        []string{"a@corp.test"},
		})
		first.Offset = 10
		second := eventMessage(t, events.LeaveNotificationRequestedEvent{
			EventType: events.LeaveNotificationRequested,
			EventID:   "evt-b",
			To:        []string{"b@corp.test"},
		})
		second.Offset = 11
		reader.msgs <- first
		reader.msgs <- second

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
		stop()

		assert.Equal(t, []int64{10, 11}, reader.offsets())
		calls, sent := mailer.snapshot()
		assert.Equal(t, maxSendAttempts+2, calls)
		require.Len(t, sent, 2)
		assert.Equal(t, []string{"a@corp.test"}, sent[0].To)
		assert.Equal(t, []string{"b@corp.test"}, sent[1].To)
	})

	t.Run("stopping while mail keeps failing commits nothing", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 2)}
		mailer := &fakeMailer{failures: 1 << 20}
		for i, id := range []string{"evt-c", "evt-d"} {
			m := eventMessage(t, events.LeaveNotificationRequestedEvent{
				EventType: events.LeaveNotificationRequested,
				EventID:   id,
				To:        []string{"hr1@corp.test"},
			})
			m.Offset = int64(20 + i)
			reader.msgs <- m
		}

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool {
			calls, _ := mailer.snapshot()
			return calls > 2*maxSendAttempts
		}, time.Second, time.Millisecond)
		stop()

		assert.Zero(t, reader.commits())
		assert.Len(t, reader.msgs, 1, "later message must not be fetched past the failing one")
	})

	t.Run("undeliverable mail is dropped without holding the partition", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 2)}
		mailer := &fakeMailer{reject: "not-an-address"}
		for i, to := range []string{"not-an-address", "b@corp.test"} {
			m := eventMessage(t, events.LeaveNotificationRequestedEvent{
				EventType: events.LeaveNotificationRequested,
				EventID:   fmt.Sprintf("evt-u%d", i),
				To:        []string{to},
			})
			m.Offset = int64(30 + i)
			reader.msgs <- m
		}

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
		stop()

		assert.Equal(t, []int64{30, 31}, reader.offsets())
		calls, sent := mailer.snapshot()
		assert.Equal(t, 2, calls)
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"b@corp.test"}, sent[0].To)
	})

	t.Run("duplicate event is mailed once", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 2)}
		mailer := &fakeMailer{}
		for i := 0; i < 2; i++ {
			m := eventMessage(t, events.LeaveNotificationRequestedEvent{
				EventType: events.LeaveNotificationRequested,
				EventID:   "evt-dup",
				To:        []string{"a@corp.test"},
			})
			m.Offset = int64(40 + i)
			reader.msgs <- m
		}

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
		stop()

		calls, sent := mailer.snapshot()
		assert.Equal(t, 1, calls)
		assert.Len(t, sent, 1)
	})

	t.Run("skips unusable messages", func(t *testing.T) {
		reader := &fakeReader{msgs: make(chan kafkago.Message, 3)}
		mailer := &fakeMailer{}
		reader.msgs <- kafkago.Message{Value: []byte("{not json")}
		reader.msgs <- eventMessage(t, events.LeaveNotificationRequestedEvent{EventType: "something_else", To: []string{"a@b.c"}})
		reader.msgs <- eventMessage(t, events.LeaveNotificationRequestedEvent{EventType: events.LeaveNotificationRequested})

		stop := runConsumer(t, reader, mailer)
		require.Eventually(t, func() bool { return reader.commits() == 3 }, time.Second, 5*time.Millisecond)
		stop()

		calls, _ := mailer.snapshot()
		assert.Zero(t, calls)
	})
}
