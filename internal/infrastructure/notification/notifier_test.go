package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"trades_marketplace/internal/domain/entities"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func startTestNATSServer(t *testing.T) *natsserver.Server {
	opts := &natsserver.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	}

	server, err := natsserver.NewServer(opts)
	require.NoError(t, err)

	go server.Start()

	if !server.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}

	t.Cleanup(func() {
		server.Shutdown()
		server.WaitForShutdown()
	})

	return server
}

func TestNATSNotifier_PublishesQuoteEvents(t *testing.T) {
	server := startTestNATSServer(t)
	nc, err := nats.Connect(server.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("test.quote.*")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	n := NewNATSNotifier(nc, "test", zap.NewNop())
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	q := entities.Quote{ID: "q-1", JobRequestID: "job-1", ProfessionalID: "pro-1", CustomerID: "cust-1", Amount: 75000}
	require.NoError(t, n.NotifyQuote(context.Background(), entities.NewQuoteEvent(entities.QuoteEventAccepted, q, at)))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "test.quote.accepted", msg.Subject)

	var got entities.QuoteEvent
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "q-1", got.QuoteID)
	assert.Equal(t, int64(75000), got.Amount)
	assert.True(t, at.Equal(got.OccurredAt))
}

func TestNATSNotifier_SendLoginCode(t *testing.T) {
	server := startTestNATSServer(t)
	nc, err := nats.Connect(server.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("marketplace.auth.login_code")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	n := NewNATSNotifier(nc, "", nil)
	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	require.NoError(t, n.SendLoginCode(context.Background(), "e@x.com", "123456", expires))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var got LoginCodeMessage
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, LoginCodeMessage{Email: "e@x.com", Code: "123456", ExpiresAt: expires}, got)
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, []byte) error { return errors.New("connection closed") }

func TestNATSNotifier_PublishError(t *testing.T) {
	n := NewNATSNotifier(failingPublisher{}, "marketplace", nil)

	err := n.NotifyQuote(context.Background(), entities.QuoteEvent{Type: entities.QuoteEventDeclined})
	assert.ErrorContains(t, err, "publish marketplace.quote.declined")
}

func TestLogNotifier_DoesNotLogCodes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.SendLoginCode(context.Background(), "e@x.com", "654321", time.Now()))
	require.NoError(t, n.NotifyQuote(context.Background(), entities.QuoteEvent{Type: entities.QuoteEventSubmitted, QuoteID: "q-9"}))

	require.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			assert.NotEqual(t, "654321", f.String)
		}
	}
	assert.Equal(t, "q-9", logs.All()[1].ContextMap()["quote_id"])
}
