package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestClient_PublishNotification(t *testing.T) {
	n := notification.Notification{
		ID:        "card-due-c1",
		Title:     "Fatura próxima do vencimento",
		Type:      notification.TypeWarning,
		Category:  notification.CategoryCard,
		Priority:  notification.PriorityHigh,
		CreatedAt: time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC),
		Data:      map[string]any{"cardId": "c1"},
	}

	type testCase struct {
		name    string
		err     error
		wantErr bool
	}

	tests := []testCase{
		{name: "Success"},
		{name: "Broker Error", err: errors.New("channel closed"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &fakeChannel{err: tt.err}
			c := &Client{channel: ch, exchangeName: "cofre", routingKey: "notifications"}

			err := c.PublishNotification(context.Background(), n)

			if tt.wantErr {
				assert.ErrorContains(t, err, "card-due-c1")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "cofre", ch.exchange)
			assert.Equal(t, "notifications", ch.key)
			assert.Equal(t, "application/json", ch.msg.ContentType)
			assert.Equal(t, amqp091.Persistent, ch.msg.DeliveryMode)
			assert.Equal(t, "card", ch.msg.Type)

			msg, err := NotificationMessageFromJSON(ch.msg.Body)
			require.NoError(t, err)
			assert.Equal(t, ch.msg.MessageId, msg.MessageID)
			assert.Equal(t, "card-due-c1", msg.ID)
			assert.Equal(t, "high", msg.Priority)
			assert.Equal(t, "c1", msg.Data["cardId"])
		})
	}
}

func TestClient_Close(t *testing.T) {
	ch := &fakeChannel{}
	c := &Client{channel: ch}

	require.NoError(t, c.Close())
	assert.True(t, ch.closed)
}
