package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"gudang/internal/logger"
	"gudang/internal/models"
	"gudang/pkg/rabbitmq"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []amqp.Publishing
	keys       []string
	deliveries chan amqp.Delivery
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

// fakeAcknowledger records how each delivery was settled.
type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error { return nil }

func TestPublishStockMovement(t *testing.T) {
	ch := &fakeChannel{}
	client, err := rabbitmq.NewClientWithChannel(ch, "stock_movements", logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, []string{"stock_movements"}, ch.declared)

	event := models.StockMovementEvent{ID: "evt-1", Kind: models.MovementSale, ProductID: 3, Delta: -2, QuantityAfter: 8}
	require.NoError(t, client.PublishStockMovement(event))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "stock_movements", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "evt-1", msg.MessageId)

	var decoded models.StockMovementEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)

	ch.publishErr = errors.New("channel closed")
	assert.Error(t, client.PublishStockMovement(event))

	require.NoError(t, client.Close())
	assert.True(t, ch.closed)
}

func TestConsumeStockMovements(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 3)}
	client, err := rabbitmq.NewClientWithChannel(ch, "stock_movements", logger.Discard())
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	good, _ := json.Marshal(models.StockMovementEvent{ID: "ok", Kind: models.MovementAdjustment})
	failing, _ := json.Marshal(models.StockMovementEvent{ID: "retry", Kind: models.MovementSale})
	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: good}
	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: failing}
	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("{not json")}
	close(ch.deliveries)

	var seen []string
	err = client.ConsumeStockMovements(context.Background(), func(e models.StockMovementEvent) error {
		seen = append(seen, e.ID)
		if e.ID == "retry" {
			return errors.New("try later")
		}
		return nil
	})
	assert.Error(t, err, "closed delivery channel ends consumption")

	assert.Equal(t, []string{"ok", "retry"}, seen)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
	assert.Equal(t, []bool{true, false}, ack.requeue)
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery)}
	client, err := rabbitmq.NewClientWithChannel(ch, "stock_movements", logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, client.ConsumeStockMovements(ctx, func(models.StockMovementEvent) error { return nil }))
}
