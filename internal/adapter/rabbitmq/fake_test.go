package rabbitmq

import (
	"context"
	"errors"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	mu         sync.Mutex
	exchanges  []string
	bindings   []string
	published  []published
	deliveries chan amqp.Delivery
	closeChan  chan *amqp.Error
	publishErr error
	closed     bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		deliveries: make(chan amqp.Delivery, 8),
		closeChan:  make(chan *amqp.Error, 1),
	}
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges = append(f.exchanges, name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (Queue, error) {
	return Queue{Name: "amq.gen-test"}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings = append(f.bindings, name+"|"+key+"|"+exchange)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) NotifyClose() <-chan *amqp.Error {
	return f.closeChan
}

// fakeConnection hands out the queued channels in order.
type fakeConnection struct {
	mu       sync.Mutex
	channels []*fakeChannel
	opened   int
}

func (c *fakeConnection) Channel() (Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opened >= len(c.channels) {
		return nil, errors.New("no channel available")
	}
	ch := c.channels[c.opened]
	c.opened++
	return ch, nil
}

func (c *fakeConnection) Close() error   { return nil }
func (c *fakeConnection) IsClosed() bool { return false }

func (c *fakeConnection) openedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened
}
